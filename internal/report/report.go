package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrMissingInterface  = errors.New("missing required interface")
	ErrUnsupportedBorder = errors.New("unsupported border style")
)

// Format represents an output format.
type Format string

const (
	Table Format = "table"
	JSON  Format = "json"
	JSONL Format = "jsonl"
	YAML  Format = "yaml"
	CSV   Format = "csv"
	TSV   Format = "tsv"
	Plain Format = "plain"
)

var formats = []Format{Table, JSON, JSONL, YAML, CSV, TSV, Plain}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// IsSupported reports whether type T implements the interfaces required by
// format f.
func IsSupported[T any](f Format) bool {
	var zero T
	switch f {
	case JSON, JSONL, YAML, Plain:
		return true
	case Table, CSV, TSV:
		_, ok := any(zero).(Rower)
		return ok
	default:
		return false
	}
}

// Rower provides row data. Required for Table, CSV and TSV.
type Rower interface {
	Row() []string
}

// Headed provides column headers.
// Without it, CSV and TSV have no header row and Table renders without one.
type Headed interface {
	Header() []string
}

// Indented controls JSON/YAML indentation.
// Without it, or when it returns "", JSON is compact and YAML uses its
// default indent.
type Indented interface {
	Indent() string
}

// Titled renders a title above the table.
type Titled interface {
	Title() string
}

// Bordered controls the table border style.
// Default: BorderRounded.
type Bordered interface {
	Border() BorderStyle
}

// Aligned sets per-column alignment.
// Default: AlignLeft.
type Aligned interface {
	Alignments() []Alignment
}

// Footered renders a footer row below the table.
type Footered interface {
	Footer() []string
}

// Captioned renders a line below the table.
type Captioned interface {
	Caption() string
}

// Truncated sets maximum column widths for Table format. Cells exceeding
// the max are cut with "...". Zero means no limit for that column.
type Truncated interface {
	MaxWidths() []int
}

// BorderStyle controls table border characters.
type BorderStyle int

const (
	BorderRounded BorderStyle = iota // ╭─╮╰╯│┬┴├┤┼
	BorderNone                       // No borders, space-separated columns
	BorderASCII                      // +-+|
)

var borderNames = []struct {
	name  string
	style BorderStyle
}{
	{"rounded", BorderRounded},
	{"ascii", BorderASCII},
	{"none", BorderNone},
}

// String returns the border style name.
func (b BorderStyle) String() string {
	for _, n := range borderNames {
		if n.style == b {
			return n.name
		}
	}
	return fmt.Sprintf("BorderStyle(%d)", int(b))
}

// ParseBorder parses a border style name: rounded, ascii or none.
func ParseBorder(s string) (BorderStyle, error) {
	for _, n := range borderNames {
		if n.name == s {
			return n.style, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedBorder, s)
}

// Alignment controls column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Write formats items and writes to w.
func Write[T any](w io.Writer, f Format, items ...T) error {
	switch f {
	case Table:
		return writeTable(w, items)
	case JSON:
		return writeJSON(w, items)
	case JSONL:
		return writeJSONL(w, items)
	case YAML:
		return writeYAML(w, items)
	case CSV:
		return writeCSV(w, items)
	case TSV:
		return writeTSV(w, items)
	case Plain:
		return writePlain(w, items)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Marshal formats items and returns the bytes.
func Marshal[T any](f Format, items ...T) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, items...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func requireRower[T any](f Format, item T) error {
	if _, ok := any(item).(Rower); !ok {
		return fmt.Errorf("%w: format %q requires Rower, not implemented by %T", ErrMissingInterface, f, item)
	}
	return nil
}
