package report

import (
	"fmt"
	"io"
	"iter"

	"github.com/bjaus/snakeoil/formatters"
)

// WriteIter formats items from an iterator and writes them to w as they
// arrive. JSONL, CSV, TSV and Plain write each item immediately and JSON
// streams array elements. Table and YAML need every item for layout, so
// items are collected first.
func WriteIter[T any](w io.Writer, f Format, seq iter.Seq[T]) error {
	switch f {
	case Table, YAML:
		return streamCollect(w, f, seq)
	case JSON:
		return streamJSON(w, seq)
	case JSONL:
		return streamEach(seq, func(item T) error {
			return newJSONEncoder(w, item).Encode(item)
		})
	case CSV:
		return streamRows(w, CSV, seq, writeCSVRow)
	case TSV:
		return streamRows(w, TSV, seq, writeTSVRow)
	case Plain:
		p := formatters.NewPlainText(w)
		return streamEach(seq, func(item T) error { return p.Write(item) })
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

func streamEach[T any](seq iter.Seq[T], fn func(T) error) error {
	for item := range seq {
		if err := fn(item); err != nil {
			return err
		}
	}
	return nil
}

func streamCollect[T any](w io.Writer, f Format, seq iter.Seq[T]) error {
	var items []T
	for item := range seq {
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil
	}
	return Write(w, f, items...)
}

func streamJSON[T any](w io.Writer, seq iter.Seq[T]) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	first := true
	err := streamEach(seq, func(item T) error {
		if !first {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		first = false
		return newJSONEncoder(w, item).Encode(item)
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "]\n")
	return err
}

// streamRows writes the header with the first item, then one row per item.
func streamRows[T any](w io.Writer, f Format, seq iter.Seq[T], writeRow func(io.Writer, []string) error) error {
	first := true
	return streamEach(seq, func(item T) error {
		if first {
			first = false
			if err := requireRower(f, item); err != nil {
				return err
			}
			if h, ok := any(item).(Headed); ok {
				if err := writeRow(w, h.Header()); err != nil {
					return err
				}
			}
		}
		return writeRow(w, any(item).(Rower).Row())
	})
}
