package formatters

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"golang.org/x/term"
)

// Sentinel errors for programmatic error handling.
var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrStreamClosed        = errors.New("stream closed")
	ErrTerminfoDisabled    = errors.New("terminfo unavailable")
	ErrTerminfoUnsupported = errors.New("terminal lacks required capabilities")
)

// Formatter is a stateful text writer.
type Formatter interface {
	// Write emits args in order. [WriteOption] values among args apply to
	// this call only.
	Write(args ...any) error
	// Fg returns a token switching the foreground color. An empty color
	// restores the default.
	Fg(color string) Deferred
	// Bg returns a token switching the background color.
	Bg(color string) Deferred
	Bold() Deferred
	Underline() Deferred
	// Reset returns a token clearing all attributes and colors.
	Reset() Deferred
	// Error writes args as an error line.
	Error(args ...any) error
	// Warn writes args as a warning line.
	Warn(args ...any) error
	// Title sets the terminal title where supported.
	Title(s string) error
	Flush() error
	// SetWrap changes the default wrap mode and returns the previous one.
	SetWrap(on bool) bool
}

// Deferred is a token evaluated at write time. Its result is reduced again
// until it is no longer a Deferred.
type Deferred func(Formatter) any

// Raw is a token written verbatim. It occupies no columns, so escape
// sequences do not disturb wrapping.
type Raw string

// WriterFunc adapts a write callback to [io.Writer].
type WriterFunc func(p []byte) (int, error)

func (f WriterFunc) Write(p []byte) (int, error) { return f(p) }

// Get returns a [Terminfo] formatter when w is a terminal or forceColor is
// set, and a [PlainText] formatter otherwise or when the terminal lacks
// color support.
func Get(w io.Writer, forceColor bool, opts ...Option) Formatter {
	tty := isTerminal(w)
	if tty {
		if fd, ok := w.(interface{ Fd() uintptr }); ok {
			if cols, _, err := term.GetSize(int(fd.Fd())); err == nil && cols > 0 {
				opts = append([]Option{WithWidth(cols)}, opts...)
			}
		}
	}
	switch {
	case forceColor:
		if t, err := NewTerminfo(w, append([]Option{WithTerm("ansi")}, opts...)...); err == nil {
			return t
		}
		if t, err := NewTerminfo(w, append([]Option{WithTerminfo(ANSI())}, opts...)...); err == nil {
			return t
		}
	case tty:
		if t, err := NewTerminfo(w, opts...); err == nil {
			return t
		}
	}
	return NewPlainText(w, opts...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// Observer wraps f so that every Write leaves the line open, letting
// several callers contribute to the same line.
func Observer(f Formatter) Formatter {
	return observer{f}
}

type observer struct {
	Formatter
}

func (o observer) Write(args ...any) error {
	return o.Formatter.Write(slices.Concat(args, []any{Autoline(false)})...)
}

// ForceWrapping runs fn with wrapping forced to on, then restores the
// previous mode.
func ForceWrapping(f Formatter, on bool, fn func() error) error {
	old := f.SetWrap(on)
	defer f.SetWrap(old)
	return fn()
}

// classify marks broken-pipe failures as [ErrStreamClosed].
func classify(err error) error {
	if err == nil {
		return nil
	}
	if isBrokenPipe(err) || errors.Is(err, io.ErrClosedPipe) {
		return fmt.Errorf("%w: %w", ErrStreamClosed, err)
	}
	return err
}
