package formatters

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

const defaultWidth = 79

// PlainText is a [Formatter] that writes text without styling.
//
// The exported fields may be changed between writes. The prefix slices hold
// tokens emitted at the start of the first line of a write and of every
// line after a wrap.
type PlainText struct {
	Width       int
	Wrap        bool
	Autoline    bool
	FirstPrefix []any
	LaterPrefix []any

	w    io.Writer
	enc  *encoder
	self Formatter

	pos            int
	inFirstLine    bool
	wroteSomething bool
}

// NewPlainText returns a formatter writing to w with autoline on and
// wrapping off.
func NewPlainText(w io.Writer, opts ...Option) *PlainText {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return newPlainText(w, c, defaultWidth)
}

func newPlainText(w io.Writer, c config, width int) *PlainText {
	if c.width > 0 {
		width = c.width
	}
	name := c.encoding
	if name == "" {
		name = streamEncoding(w)
	}
	p := &PlainText{
		Width:       width,
		Autoline:    true,
		w:           w,
		enc:         newEncoder(name),
		inFirstLine: true,
	}
	p.self = p
	return p
}

// Encoding returns the name of the output character set.
func (p *PlainText) Encoding() string { return p.enc.name }

// Column returns the current output column.
func (p *PlainText) Column() int { return p.pos }

// SetWrap sets the default wrap mode and returns the previous one.
func (p *PlainText) SetWrap(on bool) bool {
	old := p.Wrap
	p.Wrap = on
	return old
}

// Write emits args, which may include [WriteOption] values for this call.
func (p *PlainText) Write(args ...any) error {
	o, tokens, err := splitArgs(args)
	if err != nil {
		return err
	}
	wrap := p.Wrap
	if o.wrap != nil {
		wrap = *o.wrap
	}
	autoline := p.Autoline
	if o.autoline != nil {
		autoline = *o.autoline
	}

	first, later := p.FirstPrefix, p.LaterPrefix
	defer func() {
		p.FirstPrefix, p.LaterPrefix = first, later
	}()
	if len(o.both)+len(o.first) > 0 {
		p.FirstPrefix = slices.Concat(first, o.both, o.first)
	}
	if len(o.both)+len(o.later) > 0 {
		p.LaterPrefix = slices.Concat(later, o.both, o.later)
	}

	for _, tok := range tokens {
		if p.pos == 0 {
			if err := p.writePrefix(wrap); err != nil {
				return err
			}
		}
		s, raw := p.reduce(tok)
		if raw {
			if err := p.emitRaw(s); err != nil {
				return err
			}
			continue
		}
		if s == "" {
			continue
		}
		if err := p.writeText(s, wrap); err != nil {
			return err
		}
	}

	if autoline {
		if err := p.emit("\n"); err != nil {
			return err
		}
		p.pos = 0
		p.inFirstLine = true
		p.wroteSomething = false
	}
	return nil
}

// writeText emits one token, wrapping it at the width when wrap is set.
func (p *PlainText) writeText(s string, wrap bool) error {
	s = p.enc.sanitize(s)
	width := runewidth.StringWidth(s)
	for wrap && p.Width > 0 && s != "" && p.pos+width > p.Width {
		fit := runewidth.Truncate(s, p.Width-p.pos, "")
		var bit string
		switch i := strings.LastIndexByte(fit, ' '); {
		case i >= 0:
			bit, s = s[:i], s[i+1:]
		case p.wroteSomething:
			// Move the whole token to the next line.
		default:
			if fit == "" {
				_, size := utf8.DecodeRuneInString(s)
				fit = s[:size]
			}
			bit, s = fit, s[len(fit):]
		}
		if s == "" {
			// A rune wider than the line; it ends the token, not the line.
			s, width = bit, runewidth.StringWidth(bit)
			break
		}
		if err := p.emit(bit + "\n"); err != nil {
			return err
		}
		p.pos = 0
		p.inFirstLine = false
		p.wroteSomething = false
		if err := p.writePrefix(wrap); err != nil {
			return err
		}
		width = runewidth.StringWidth(s)
	}
	p.wroteSomething = true
	p.pos += width
	return p.emit(s)
}

func (p *PlainText) writePrefix(wrap bool) error {
	prefix := p.LaterPrefix
	if p.inFirstLine {
		prefix = p.FirstPrefix
	}
	for _, tok := range prefix {
		s, raw := p.reduce(tok)
		if raw {
			if err := p.emitRaw(s); err != nil {
				return err
			}
			continue
		}
		s = p.enc.sanitize(s)
		p.pos += runewidth.StringWidth(s)
		if err := p.emit(s); err != nil {
			return err
		}
	}
	if wrap && p.Width > 0 && p.pos >= p.Width {
		// Leave room for content after an oversized prefix.
		p.pos = max(p.Width-10, 1)
	}
	return nil
}

// reduce resolves deferred tokens and converts the result to text. raw
// reports a [Raw] token, which bypasses encoding and column accounting.
func (p *PlainText) reduce(tok any) (string, bool) {
	for {
		d, ok := tok.(Deferred)
		if !ok {
			break
		}
		tok = d(p.self)
	}
	switch v := tok.(type) {
	case nil:
		return "", false
	case Raw:
		return string(v), true
	case string:
		return v, false
	case []byte:
		return string(v), false
	case fmt.Stringer:
		return v.String(), false
	case error:
		return v.Error(), false
	default:
		return fmt.Sprint(v), false
	}
}

func (p *PlainText) emit(s string) error {
	if s == "" {
		return nil
	}
	_, err := p.w.Write(p.enc.encode(s))
	return classify(err)
}

func (p *PlainText) emitRaw(s string) error {
	if s == "" {
		return nil
	}
	_, err := io.WriteString(p.w, s)
	return classify(err)
}

var emptyToken Deferred = func(Formatter) any { return nil }

// Fg returns a token that expands to nothing.
func (p *PlainText) Fg(string) Deferred { return emptyToken }

// Bg returns a token that expands to nothing.
func (p *PlainText) Bg(string) Deferred { return emptyToken }

// Bold returns a token that expands to nothing.
func (p *PlainText) Bold() Deferred { return emptyToken }

// Underline returns a token that expands to nothing.
func (p *PlainText) Underline() Deferred { return emptyToken }

// Reset returns a token that expands to nothing.
func (p *PlainText) Reset() Deferred { return emptyToken }

// Error writes args after a red, bold "!!! " marker.
func (p *PlainText) Error(args ...any) error {
	f := p.self
	return f.Write(append([]any{Prefixes(f.Fg("red"), f.Bold(), "!!! ", f.Reset())}, args...)...)
}

// Warn writes args after a yellow, bold "*** " marker.
func (p *PlainText) Warn(args ...any) error {
	f := p.self
	return f.Write(append([]any{Prefixes(f.Fg("yellow"), f.Bold(), "*** ", f.Reset())}, args...)...)
}

// Title is a no-op for plain text.
func (p *PlainText) Title(string) error { return nil }

// Flush flushes the stream if it buffers.
func (p *PlainText) Flush() error {
	if f, ok := p.w.(interface{ Flush() error }); ok {
		return classify(f.Flush())
	}
	return nil
}
