package formatters

import (
	"fmt"
	"io"
	"os"

	"github.com/xo/terminfo"

	"github.com/bjaus/snakeoil/mappings"
)

// Colors maps color names to their ANSI palette index.
var Colors = map[string]int{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"cyan":    6,
	"white":   7,
}

var requiredCaps = []struct {
	cap  int
	name string
}{
	{terminfo.EnterBoldMode, "bold"},
	{terminfo.EnterUnderlineMode, "smul"},
	{terminfo.ExitAttributeMode, "sgr0"},
	{terminfo.OrigPair, "op"},
	{terminfo.SetAForeground, "setaf"},
	{terminfo.SetABackground, "setab"},
}

// Terminfo is a [PlainText] formatter that also emits terminal attributes.
// Attributes and colors switched on during a Write are reset when it
// returns.
type Terminfo struct {
	*PlainText

	ti      *terminfo.Terminfo
	fg, bg  *mappings.DefaultDictKey[string, Deferred]
	modes   bool
	colorFg string
	colorBg string
}

// NewTerminfo returns a formatter for the terminal described by $TERM, or
// by [WithTerm] or [WithTerminfo].
func NewTerminfo(w io.Writer, opts ...Option) (*Terminfo, error) {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	ti := c.ti
	if ti == nil {
		name := c.term
		if name == "" {
			name = os.Getenv("TERM")
		}
		if name == "" {
			return nil, fmt.Errorf("%w: TERM is not set", ErrTerminfoDisabled)
		}
		var err error
		if ti, err = terminfo.Load(name); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrTerminfoDisabled, name, err)
		}
	}
	for _, rc := range requiredCaps {
		if len(ti.Strings[rc.cap]) == 0 {
			return nil, fmt.Errorf("%w: %s has no %s", ErrTerminfoUnsupported, termName(ti), rc.name)
		}
	}

	width := defaultWidth
	if cols := ti.Num(terminfo.Columns); cols > 0 {
		width = cols
	}
	t := &Terminfo{PlainText: newPlainText(w, c, width), ti: ti}
	t.self = t
	t.fg = mappings.NewDefaultDictKey(func(color string) Deferred {
		return func(Formatter) any { return t.setColor(color, true) }
	})
	t.bg = mappings.NewDefaultDictKey(func(color string) Deferred {
		return func(Formatter) any { return t.setColor(color, false) }
	})
	return t, nil
}

func termName(ti *terminfo.Terminfo) string {
	if len(ti.Names) > 0 {
		return ti.Names[0]
	}
	return "terminal"
}

// ANSI returns a terminfo entry for a generic ANSI terminal, for use when
// the system database has none.
func ANSI() *terminfo.Terminfo {
	return &terminfo.Terminfo{
		Names: []string{"ansi"},
		Nums:  map[int]int{terminfo.Columns: 80, terminfo.MaxColors: 8},
		Strings: map[int][]byte{
			terminfo.EnterBoldMode:      []byte("\x1b[1m"),
			terminfo.EnterUnderlineMode: []byte("\x1b[4m"),
			terminfo.ExitAttributeMode:  []byte("\x1b[0;10m"),
			terminfo.OrigPair:           []byte("\x1b[39;49m"),
			terminfo.SetAForeground:     []byte("\x1b[3%p1%dm"),
			terminfo.SetABackground:     []byte("\x1b[4%p1%dm"),
		},
	}
}

// Write emits args like [PlainText.Write], then resets any attributes and
// colors left active.
func (t *Terminfo) Write(args ...any) error {
	err := t.PlainText.Write(args...)
	if rerr := t.restore(); err == nil {
		err = rerr
	}
	return err
}

// restore turns off whatever attributes and colors are still active.
func (t *Terminfo) restore() error {
	var s string
	if t.modes {
		s += t.ti.Printf(terminfo.ExitAttributeMode)
		t.modes = false
	}
	if t.colorFg != "" || t.colorBg != "" {
		s += t.ti.Printf(terminfo.OrigPair)
		t.colorFg, t.colorBg = "", ""
	}
	return t.emitRaw(s)
}

// Bold returns a token enabling bold.
func (t *Terminfo) Bold() Deferred {
	return func(Formatter) any {
		t.modes = true
		return Raw(t.ti.Printf(terminfo.EnterBoldMode))
	}
}

// Underline returns a token enabling underline.
func (t *Terminfo) Underline() Deferred {
	return func(Formatter) any {
		t.modes = true
		return Raw(t.ti.Printf(terminfo.EnterUnderlineMode))
	}
}

// Reset returns a token clearing attributes and colors.
func (t *Terminfo) Reset() Deferred {
	return func(Formatter) any {
		t.modes = false
		t.colorFg, t.colorBg = "", ""
		return Raw(t.ti.Printf(terminfo.ExitAttributeMode))
	}
}

// Fg returns a token setting the foreground color. Tokens are cached per
// color.
func (t *Terminfo) Fg(color string) Deferred { return t.fg.Get(color) }

// Bg returns a token setting the background color.
func (t *Terminfo) Bg(color string) Deferred { return t.bg.Get(color) }

func (t *Terminfo) setColor(color string, foreground bool) Raw {
	if color == "" {
		// The terminal can only restore both channels at once.
		s := t.ti.Printf(terminfo.OrigPair)
		if foreground {
			t.colorFg = ""
			if idx, ok := Colors[t.colorBg]; ok {
				s += t.ti.Printf(terminfo.SetABackground, idx)
			}
		} else {
			t.colorBg = ""
			if idx, ok := Colors[t.colorFg]; ok {
				s += t.ti.Printf(terminfo.SetAForeground, idx)
			}
		}
		return Raw(s)
	}
	idx, ok := Colors[color]
	if !ok {
		return ""
	}
	if foreground {
		t.colorFg = color
		return Raw(t.ti.Printf(terminfo.SetAForeground, idx))
	}
	t.colorBg = color
	return Raw(t.ti.Printf(terminfo.SetABackground, idx))
}

// Title writes s to the terminal's status line when it has one.
func (t *Terminfo) Title(s string) error {
	tsl, fsl := t.ti.Strings[terminfo.ToStatusLine], t.ti.Strings[terminfo.FromStatusLine]
	if len(tsl) == 0 || len(fsl) == 0 {
		return nil
	}
	if err := t.emitRaw(string(tsl) + s + string(fsl)); err != nil {
		return err
	}
	return t.Flush()
}
