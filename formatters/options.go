package formatters

import (
	"fmt"

	"github.com/xo/terminfo"
)

type config struct {
	width    int
	encoding string
	term     string
	ti       *terminfo.Terminfo
}

// Option configures a formatter at construction.
type Option func(*config)

// WithWidth sets the wrap width in columns. Default: 79, or the terminal's
// width for [Terminfo].
func WithWidth(n int) Option {
	return func(c *config) { c.width = n }
}

// WithEncoding sets the output character set, e.g. "utf-8", "ascii" or
// "latin1". Characters the set cannot represent are written as "?".
// Default: the stream's Encoding() if it has one, else the locale's
// codeset, else ascii.
func WithEncoding(name string) Option {
	return func(c *config) { c.encoding = name }
}

// WithTerm names the terminfo entry to load instead of $TERM.
func WithTerm(name string) Option {
	return func(c *config) { c.term = name }
}

// WithTerminfo supplies an already loaded terminfo entry.
func WithTerminfo(ti *terminfo.Terminfo) Option {
	return func(c *config) { c.ti = ti }
}

type prefixSet uint8

const (
	setPrefix prefixSet = 1 << iota
	setPrefixes
	setFirstPrefix
	setFirstPrefixes
	setLaterPrefix
	setLaterPrefixes
)

type writeOptions struct {
	wrap     *bool
	autoline *bool
	set      prefixSet
	both     []any
	first    []any
	later    []any
}

// WriteOption changes a single Write call. Pass it among the tokens.
type WriteOption struct {
	apply func(*writeOptions)
}

// Wrap overrides the formatter's wrap mode for one call.
func Wrap(on bool) WriteOption {
	return WriteOption{func(o *writeOptions) { o.wrap = &on }}
}

// Autoline overrides whether the call ends with a line break.
func Autoline(on bool) WriteOption {
	return WriteOption{func(o *writeOptions) { o.autoline = &on }}
}

// Prefix adds tok to both the first-line and continuation prefixes for one
// call.
func Prefix(tok any) WriteOption {
	return WriteOption{func(o *writeOptions) {
		o.set |= setPrefix
		o.both = append(o.both, tok)
	}}
}

// Prefixes adds toks to both the first-line and continuation prefixes.
func Prefixes(toks ...any) WriteOption {
	return WriteOption{func(o *writeOptions) {
		o.set |= setPrefixes
		o.both = append(o.both, toks...)
	}}
}

// FirstPrefix adds tok to the first-line prefix for one call.
func FirstPrefix(tok any) WriteOption {
	return WriteOption{func(o *writeOptions) {
		o.set |= setFirstPrefix
		o.first = append(o.first, tok)
	}}
}

// FirstPrefixes adds toks to the first-line prefix.
func FirstPrefixes(toks ...any) WriteOption {
	return WriteOption{func(o *writeOptions) {
		o.set |= setFirstPrefixes
		o.first = append(o.first, toks...)
	}}
}

// LaterPrefix adds tok to the continuation prefix for one call.
func LaterPrefix(tok any) WriteOption {
	return WriteOption{func(o *writeOptions) {
		o.set |= setLaterPrefix
		o.later = append(o.later, tok)
	}}
}

// LaterPrefixes adds toks to the continuation prefix.
func LaterPrefixes(toks ...any) WriteOption {
	return WriteOption{func(o *writeOptions) {
		o.set |= setLaterPrefixes
		o.later = append(o.later, toks...)
	}}
}

var prefixConflicts = []struct {
	a, b         prefixSet
	aName, bName string
}{
	{setPrefix, setFirstPrefix | setLaterPrefix, "Prefix", "FirstPrefix/LaterPrefix"},
	{setPrefixes, setFirstPrefixes | setLaterPrefixes, "Prefixes", "FirstPrefixes/LaterPrefixes"},
	// Prefix feeds both single-token slots and Prefixes both list slots.
	{setPrefix | setFirstPrefix, setPrefixes | setFirstPrefixes, "Prefix/FirstPrefix", "Prefixes/FirstPrefixes"},
	{setPrefix | setLaterPrefix, setPrefixes | setLaterPrefixes, "Prefix/LaterPrefix", "Prefixes/LaterPrefixes"},
}

// splitArgs separates write options from tokens and rejects conflicting
// prefix options.
func splitArgs(args []any) (writeOptions, []any, error) {
	var o writeOptions
	tokens := make([]any, 0, len(args))
	for _, arg := range args {
		if wo, ok := arg.(WriteOption); ok {
			if wo.apply != nil {
				wo.apply(&o)
			}
			continue
		}
		tokens = append(tokens, arg)
	}
	for _, c := range prefixConflicts {
		if o.set&c.a != 0 && o.set&c.b != 0 {
			return o, nil, fmt.Errorf("%w: %s cannot be combined with %s", ErrInvalidArgument, c.aName, c.bName)
		}
	}
	return o, tokens, nil
}
