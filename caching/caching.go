// Package caching memoizes construction of immutable values by their
// arguments while holding only weak references to them.
//
// A [Factory] maps an argument key to a weak pointer. While any caller still
// holds the value, an identical [Factory.Get] returns the same pointer; once
// the value is collected its entry is removed and the next call builds a new
// one. Values handed out by a Factory are shared and must not be mutated.
//
//	type Atom struct{ Category, Package string }
//
//	atoms := caching.New(func(a caching.Args) (*Atom, error) {
//		return &Atom{Category: a.Positional[0].(string), Package: a.Positional[1].(string)}, nil
//	})
//	x, _ := atoms.Get("dev-lang", "go")
//	y, _ := atoms.Get("dev-lang", "go") // x == y
package caching

import (
	"cmp"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync"
	"weak"

	"go.uber.org/zap"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnhashable = errors.New("unhashable arguments")
)

// KeywordArg is a named argument to [Factory.Get].
type KeywordArg struct {
	Name  string
	Value any
}

// Kw builds a keyword argument.
func Kw(name string, value any) KeywordArg {
	return KeywordArg{Name: name, Value: value}
}

type noCache struct{}

// NoCache, passed among the arguments to [Factory.Get], builds a fresh value
// without consulting or filling the cache.
var NoCache noCache

// Args are the arguments of one [Factory.Get] call. Keywords are sorted by
// name.
type Args struct {
	Positional []any
	Keywords   []KeywordArg
}

// Keyword returns the value of the named keyword argument.
func (a Args) Keyword(name string) (any, bool) {
	for _, kw := range a.Keywords {
		if kw.Name == name {
			return kw.Value, true
		}
	}
	return nil, false
}

type options struct {
	caching bool
	log     *zap.Logger
}

// Option configures a [Factory].
type Option func(*options)

// WithCaching enables or disables caching for the factory. Default: enabled.
func WithCaching(on bool) Option {
	return func(o *options) { o.caching = on }
}

// WithLogger sets the logger that receives cache warnings.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// Factory builds values of type T, reusing live values built from the same
// arguments. It is safe for concurrent use.
type Factory[T any] struct {
	build   func(Args) (*T, error)
	caching bool
	log     *zap.Logger

	mu      sync.Mutex
	entries map[any]weak.Pointer[T]
}

// New returns a Factory that calls build on a cache miss.
func New[T any](build func(Args) (*T, error), opts ...Option) *Factory[T] {
	o := options{caching: true, log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Factory[T]{
		build:   build,
		caching: o.caching,
		log:     o.log,
		entries: make(map[any]weak.Pointer[T]),
	}
}

// Get returns the value for args. [KeywordArg] values among args become
// keyword arguments; everything else is positional. Arguments that cannot
// serve as a map key are logged and the value is built uncached.
func (f *Factory[T]) Get(args ...any) (*T, error) {
	a, skip := splitArgs(args)
	if !f.caching || skip {
		return f.build(a)
	}
	key, err := makeKey(a)
	if err != nil {
		f.log.Warn("building uncached value", zap.Error(err), zap.String("type", fmt.Sprintf("%T", (*T)(nil))))
		return f.build(a)
	}

	if v := f.lookup(key); v != nil {
		return v, nil
	}
	v, err := f.build(a)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if wp, ok := f.entries[key]; ok {
		if existing := wp.Value(); existing != nil {
			return existing, nil
		}
	}
	wp := weak.Make(v)
	f.entries[key] = wp
	runtime.AddCleanup(v, f.evict, entry[T]{key: key, wp: wp})
	return v, nil
}

// Len returns the number of live cached values.
func (f *Factory[T]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, wp := range f.entries {
		if wp.Value() != nil {
			n++
		}
	}
	return n
}

func (f *Factory[T]) lookup(key any) *T {
	f.mu.Lock()
	defer f.mu.Unlock()
	if wp, ok := f.entries[key]; ok {
		return wp.Value()
	}
	return nil
}

type entry[T any] struct {
	key any
	wp  weak.Pointer[T]
}

// evict drops an entry once its value is collected, unless the key has
// since been refilled with a newer value.
func (f *Factory[T]) evict(e entry[T]) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cur, ok := f.entries[e.key]; ok && cur == e.wp {
		delete(f.entries, e.key)
	}
}

func splitArgs(args []any) (Args, bool) {
	var a Args
	skip := false
	for _, arg := range args {
		switch v := arg.(type) {
		case noCache:
			skip = true
		case KeywordArg:
			a.Keywords = append(a.Keywords, v)
		default:
			a.Positional = append(a.Positional, arg)
		}
	}
	slices.SortStableFunc(a.Keywords, func(x, y KeywordArg) int {
		return cmp.Compare(x.Name, y.Name)
	})
	return a, skip
}

type keyEnd struct{}

type keyPair struct {
	head any
	tail any
}

type keyword struct {
	name  string
	value any
}

// makeKey folds the arguments into a single comparable value. Keywords are
// wrapped so f(1) and f(x=1) get different keys.
func makeKey(a Args) (key any, err error) {
	key = keyEnd{}
	for i := len(a.Keywords) - 1; i >= 0; i-- {
		key = keyPair{head: keyword{name: a.Keywords[i].Name, value: a.Keywords[i].Value}, tail: key}
	}
	for i := len(a.Positional) - 1; i >= 0; i-- {
		key = keyPair{head: a.Positional[i], tail: key}
	}
	defer func() {
		if r := recover(); r != nil {
			key, err = nil, fmt.Errorf("%w: %v", ErrUnhashable, r)
		}
	}()
	probe := map[any]struct{}{}
	probe[key] = struct{}{}
	return key, nil
}
