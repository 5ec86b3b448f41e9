package fileutils

import (
	"bytes"
	"errors"
	"io"
	"iter"
	"os"
	"time"
)

type readOptions struct {
	strip          bool
	swallowMissing bool
	noneOnMissing  bool
}

// ReadOption configures [Readlines].
type ReadOption func(*readOptions)

// StripWhitespace trims ASCII whitespace from both ends of every line.
// Default: true. Without it, lines keep their trailing newline.
func StripWhitespace(on bool) ReadOption {
	return func(o *readOptions) { o.strip = on }
}

// SwallowMissing turns a missing file into an empty result instead of an
// error wrapping [ErrNotFound].
func SwallowMissing(on bool) ReadOption {
	return func(o *readOptions) { o.swallowMissing = on }
}

// NoneOnMissing makes a swallowed missing file return a nil *Lines rather
// than an empty one.
func NoneOnMissing(on bool) ReadOption {
	return func(o *readOptions) { o.noneOnMissing = on }
}

// Lines is a forward-only cursor over a file's lines. It is not safe for
// concurrent use and cannot be rewound.
type Lines struct {
	path  string
	strip bool
	mtime time.Time
	src   *view
	pos   int
}

// Readlines opens path and returns its lines.
//
// A missing file is an error wrapping [ErrNotFound] and the OS error unless
// [SwallowMissing] is set, in which case the result is empty (or nil, with
// [NoneOnMissing]).
func Readlines(path string, opts ...ReadOption) (*Lines, error) {
	o := readOptions{strip: true}
	for _, opt := range opts {
		opt(&o)
	}
	src, err := load(path, true)
	if err != nil {
		if o.swallowMissing && errors.Is(err, ErrNotFound) {
			if o.noneOnMissing {
				return nil, nil
			}
			return &Lines{path: path, strip: o.strip}, nil
		}
		return nil, err
	}
	return &Lines{path: path, strip: o.strip, mtime: src.mtime, src: src}, nil
}

// Next returns the next line. Once the lines are exhausted it releases the
// underlying file and returns [io.EOF] on this and every later call.
func (l *Lines) Next() (string, error) {
	if l.src == nil {
		return "", io.EOF
	}
	data := l.src.data
	if l.pos >= len(data) {
		if err := l.Close(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	rest := data[l.pos:]
	line := rest
	if i := bytes.IndexByte(rest, '\n'); i >= 0 {
		line = rest[:i+1]
	}
	l.pos += len(line)
	if l.strip {
		line = bytes.TrimFunc(line, isSpace)
	}
	return string(line), nil
}

// All yields the remaining lines. It shares the cursor with [Lines.Next], so
// ranging twice yields nothing the second time.
func (l *Lines) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			line, err := l.Next()
			if err != nil {
				return
			}
			if !yield(line) {
				return
			}
		}
	}
}

// Mtime returns the modification time captured when the file was opened.
// It is the zero time for a swallowed missing file.
func (l *Lines) Mtime() time.Time { return l.mtime }

// Stale reports whether the file's modification time differs from the one
// captured at open. A file that has since disappeared is stale.
func (l *Lines) Stale() (bool, error) {
	fi, err := os.Stat(l.path)
	if err != nil {
		if isMissing(err) {
			return !l.mtime.IsZero(), nil
		}
		return false, err
	}
	return !fi.ModTime().Equal(l.mtime), nil
}

// Close releases the mapping and descriptor. It is safe to call more than
// once.
func (l *Lines) Close() error {
	if l.src == nil {
		return nil
	}
	src := l.src
	l.src = nil
	return src.release()
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
