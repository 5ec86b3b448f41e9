package formatters

import (
	"errors"
	"io"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEncoder(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		name string
		want string
		kind charset
	}{
		"utf-8":       {name: "UTF-8", want: "utf-8", kind: charsetUTF8},
		"utf8":        {name: "utf8", want: "utf-8", kind: charsetUTF8},
		"ascii":       {name: "ascii", want: "ascii", kind: charsetASCII},
		"us-ascii":    {name: "US-ASCII", want: "ascii", kind: charsetASCII},
		"ansi":        {name: "ANSI_X3.4-1968", want: "ascii", kind: charsetASCII},
		"empty":       {name: "", want: "ascii", kind: charsetASCII},
		"latin1":      {name: "latin1", want: "latin1", kind: charsetMap},
		"unsupported": {name: "klingon", want: "ascii", kind: charsetASCII},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			e := newEncoder(tc.name)
			assert.Equal(t, tc.want, e.name)
			assert.Equal(t, tc.kind, e.kind)
		})
	}
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		charset string
		in      string
		want    string
	}{
		"ascii passthrough":   {charset: "ascii", in: "plain", want: "plain"},
		"ascii replaces":      {charset: "ascii", in: "naïve ☃", want: "na?ve ?"},
		"utf-8 invalid bytes": {charset: "utf-8", in: "a\xffb", want: "a�b"},
		"latin1 keeps accent": {charset: "latin1", in: "é☃", want: "é?"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, newEncoder(tc.charset).sanitize(tc.in))
		})
	}
}

type encodedWriter struct {
	io.Writer
	enc string
}

func (w encodedWriter) Encoding() string { return w.enc }

func TestStreamEncoding(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_CTYPE", "")

	t.Setenv("LANG", "en_US.UTF-8@euro")
	assert.Equal(t, "UTF-8", streamEncoding(io.Discard))
	assert.Equal(t, "latin1", streamEncoding(encodedWriter{io.Discard, "latin1"}))
	assert.Equal(t, "UTF-8", streamEncoding(encodedWriter{io.Discard, ""}))

	t.Setenv("LANG", "C")
	assert.Equal(t, "ascii", streamEncoding(io.Discard))

	t.Setenv("LC_ALL", "de_DE.ISO-8859-1")
	assert.Equal(t, "ISO-8859-1", streamEncoding(io.Discard))
}

func TestClassify(t *testing.T) {
	t.Parallel()

	assert.NoError(t, classify(nil))
	assert.ErrorIs(t, classify(syscall.EPIPE), ErrStreamClosed)
	assert.ErrorIs(t, classify(io.ErrClosedPipe), ErrStreamClosed)

	other := errors.New("other")
	assert.Same(t, other, classify(other))
}
