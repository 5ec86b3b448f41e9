package formatters

import (
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

type charset int

const (
	charsetASCII charset = iota
	charsetUTF8
	charsetMap
)

// encoder converts text into the output character set, replacing what the
// set cannot represent.
type encoder struct {
	name string
	kind charset
	cm   *charmap.Charmap
}

func newEncoder(name string) *encoder {
	switch normalizeCharset(name) {
	case "utf8":
		return &encoder{name: "utf-8", kind: charsetUTF8}
	case "ascii", "usascii", "ansix3.41968", "646", "":
		return &encoder{name: "ascii", kind: charsetASCII}
	}
	e, err := ianaindex.IANA.Encoding(name)
	if err == nil {
		if cm, ok := e.(*charmap.Charmap); ok {
			return &encoder{name: strings.ToLower(name), kind: charsetMap, cm: cm}
		}
	}
	return &encoder{name: "ascii", kind: charsetASCII}
}

func normalizeCharset(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("-", "", "_", "").Replace(name)
}

// streamEncoding picks the charset for w when none was configured.
func streamEncoding(w any) string {
	if e, ok := w.(interface{ Encoding() string }); ok {
		if name := e.Encoding(); name != "" {
			return name
		}
	}
	return localeCodeset()
}

func localeCodeset() string {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		if _, codeset, ok := strings.Cut(v, "."); ok {
			codeset, _, _ = strings.Cut(codeset, "@")
			return codeset
		}
		return "ascii"
	}
	return "ascii"
}

// sanitize returns s with every character the charset cannot encode
// replaced. The result is what will be displayed, so widths are measured on
// it.
func (e *encoder) sanitize(s string) string {
	switch e.kind {
	case charsetUTF8:
		if utf8.ValidString(s) {
			return s
		}
		return strings.ToValidUTF8(s, "\uFFFD")
	case charsetASCII:
		if isASCII(s) {
			return s
		}
		var sb strings.Builder
		for i := 0; i < len(s); {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r >= utf8.RuneSelf {
				r = '?'
			}
			sb.WriteRune(r)
			i += size
		}
		return sb.String()
	default:
		var sb strings.Builder
		for i := 0; i < len(s); {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				r = '?'
			} else if _, ok := e.cm.EncodeRune(r); !ok {
				r = '?'
			}
			sb.WriteRune(r)
			i += size
		}
		return sb.String()
	}
}

// encode converts sanitized text to bytes.
func (e *encoder) encode(s string) []byte {
	if e.kind != charsetMap {
		return []byte(s)
	}
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := e.cm.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return out
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
