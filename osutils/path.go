package osutils

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrInvalidArgument = errors.New("invalid argument")
)

// Normpath lexically normalizes p. Repeated separators collapse, "." segments
// are dropped, and ".." removes the preceding segment. A leading separator is
// kept (a leading "//" folds to "/"), ".." above the root of an absolute path
// is discarded, and leading ".." of a relative path stays. The result never
// ends in a separator; an empty result is ".".
func Normpath(p string) string {
	if p == "" {
		return "."
	}
	rooted := p[0] == '/'
	buf := make([]byte, 0, len(p))
	base := 0
	if rooted {
		buf = append(buf, '/')
		base = 1
	}
	// floor marks how far ".." may backtrack; leading ".." segments of a
	// relative path sit below it.
	floor := base
	for i := 0; i < len(p); {
		switch {
		case p[i] == '/':
			i++
		case p[i] == '.' && (i+1 == len(p) || p[i+1] == '/'):
			i++
		case p[i] == '.' && p[i+1] == '.' && (i+2 == len(p) || p[i+2] == '/'):
			i += 2
			switch {
			case len(buf) > floor:
				j := len(buf) - 1
				for j > floor && buf[j] != '/' {
					j--
				}
				buf = buf[:j]
			case !rooted:
				if len(buf) > 0 {
					buf = append(buf, '/')
				}
				buf = append(buf, '.', '.')
				floor = len(buf)
			}
		default:
			if len(buf) > base {
				buf = append(buf, '/')
			}
			for ; i < len(p) && p[i] != '/'; i++ {
				buf = append(buf, p[i])
			}
		}
	}
	if len(buf) == 0 {
		return "."
	}
	return string(buf)
}

// normpathNative is the reference normalizer Normpath must agree with.
func normpathNative(p string) string {
	return path.Clean(p)
}

// Join concatenates path segments with "/". Joining restarts at the last
// segment that begins with a separator, runs of separators collapse to one,
// and ".." is left alone. The result ends in a separator only when the final
// segment does, or when the final segment is empty.
func Join(elem ...string) (string, error) {
	if len(elem) == 0 {
		return "", fmt.Errorf("%w: join takes at least one path", ErrInvalidArgument)
	}
	start := 0
	for i, e := range elem {
		if strings.HasPrefix(e, "/") {
			start = i
		}
	}
	var sb strings.Builder
	last := len(elem) - 1
	for i := start; i <= last; i++ {
		e := elem[i]
		if e == "" {
			continue
		}
		for j := 0; j < len(e); j++ {
			if e[j] == '/' && endsWithSlash(&sb) {
				continue
			}
			sb.WriteByte(e[j])
		}
		if i != last && !endsWithSlash(&sb) {
			sb.WriteByte('/')
		}
	}
	return sb.String(), nil
}

// Pjoin is [Join] for callers that always pass at least one segment.
func Pjoin(first string, rest ...string) string {
	joined, _ := Join(append([]string{first}, rest...)...)
	return joined
}

func endsWithSlash(sb *strings.Builder) bool {
	s := sb.String()
	return len(s) > 0 && s[len(s)-1] == '/'
}
