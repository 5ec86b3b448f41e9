package report

import (
	"io"

	"github.com/bjaus/snakeoil/formatters"
)

// writePlain writes one item per line through a plain-text formatter, so
// characters the stream's encoding lacks are replaced rather than mangled.
func writePlain[T any](w io.Writer, items []T) error {
	f := formatters.NewPlainText(w)
	for _, item := range items {
		if err := f.Write(item); err != nil {
			return err
		}
	}
	return nil
}
