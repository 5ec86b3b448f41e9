package report

import (
	"encoding/json"
	"io"
)

func writeJSON[T any](w io.Writer, items []T) error {
	enc := newJSONEncoder(w, items...)
	if len(items) == 1 {
		return enc.Encode(items[0])
	}
	return enc.Encode(items)
}

func writeJSONL[T any](w io.Writer, items []T) error {
	for _, item := range items {
		if err := newJSONEncoder(w, item).Encode(item); err != nil {
			return err
		}
	}
	return nil
}

// newJSONEncoder returns an encoder indented the way the first item asks.
func newJSONEncoder[T any](w io.Writer, items ...T) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if len(items) > 0 {
		if ind, ok := any(items[0]).(Indented); ok {
			enc.SetIndent("", ind.Indent())
		}
	}
	return enc
}
