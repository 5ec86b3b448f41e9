package report

import (
	"io"

	"gopkg.in/yaml.v3"
)

func writeYAML[T any](w io.Writer, items []T) error {
	enc := yaml.NewEncoder(w)
	if len(items) > 0 {
		if ind, ok := any(items[0]).(Indented); ok && ind.Indent() != "" {
			enc.SetIndent(len(ind.Indent()))
		}
	}
	var v any = items
	if len(items) == 1 {
		v = items[0]
	}
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
