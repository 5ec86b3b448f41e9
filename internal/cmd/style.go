package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bjaus/snakeoil/internal/report"
)

// tableStyle holds the presentation flags shared by the report commands.
// Row types hand it to the report package through its optional interfaces.
type tableStyle struct {
	borderName string
	maxWidth   int
	indent     int

	border report.BorderStyle
}

func (s *tableStyle) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.borderName, "border", "rounded", "table border style (rounded, ascii, none)")
	cmd.Flags().IntVar(&s.maxWidth, "max-width", 0, "cut table cells wider than this many columns (0 for no limit)")
	cmd.Flags().IntVar(&s.indent, "indent", 0, "indent json and yaml output by this many spaces (0 for the default)")
}

// resolve validates the flag values. Call it before rendering.
func (s *tableStyle) resolve() error {
	if s.maxWidth < 0 {
		return fmt.Errorf("--max-width must not be negative, got %d", s.maxWidth)
	}
	if s.indent < 0 {
		return fmt.Errorf("--indent must not be negative, got %d", s.indent)
	}
	border, err := report.ParseBorder(s.borderName)
	if err != nil {
		return err
	}
	s.border = border
	return nil
}

func (s *tableStyle) maxWidths(cols int) []int {
	if s.maxWidth == 0 {
		return nil
	}
	widths := make([]int, cols)
	for i := range widths {
		widths[i] = s.maxWidth
	}
	return widths
}

func (s *tableStyle) indentString() string {
	return strings.Repeat(" ", s.indent)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
