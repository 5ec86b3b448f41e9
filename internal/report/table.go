package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var borderSets = map[BorderStyle]borderChars{
	BorderRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	BorderASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
}

// layout is everything a table needs besides its rows, read from the
// optional interfaces of the first item.
type layout struct {
	title   string
	header  []string
	footer  []string
	caption string
	border  BorderStyle
	aligns  []Alignment
	widths  []int
}

func writeTable[T any](w io.Writer, items []T) error {
	if len(items) == 0 {
		return nil
	}
	if err := requireRower(Table, items[0]); err != nil {
		return err
	}

	rows := make([][]string, len(items))
	for i, item := range items {
		rows[i] = any(item).(Rower).Row()
	}

	first := any(items[0])
	l := layout{border: BorderRounded}
	if h, ok := first.(Headed); ok {
		l.header = h.Header()
	}
	if t, ok := first.(Titled); ok {
		l.title = t.Title()
	}
	if b, ok := first.(Bordered); ok {
		l.border = b.Border()
	}
	if a, ok := first.(Aligned); ok {
		l.aligns = a.Alignments()
	}
	if f, ok := first.(Footered); ok {
		l.footer = f.Footer()
	}
	if c, ok := first.(Captioned); ok {
		l.caption = c.Caption()
	}

	numCols := colCount(l.header, rows, l.footer)
	l.widths = computeWidths(numCols, l.header, rows, l.footer)
	if tr, ok := first.(Truncated); ok {
		for i, limit := range tr.MaxWidths() {
			if i < numCols && limit > 0 && l.widths[i] > limit {
				l.widths[i] = limit
			}
		}
	}
	l.aligns = extendAligns(l.aligns, numCols)

	var err error
	if _, bordered := borderSets[l.border]; bordered {
		err = renderBorderedTable(w, l, rows)
	} else {
		err = renderPlainTable(w, l, rows)
	}
	if err != nil {
		return err
	}
	if l.caption != "" {
		if _, err := fmt.Fprintln(w, l.caption); err != nil {
			return err
		}
	}
	return nil
}

func colCount(header []string, rows [][]string, footer []string) int {
	n := max(len(header), len(footer))
	for _, row := range rows {
		n = max(n, len(row))
	}
	return n
}

func computeWidths(numCols int, header []string, rows [][]string, footer []string) []int {
	widths := make([]int, numCols)
	measure := func(cells []string) {
		for i, cell := range cells {
			if w := runewidth.StringWidth(cell); i < numCols && w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(header)
	for _, row := range rows {
		measure(row)
	}
	measure(footer)
	return widths
}

func extendAligns(aligns []Alignment, numCols int) []Alignment {
	if len(aligns) >= numCols {
		return aligns[:numCols]
	}
	extended := make([]Alignment, numCols)
	copy(extended, aligns)
	return extended
}

// --- Plain table (BorderNone) ---

func renderPlainTable(w io.Writer, l layout, rows [][]string) error {
	if len(l.header) > 0 {
		if err := writePlainRow(w, l.header, l); err != nil {
			return err
		}
		if err := writePlainSep(w, l.widths); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if err := writePlainRow(w, row, l); err != nil {
			return err
		}
	}
	if len(l.footer) > 0 {
		if err := writePlainSep(w, l.widths); err != nil {
			return err
		}
		if err := writePlainRow(w, l.footer, l); err != nil {
			return err
		}
	}
	return nil
}

func writePlainSep(w io.Writer, widths []int) error {
	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	_, err := fmt.Fprintln(w, strings.Join(sep, "  "))
	return err
}

func writePlainRow(w io.Writer, cells []string, l layout) error {
	parts := make([]string, len(l.widths))
	for i, width := range l.widths {
		parts[i] = formatTableCell(cellAt(cells, i), width, l.aligns[i])
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	return err
}

// --- Bordered table ---

func renderBorderedTable(w io.Writer, l layout, rows [][]string) error {
	bc := borderSets[l.border]

	if l.title != "" {
		if err := drawHLine(w, l.widths, bc.topLeft, bc.horizontal, bc.horizontal, bc.topRight); err != nil {
			return err
		}
		inner := tableInnerWidth(l.widths) - 2
		padded := alignCell(l.title, inner, AlignCenter)
		if _, err := fmt.Fprintf(w, "%s %s %s\n", bc.vertical, padded, bc.vertical); err != nil {
			return err
		}
		if err := drawHLine(w, l.widths, bc.leftTee, bc.horizontal, bc.topTee, bc.rightTee); err != nil {
			return err
		}
	} else {
		if err := drawHLine(w, l.widths, bc.topLeft, bc.horizontal, bc.topTee, bc.topRight); err != nil {
			return err
		}
	}

	divider := func() error {
		return drawHLine(w, l.widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee)
	}
	if len(l.header) > 0 {
		if err := drawBorderedRow(w, l.header, l, bc.vertical); err != nil {
			return err
		}
		if err := divider(); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if err := drawBorderedRow(w, row, l, bc.vertical); err != nil {
			return err
		}
	}
	if len(l.footer) > 0 {
		if err := divider(); err != nil {
			return err
		}
		if err := drawBorderedRow(w, l.footer, l, bc.vertical); err != nil {
			return err
		}
	}
	return drawHLine(w, l.widths, bc.bottomLeft, bc.horizontal, bc.bottomTee, bc.bottomRight)
}

// tableInnerWidth returns the width between the outer vertical borders.
// Each cell takes its width plus one space of padding per side, and cells
// are separated by a single border character.
func tableInnerWidth(widths []int) int {
	n := 0
	for _, w := range widths {
		n += w + 2
	}
	if len(widths) > 1 {
		n += len(widths) - 1
	}
	return n
}

func drawHLine(w io.Writer, widths []int, left, fill, mid, right string) error {
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat(fill, width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func drawBorderedRow(w io.Writer, cells []string, l layout, vert string) error {
	var sb strings.Builder
	sb.WriteString(vert)
	for i, width := range l.widths {
		sb.WriteString(" ")
		sb.WriteString(formatTableCell(cellAt(cells, i), width, l.aligns[i]))
		sb.WriteString(" ")
		if i < len(l.widths)-1 {
			sb.WriteString(vert)
		}
	}
	sb.WriteString(vert)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func cellAt(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}

func formatTableCell(s string, width int, align Alignment) string {
	if width > 0 && runewidth.StringWidth(s) > width {
		if width <= 3 {
			s = runewidth.Truncate(s, width, "")
		} else {
			s = runewidth.Truncate(s, width, "...")
		}
	}
	return alignCell(s, width, align)
}

func alignCell(s string, width int, align Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
