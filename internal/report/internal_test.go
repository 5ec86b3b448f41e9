package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errInternalWrite = errors.New("write failed")

type errWriterInternal struct{}

func (e *errWriterInternal) Write([]byte) (int, error) {
	return 0, errInternalWrite
}

func TestAlignCell(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		s     string
		width int
		align Alignment
		want  string
	}{
		"left":       {s: "ab", width: 5, align: AlignLeft, want: "ab   "},
		"right":      {s: "ab", width: 5, align: AlignRight, want: "   ab"},
		"center":     {s: "ab", width: 5, align: AlignCenter, want: " ab  "},
		"exact":      {s: "abc", width: 3, align: AlignRight, want: "abc"},
		"wide runes": {s: "日", width: 4, align: AlignLeft, want: "日  "},
		"over width": {s: "abcdef", width: 3, align: AlignLeft, want: "abcdef"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, alignCell(tt.s, tt.width, tt.align))
		})
	}
}

func TestFormatTableCellTruncates(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ab", formatTableCell("abcdef", 2, AlignLeft))
	assert.Equal(t, "a...", formatTableCell("abcdef", 4, AlignLeft))
	assert.Equal(t, "abc ", formatTableCell("abc", 4, AlignLeft))
}

func TestTableInnerWidth(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, tableInnerWidth(nil))
	assert.Equal(t, 7, tableInnerWidth([]int{5}))
	assert.Equal(t, 13, tableInnerWidth([]int{5, 3}))
}

func TestColCount(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 3, colCount([]string{"a"}, [][]string{{"a", "b", "c"}}, nil))
	assert.Equal(t, 4, colCount(nil, [][]string{{"a"}}, []string{"", "", "", "x"}))
}

func TestExtendAlignsNoop(t *testing.T) {
	t.Parallel()
	aligns := extendAligns([]Alignment{AlignRight, AlignRight, AlignRight}, 2)
	assert.Equal(t, []Alignment{AlignRight, AlignRight}, aligns)
	assert.Equal(t, []Alignment{AlignRight, AlignLeft}, extendAligns([]Alignment{AlignRight}, 2))
}

func TestWriteCSVRowSuccess(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := writeCSVRow(&buf, []string{"a", "b"})
	assert.NoError(t, err)
	assert.Equal(t, "a,b\n", buf.String())
}

func TestWriteCSVRowError(t *testing.T) {
	t.Parallel()
	w := &errWriterInternal{}
	// Small data: flush error hit via cw.Error().
	err := writeCSVRow(w, []string{"a", "b"})
	assert.ErrorIs(t, err, errInternalWrite)
}

func TestWriteCSVRowLargeDataError(t *testing.T) {
	t.Parallel()
	w := &errWriterInternal{}
	// Large data exceeds the bufio buffer, so cw.Write fails.
	big := strings.Repeat("x", 5000)
	err := writeCSVRow(w, []string{big})
	assert.ErrorIs(t, err, errInternalWrite)
}
