package report_test

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/snakeoil/internal/report"
)

type basicRow struct {
	Name string `json:"name" yaml:"name"`
	Age  string `json:"age" yaml:"age"`
}

func (r basicRow) Row() []string { return []string{r.Name, r.Age} }

type headedRow struct {
	basicRow
}

func (r headedRow) Header() []string { return []string{"Name", "Age"} }

type asciiRow struct{ headedRow }

func (r asciiRow) Border() report.BorderStyle { return report.BorderASCII }

type noBorderRow struct{ headedRow }

func (r noBorderRow) Border() report.BorderStyle { return report.BorderNone }

type richRow struct{ asciiRow }

func (r richRow) Title() string { return "People" }
func (r richRow) Alignments() []report.Alignment {
	return []report.Alignment{report.AlignLeft, report.AlignRight}
}
func (r richRow) Footer() []string { return []string{"Total", "2"} }
func (r richRow) Caption() string  { return "2 results" }

type truncRow struct{ noBorderRow }

func (r truncRow) MaxWidths() []int { return []int{4} }

type indentedVal struct {
	Name string `json:"name" yaml:"name"`
}

func (v indentedVal) Indent() string { return "  " }

var errWrite = errors.New("write failed")

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, errWrite }

// failAfterN succeeds for the first n writes, then fails.
type failAfterN struct {
	n int
}

func (f *failAfterN) Write(p []byte) (int, error) {
	if f.n <= 0 {
		return 0, errWrite
	}
	f.n--
	return len(p), nil
}

func people() []headedRow {
	return []headedRow{
		{basicRow{Name: "Alice", Age: "30"}},
		{basicRow{Name: "Bob", Age: "25"}},
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    report.Format
		wantErr require.ErrorAssertionFunc
	}{
		"table":   {input: "table", want: report.Table, wantErr: require.NoError},
		"json":    {input: "json", want: report.JSON, wantErr: require.NoError},
		"jsonl":   {input: "jsonl", want: report.JSONL, wantErr: require.NoError},
		"yaml":    {input: "yaml", want: report.YAML, wantErr: require.NoError},
		"csv":     {input: "csv", want: report.CSV, wantErr: require.NoError},
		"tsv":     {input: "tsv", want: report.TSV, wantErr: require.NoError},
		"plain":   {input: "plain", want: report.Plain, wantErr: require.NoError},
		"unknown": {input: "xml", want: "", wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := report.ParseFormat(tt.input)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormatUnsupported(t *testing.T) {
	t.Parallel()
	_, err := report.ParseFormat("markdown")
	require.ErrorIs(t, err, report.ErrUnsupportedFormat)
}

func TestParseBorder(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		want  report.BorderStyle
	}{
		"rounded": {input: "rounded", want: report.BorderRounded},
		"ascii":   {input: "ascii", want: report.BorderASCII},
		"none":    {input: "none", want: report.BorderNone},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := report.ParseBorder(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}

	_, err := report.ParseBorder("double")
	require.ErrorIs(t, err, report.ErrUnsupportedBorder)
	assert.Equal(t, "BorderStyle(9)", report.BorderStyle(9).String())
}

func TestFormats(t *testing.T) {
	t.Parallel()
	got := report.Formats()
	assert.Equal(t, []report.Format{
		report.Table, report.JSON, report.JSONL, report.YAML,
		report.CSV, report.TSV, report.Plain,
	}, got)
	// Returned slice must be a copy.
	got[0] = "modified"
	assert.Equal(t, report.Table, report.Formats()[0])
}

func TestIsSupported(t *testing.T) {
	t.Parallel()
	assert.True(t, report.IsSupported[string](report.JSON))
	assert.True(t, report.IsSupported[string](report.Plain))
	assert.False(t, report.IsSupported[string](report.Table))
	assert.True(t, report.IsSupported[basicRow](report.CSV))
	assert.False(t, report.IsSupported[basicRow]("xml"))
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		items []any
		want  string
	}{
		"single struct": {
			items: []any{struct {
				Name string `json:"name"`
			}{Name: "Alice"}},
			want: `{"name":"Alice"}` + "\n",
		},
		"multiple items": {
			items: []any{"a", "b"},
			want:  `["a","b"]` + "\n",
		},
		"no html escaping": {
			items: []any{"<a&b>"},
			want:  `"<a&b>"` + "\n",
		},
		"nil": {
			items: []any{nil},
			want:  "null\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			require.NoError(t, report.Write(&buf, report.JSON, tt.items...))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteJSONIndented(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.JSON, indentedVal{Name: "Alice"}))
	assert.Equal(t, "{\n  \"name\": \"Alice\"\n}\n", buf.String())
}

func TestWriteJSONL(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.JSONL, people()...))
	assert.Equal(t, `{"name":"Alice","age":"30"}`+"\n"+`{"name":"Bob","age":"25"}`+"\n", buf.String())
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.YAML, basicRow{Name: "Alice", Age: "30"}))
	assert.Equal(t, "name: Alice\nage: \"30\"\n", buf.String())

	buf.Reset()
	require.NoError(t, report.Write(&buf, report.YAML, "a", "b"))
	assert.Equal(t, "- a\n- b\n", buf.String())
}

func TestWriteDelimited(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format report.Format
		items  []any
		want   string
	}{
		"csv with header": {
			format: report.CSV,
			items:  []any{people()[0], people()[1]},
			want:   "Name,Age\nAlice,30\nBob,25\n",
		},
		"csv without header": {
			format: report.CSV,
			items:  []any{basicRow{Name: "Alice", Age: "30"}},
			want:   "Alice,30\n",
		},
		"csv quoting": {
			format: report.CSV,
			items:  []any{basicRow{Name: "hello, world", Age: "30"}},
			want:   "\"hello, world\",30\n",
		},
		"tsv with header": {
			format: report.TSV,
			items:  []any{people()[0], people()[1]},
			want:   "Name\tAge\nAlice\t30\nBob\t25\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			require.NoError(t, report.Write(&buf, tt.format, tt.items...))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteRejectsNonRower(t *testing.T) {
	t.Parallel()
	for _, f := range []report.Format{report.Table, report.CSV, report.TSV} {
		t.Run(f.String(), func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			err := report.Write(&buf, f, "not a rower")
			require.ErrorIs(t, err, report.ErrMissingInterface)
			assert.Contains(t, err.Error(), "Rower")
		})
	}
}

func TestWriteEmpty(t *testing.T) {
	t.Parallel()
	for _, f := range []report.Format{report.Table, report.CSV, report.TSV, report.JSONL, report.Plain} {
		t.Run(f.String(), func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			require.NoError(t, report.Write[basicRow](&buf, f))
			assert.Empty(t, buf.String())
		})
	}
}

func TestWriteUnsupported(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := report.Write(&buf, report.Format("xml"), "x")
	require.ErrorIs(t, err, report.ErrUnsupportedFormat)
}

func TestWriteTableBorderRounded(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.Table, people()...))
	want := strings.Join([]string{
		"╭───────┬─────╮",
		"│ Name  │ Age │",
		"├───────┼─────┤",
		"│ Alice │ 30  │",
		"│ Bob   │ 25  │",
		"╰───────┴─────╯",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteTableBorderNone(t *testing.T) {
	t.Parallel()
	items := []noBorderRow{{people()[0]}, {people()[1]}}
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.Table, items...))
	assert.Equal(t, "Name   Age\n-----  ---\nAlice  30\nBob    25\n", buf.String())
}

func TestWriteTableRich(t *testing.T) {
	t.Parallel()
	items := []richRow{{asciiRow{people()[0]}}, {asciiRow{people()[1]}}}
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.Table, items...))
	want := strings.Join([]string{
		"+-------------+",
		"|   People    |",
		"+-------+-----+",
		"| Name  | Age |",
		"+-------+-----+",
		"| Alice |  30 |",
		"| Bob   |  25 |",
		"+-------+-----+",
		"| Total |   2 |",
		"+-------+-----+",
		"2 results",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteTableTruncated(t *testing.T) {
	t.Parallel()
	items := []truncRow{{noBorderRow{people()[0]}}, {noBorderRow{people()[1]}}}
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.Table, items...))
	assert.Equal(t, "Name  Age\n----  ---\nA...  30\nBob   25\n", buf.String())
}

func TestWriteTableWideChars(t *testing.T) {
	t.Parallel()
	items := []noBorderRow{{headedRow{basicRow{Name: "日本", Age: "1"}}}}
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.Table, items...))
	assert.Equal(t, "Name  Age\n----  ---\n日本  1\n", buf.String())
}

func TestWritePlain(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.Plain, "a", "b"))
	assert.Equal(t, "a\nb\n", buf.String())
}

func TestMarshal(t *testing.T) {
	t.Parallel()
	data, err := report.Marshal(report.CSV, people()...)
	require.NoError(t, err)
	assert.Equal(t, "Name,Age\nAlice,30\nBob,25\n", string(data))

	_, err = report.Marshal(report.Format("xml"), "x")
	require.ErrorIs(t, err, report.ErrUnsupportedFormat)
}

func TestWriteErrors(t *testing.T) {
	t.Parallel()
	for _, f := range report.Formats() {
		t.Run(f.String(), func(t *testing.T) {
			t.Parallel()
			err := report.Write(errWriter{}, f, people()...)
			if f == report.YAML {
				// The YAML encoder reports write failures as text.
				require.ErrorContains(t, err, errWrite.Error())
				return
			}
			require.ErrorIs(t, err, errWrite)
		})
	}
}

func TestWriteTableFailsMidway(t *testing.T) {
	t.Parallel()
	for n := range 6 {
		err := report.Write(&failAfterN{n: n}, report.Table, people()...)
		require.ErrorIs(t, err, errWrite, "fail after %d writes", n)
	}
}

func TestWriteIter(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format report.Format
		want   string
	}{
		"json":  {format: report.JSON, want: `[{"name":"Alice","age":"30"}` + "\n" + `,{"name":"Bob","age":"25"}` + "\n]\n"},
		"jsonl": {format: report.JSONL, want: `{"name":"Alice","age":"30"}` + "\n" + `{"name":"Bob","age":"25"}` + "\n"},
		"csv":   {format: report.CSV, want: "Name,Age\nAlice,30\nBob,25\n"},
		"tsv":   {format: report.TSV, want: "Name\tAge\nAlice\t30\nBob\t25\n"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			require.NoError(t, report.WriteIter(&buf, tt.format, slices.Values(people())))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteIterYAML(t *testing.T) {
	t.Parallel()
	items := []basicRow{{Name: "Alice", Age: "30"}, {Name: "Bob", Age: "25"}}
	var buf bytes.Buffer
	require.NoError(t, report.WriteIter(&buf, report.YAML, slices.Values(items)))

	var got []basicRow
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, items, got)
}

func TestWriteIterMatchesWriteForTables(t *testing.T) {
	t.Parallel()
	var streamed, direct bytes.Buffer
	require.NoError(t, report.WriteIter(&streamed, report.Table, slices.Values(people())))
	require.NoError(t, report.Write(&direct, report.Table, people()...))
	assert.Equal(t, direct.String(), streamed.String())
}

func TestWriteIterEmpty(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, report.WriteIter(&buf, report.Table, slices.Values([]headedRow(nil))))
	assert.Empty(t, buf.String())

	require.NoError(t, report.WriteIter(&buf, report.JSON, slices.Values([]headedRow(nil))))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteIterStopsOnError(t *testing.T) {
	t.Parallel()
	var yielded int
	seq := func(yield func(headedRow) bool) {
		for _, p := range people() {
			yielded++
			if !yield(p) {
				return
			}
		}
	}
	err := report.WriteIter(errWriter{}, report.TSV, seq)
	require.ErrorIs(t, err, errWrite)
	assert.Equal(t, 1, yielded)
}

func TestWriteIterRejects(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := report.WriteIter(&buf, report.CSV, slices.Values([]string{"x"}))
	require.ErrorIs(t, err, report.ErrMissingInterface)

	err = report.WriteIter(&buf, report.Format("xml"), slices.Values([]string{"x"}))
	require.ErrorIs(t, err, report.ErrUnsupportedFormat)
}
