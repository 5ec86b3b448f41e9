package cmd

import (
	"fmt"
	"io"
	"math/big"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bjaus/snakeoil/chksum"
	"github.com/bjaus/snakeoil/fileutils"
	"github.com/bjaus/snakeoil/internal/report"
)

// chksumRow is one file's checksums, in the order they were requested.
type chksumRow struct {
	Path    string            `json:"path" yaml:"path"`
	Chksums map[string]string `json:"chksums" yaml:"chksums"`

	names   []string
	summary *chksumSummary
}

// chksumSummary accumulates over the rows of one report. Table output
// collects every row before laying it out, so the totals are complete by
// the time the footer is read.
type chksumSummary struct {
	files int
	bytes int64
	style *tableStyle
}

func (s *chksumSummary) add(sums map[string]*big.Int) {
	s.files++
	if size, ok := sums["size"]; ok && size.Sign() >= 0 {
		s.bytes += size.Int64()
	}
}

func (r chksumRow) Header() []string { return append([]string{"Path"}, r.names...) }

// Alignments right-aligns the checksum columns.
func (r chksumRow) Alignments() []report.Alignment {
	aligns := make([]report.Alignment, len(r.names)+1)
	for i := 1; i < len(aligns); i++ {
		aligns[i] = report.AlignRight
	}
	return aligns
}

// Footer totals the size column. There is no footer without one.
func (r chksumRow) Footer() []string {
	if !slices.Contains(r.names, "size") {
		return nil
	}
	footer := []string{"Total"}
	for _, name := range r.names {
		cell := ""
		if name == "size" {
			cell = strconv.FormatInt(r.summary.bytes, 10)
		}
		footer = append(footer, cell)
	}
	return footer
}

func (r chksumRow) Caption() string            { return plural(r.summary.files, "file", "files") }
func (r chksumRow) Border() report.BorderStyle { return r.summary.style.border }
func (r chksumRow) MaxWidths() []int           { return r.summary.style.maxWidths(len(r.names) + 1) }
func (r chksumRow) Indent() string             { return r.summary.style.indentString() }

func (r chksumRow) Row() []string {
	row := []string{r.Path}
	for _, name := range r.names {
		row = append(row, r.Chksums[name])
	}
	return row
}

func (r chksumRow) String() string {
	var sb strings.Builder
	sb.WriteString(r.Path)
	for _, name := range r.names {
		fmt.Fprintf(&sb, " %s:%s", name, r.Chksums[name])
	}
	return sb.String()
}

func newChksumCmd(a *app) *cobra.Command {
	var (
		names  []string
		format string
		output string
		serial bool
		style  tableStyle
	)

	cmd := &cobra.Command{
		Use:   "chksum FILE...",
		Short: "Compute file checksums",
		Long: `Compute checksums of each FILE. The file is read once and every
requested checksum is fed from the same pass, one goroutine per checksum
unless --serial is given.

Available checksums: ` + strings.Join(chksum.Names(), ", "),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.reportFormat(cmd, format)
			if err != nil {
				return err
			}
			if err := style.resolve(); err != nil {
				return err
			}
			if !cmd.Flags().Changed("chksum") {
				names = a.cfg.Chksums
			}
			handlers := make([]chksum.Handler, len(names))
			for i, name := range names {
				if handlers[i], err = chksum.Get(name); err != nil {
					return err
				}
			}
			parallel := a.cfg.Parallel && !serial

			var out io.Writer = cmd.OutOrStdout()
			var af *fileutils.AtomicFile
			if output != "" {
				if af, err = fileutils.CreateAtomic(output); err != nil {
					return err
				}
				out = af
			}

			summary := &chksumSummary{style: &style}
			var sumErr error
			rows := func(yield func(chksumRow) bool) {
				for _, path := range args {
					start := time.Now()
					sums, err := chksum.File(cmd.Context(), path, names, chksum.Parallel(parallel))
					if err != nil {
						sumErr = err
						return
					}
					a.logger.Debug("checksummed file",
						zap.String("path", path),
						zap.Strings("chksums", names),
						zap.Duration("elapsed", time.Since(start)))
					summary.add(sums)
					row := chksumRow{Path: path, Chksums: make(map[string]string, len(names)), names: names, summary: summary}
					for _, h := range handlers {
						row.Chksums[h.Name] = h.Long2Str(sums[h.Name])
					}
					if !yield(row) {
						return
					}
				}
			}
			err = report.WriteIter(out, f, rows)
			if sumErr != nil {
				err = sumErr
			}

			if af == nil {
				return err
			}
			if err != nil {
				a.logger.Debug("discarding partial output", zap.String("path", output), zap.Error(err))
				_ = af.Discard()
				return err
			}
			return af.Close()
		},
	}

	cmd.Flags().StringSliceVarP(&names, "chksum", "c", nil, "checksum to compute; repeatable (default from config)")
	cmd.Flags().StringVarP(&format, "format", "o", "", "output format (table, json, jsonl, yaml, csv, tsv, plain)")
	cmd.Flags().StringVar(&output, "output", "", "write the report to this file atomically")
	cmd.Flags().BoolVar(&serial, "serial", false, "feed checksums one after another instead of in parallel")
	style.addFlags(cmd)

	return cmd
}
