package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bjaus/snakeoil/fileutils"
	"github.com/bjaus/snakeoil/formatters"
)

func newReadlinesCmd(a *app) *cobra.Command {
	var (
		raw       bool
		missingOK bool
	)

	cmd := &cobra.Command{
		Use:   "readlines FILE",
		Short: "Print the lines of a file",
		Long: `Print the lines of FILE, stripped of surrounding whitespace unless
--raw is given. Large files are memory-mapped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := fileutils.Readlines(args[0],
				fileutils.StripWhitespace(!raw),
				fileutils.SwallowMissing(missingOK))
			if err != nil {
				return err
			}
			defer lines.Close()
			a.logger.Debug("reading lines", zap.String("path", args[0]), zap.Time("mtime", lines.Mtime()))

			f := a.formatter(cmd.OutOrStdout())
			for line := range lines.All() {
				if err := f.Write(line, formatters.Autoline(!raw)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "keep whitespace and line endings")
	cmd.Flags().BoolVar(&missingOK, "missing-ok", false, "treat a missing file as empty")

	return cmd
}
