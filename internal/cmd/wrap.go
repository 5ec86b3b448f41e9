package cmd

import (
	"bufio"

	"github.com/spf13/cobra"

	"github.com/bjaus/snakeoil/formatters"
)

func newWrapCmd(a *app) *cobra.Command {
	var (
		firstPrefix string
		laterPrefix string
	)

	cmd := &cobra.Command{
		Use:   "wrap",
		Short: "Word-wrap standard input",
		Long: `Read lines from standard input and write each one word-wrapped at the
output width. --first-prefix starts every input line; --prefix starts every
continuation line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := a.formatter(cmd.OutOrStdout())
			sc := bufio.NewScanner(cmd.InOrStdin())
			sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
			for sc.Scan() {
				err := f.Write(sc.Text(),
					formatters.Wrap(true),
					formatters.FirstPrefix(firstPrefix),
					formatters.LaterPrefix(laterPrefix))
				if err != nil {
					return err
				}
			}
			if err := sc.Err(); err != nil {
				return err
			}
			return f.Flush()
		},
	}

	cmd.Flags().StringVar(&firstPrefix, "first-prefix", "", "prefix for the first line of each input line")
	cmd.Flags().StringVarP(&laterPrefix, "prefix", "p", "", "prefix for continuation lines")

	return cmd
}
