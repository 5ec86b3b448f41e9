package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bjaus/snakeoil/osutils"
)

func newNormpathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "normpath PATH...",
		Short: "Normalize paths",
		Long: `Normalize each PATH by collapsing repeated separators and resolving
"." and ".." components lexically. Symlinks are not consulted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := a.formatter(cmd.OutOrStdout())
			for _, p := range args {
				if err := f.Write(osutils.Normpath(p)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newJoinCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "join SEGMENT...",
		Short: "Join path segments",
		Long: `Join SEGMENTs with "/". An absolute segment discards everything before
it and repeated separators are collapsed; ".." is kept as written.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			joined, err := osutils.Join(args...)
			if err != nil {
				return err
			}
			return a.formatter(cmd.OutOrStdout()).Write(joined)
		},
	}
}
