package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bjaus/snakeoil/formatters"
	"github.com/bjaus/snakeoil/internal/config"
)

// app carries the global flags and the state built from them before a
// subcommand runs.
type app struct {
	configPath string
	verbose    bool
	color      string
	width      int
	encoding   string

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCmd creates and returns the root cobra command for the snakeoil CLI.
func NewRootCmd() *cobra.Command {
	a := &app{cfg: config.Default(), logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "snakeoil",
		Short: "snakeoil - path, file, checksum and text formatting utilities",
		Long: `snakeoil bundles small utilities for working with paths, files and
formatted terminal output.

Use subcommands to perform different operations:
  - normpath, join: normalize and join paths
  - readlines, listdir: read files and list directories
  - chksum: compute file checksums
  - wrap: word-wrap standard input to the terminal width`,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.logger.Sync() },
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/snakeoil/config.yaml)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&a.color, "color", config.ColorAuto, "colorize output: auto, always or never")
	pf.IntVar(&a.width, "width", 0, "wrap width (default: terminal width or 79)")
	pf.StringVar(&a.encoding, "encoding", "", "output character set (default: from the locale)")

	groupPaths := "paths"
	groupFiles := "files"
	rootCmd.AddGroup(&cobra.Group{ID: groupPaths, Title: "Path Commands"})
	rootCmd.AddGroup(&cobra.Group{ID: groupFiles, Title: "File Commands"})

	for _, c := range []*cobra.Command{newNormpathCmd(a), newJoinCmd(a)} {
		c.GroupID = groupPaths
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{newReadlinesCmd(a), newListdirCmd(a), newChksumCmd(a), newWrapCmd(a)} {
		c.GroupID = groupFiles
		rootCmd.AddCommand(c)
	}

	// A reader that went away (e.g. a closed pager) is not a failure.
	for _, c := range rootCmd.Commands() {
		run := c.RunE
		c.RunE = func(cmd *cobra.Command, args []string) error {
			err := run(cmd, args)
			if errors.Is(err, formatters.ErrStreamClosed) {
				a.logger.Debug("output closed", zap.String("command", cmd.Name()), zap.Error(err))
				return nil
			}
			return err
		}
	}

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	path := a.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("color") {
		cfg.Color = a.color
	}
	if flags.Changed("width") {
		cfg.Width = a.width
	}
	if flags.Changed("encoding") {
		cfg.Encoding = a.encoding
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	zcfg := zap.NewProductionConfig()
	if a.verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	a.logger.Debug("configuration loaded",
		zap.String("path", path),
		zap.String("color", cfg.Color),
		zap.Int("width", cfg.Width))
	return nil
}

// formatter returns the formatter for w according to the color setting.
func (a *app) formatter(w io.Writer) formatters.Formatter {
	var opts []formatters.Option
	if a.cfg.Width > 0 {
		opts = append(opts, formatters.WithWidth(a.cfg.Width))
	}
	if a.cfg.Encoding != "" {
		opts = append(opts, formatters.WithEncoding(a.cfg.Encoding))
	}
	switch a.cfg.Color {
	case config.ColorAlways:
		return formatters.Get(w, true, opts...)
	case config.ColorNever:
		return formatters.NewPlainText(w, opts...)
	default:
		return formatters.Get(w, false, opts...)
	}
}
