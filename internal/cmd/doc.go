// Package cmd provides the command-line interface for snakeoil.
//
// Each subcommand lives in its own file with a constructor returning a
// *cobra.Command. The root command loads the YAML configuration, builds the
// zap logger and hands every subcommand a formatter for its output:
//   - normpath, join: path normalization and joining
//   - readlines, listdir: file and directory inspection
//   - chksum: checksum reports, optionally written atomically
//   - wrap: word-wraps standard input
package cmd
