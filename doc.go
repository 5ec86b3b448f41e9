// Package snakeoil is a collection of small utilities for command-line
// tools.
//
// The functionality lives in subpackages:
//
//   - [github.com/bjaus/snakeoil/formatters]: word-wrapping text output
//     with prefixes, terminal attributes and colors
//   - [github.com/bjaus/snakeoil/osutils]: lexical path normalization and
//     joining, directory listings
//   - [github.com/bjaus/snakeoil/fileutils]: memory-mapped line reading,
//     whole-file reads and atomic file replacement
//   - [github.com/bjaus/snakeoil/chksum]: checksum handlers and single-pass
//     multi-hash file digests
//   - [github.com/bjaus/snakeoil/caching]: a cache of weakly held instances
//     keyed by constructor arguments
//   - [github.com/bjaus/snakeoil/klass]: struct attribute access and
//     field-based equality
//   - [github.com/bjaus/snakeoil/mappings]: a map that fills missing keys
//     from a factory
//
// The snakeoil command in cmd/snakeoil exposes most of these from the shell.
package snakeoil
