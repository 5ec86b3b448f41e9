// Package formatters writes word-wrapped, optionally colored text to a
// stream.
//
// A [Formatter] tracks the output column across calls to Write so it can
// wrap at a fixed width, and emits configurable prefixes at the start of
// each line:
//
//	f := formatters.NewPlainText(os.Stdout, formatters.WithWidth(40))
//	f.Write("     rdepends: ", deps, formatters.Wrap(true),
//		formatters.LaterPrefix("               "))
//
// # Tokens
//
// Write accepts any values. Strings are written as-is, nil is skipped, and
// other values are formatted with [fmt.Sprint]. A [Deferred] token is called
// with the formatter at write time; this is how style tokens such as
// [Formatter.Bold] and [Formatter.Fg] pick up the terminal's escape codes.
// [WriteOption] values mixed into the arguments change the behavior of that
// single call.
//
// # Wrapping
//
// With wrapping on, a token that would run past the width is split at its
// last space that still fits. A token with no usable space moves to the
// next line when the current line already holds content, and is cut at the
// width otherwise.
//
// # Formatters
//
//   - [PlainText] writes text only; style tokens expand to nothing.
//   - [Terminfo] adds bold, underline, colors and the status-line title,
//     using the terminal's terminfo entry.
//
// [Get] picks between them based on whether the stream is a terminal.
package formatters
