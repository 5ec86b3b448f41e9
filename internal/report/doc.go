// Package report renders command results in the formats the CLI offers
// through --format.
//
// Supported formats are Table, JSON, JSONL, YAML, CSV, TSV and Plain. The
// central entry points are [Write] and [WriteIter], which accept a [Format]
// constant and items of any type. JSON, JSONL, YAML and Plain work on any
// value; the others require the items to implement [Rower].
//
// # Interface Design
//
// A minimal interface unlocks a format, and optional interfaces implemented
// by the first item enhance the rendering:
//
//   - [Rower] → Table, CSV, TSV (row data)
//   - [Headed] → adds column headers to all three
//   - [Indented] → indentation for JSON, JSONL and YAML
//
// # Table
//
// Requires [Rower]. Optional interfaces:
//
//   - [Titled]: title above the table
//   - [Bordered]: border style (default [BorderRounded])
//   - [Aligned]: per-column alignment
//   - [Footered]: footer row
//   - [Captioned]: line below the table
//   - [Truncated]: max column widths with "..." truncation
//
// Column widths are measured in terminal cells, so wide characters line up.
//
// # Plain
//
// Each item is written on its own line through a plain-text formatter,
// using its String method when it has one.
//
// # Streaming
//
// [WriteIter] writes JSONL, CSV, TSV and Plain items as they arrive and
// streams JSON as array elements. Table and YAML collect every item first.
//
// # Errors
//
//   - [ErrUnsupportedFormat]: unknown format string
//   - [ErrMissingInterface]: items don't implement the required interface
package report
