// Package output formats fix reports for display or machine consumption.
//
// Four formats are supported:
//   - text: human-readable terminal output (default)
//   - json: full structured JSON report
//   - markdown: per-file tables suitable for a PR comment or job summary
//   - sarif: SARIF v2.1.0, one result per finding, for code-scanning upload
//
// Use [GetWriter] to obtain a [Writer] for a given format string, or
// [WriteReport] to pick the destination as well. [WriteDiff] renders the
// line-level change a run made to one file.
package output
