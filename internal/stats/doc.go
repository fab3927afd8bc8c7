// Package stats builds listening reports from imported history.
//
// [Build] runs aggregate queries over the listening-history schema for one
// user: play totals, distinct reference counts, total listening time, top
// artists and songs by play count, and plays per month. The report is a
// plain struct so the CLI can render it styled, as Markdown, or as JSON.
//
// Queries are read-only and run outside any transaction. Month bucketing is
// the only dialect-specific SQL in the codebase (strftime vs to_char).
package stats
