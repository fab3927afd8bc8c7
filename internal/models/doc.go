// Package models defines domain entities for the playlog listening-history service.
//
// The package contains two categories of types:
//
// 1. Persisted entities, matching the relational schema one-to-one:
//   - [Artist] : one row per distinct artist name (case-sensitive, first-seen wins)
//   - [Song] : deduplicated on Spotify ID, carrying the first-seen name and link
//   - [HistoryEntry] : one append-only row per play event
//
// 2. Pipeline values that never touch the database directly:
//   - [PlayRecord] : a single parsed input row, the unit the importer consumes
//   - [ImportReport] : per-run outcome (row counts, created reference rows, timing)
//   - [BatchReport] : aggregated per-file outcomes for directory imports
//
// Artist and Song use database-generated integer surrogate keys; the importer
// only ever reads them back from upserts and never assigns them itself.
package models
