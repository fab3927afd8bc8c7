// Package importer loads listening-history exports into the database.
//
// # Pipeline
//
// [Importer.ImportFile] is the core operation. For one file it:
//
//  1. Picks a format adapter by file extension ([ForPath])
//  2. Opens a single transaction
//  3. For each parsed [models.PlayRecord]: resolves the artist by name,
//     resolves the song by Spotify ID, and appends one history row
//  4. Commits once at end of stream
//
// Reference rows are resolved with insert-if-absent upserts, so re-importing
// a file creates no duplicate artists or songs but always appends history.
//
// Any parse or database error aborts the run: the transaction rolls back and
// nothing from the file is kept. There is no per-row skip-and-continue. A
// directory batch ([Importer.ImportDir]) isolates that failure mode per
// file: each file gets its own transaction and a failed file does not stop
// the batch.
//
// # Format adapters
//
// [CSVAdapter] parses headerless 5-field rows
// (timestamp, song, artist, spotify id, link) with the fixed timestamp
// layout [TimestampLayout]; a tab delimiter variant covers .tsv files.
// [JSONAdapter] parses an array of play objects with flexible key aliases,
// accepting several timestamp layouts.
//
// # Progress
//
// Long imports emit [ProgressUpdate] values over an optional channel
// (non-blocking sends) for TUI display, and log a throttled progress line at
// most once per second otherwise.
package importer
