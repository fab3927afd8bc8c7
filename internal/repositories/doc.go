// Package repositories implements persistence for the listening-history schema.
//
// Each repository wraps one table and speaks plain database/sql so the same
// code runs against sqlite3 and postgres; dialect differences are limited to
// placeholder style, handled by [shared.Rebind].
//
// Key implementations:
//   - [ArtistRepository] : artist reference rows, resolved by exact name
//   - [SongRepository] : song reference rows, deduplicated on Spotify ID
//   - [HistoryRepository] : append-only play events
//
// Resolve operations are single-round-trip upserts (insert-if-absent
// returning the id) rather than a read followed by a conditional write, so
// they stay race-free if imports ever run concurrently. First-seen column
// values always win: the conflict clause never overwrites existing data.
//
// Repositories accept a [DBTX] rather than *sql.DB so the importer can run
// every statement of one file inside a single transaction.
package repositories
