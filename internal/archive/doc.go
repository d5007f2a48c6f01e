// Package archive persists delivered alerts to Postgres.
//
// The archive is an optional third sink for querying alert history; the
// pipeline runs fine without it. Rows are keyed by alert UID with
// ON CONFLICT DO NOTHING, so a replayed delivery never duplicates.
package archive
