// Package reviewqueue persists classification decisions that need human
// adjudication.
//
// The store is SQLite-backed and append-mostly: the fusion engine inserts
// entries keyed by the stable file identifier (so re-scans of an unchanged
// file deduplicate), and only the review workflow mutates status afterwards.
// Alongside the database, an append-only JSONL export writes one line per
// entry for external consumers; appends are guarded by a cross-process file
// lock so concurrent classifiers never interleave partial lines.
package reviewqueue
