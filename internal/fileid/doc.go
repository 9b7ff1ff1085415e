// Package fileid resolves file references and computes the stable
// identifiers used to deduplicate review queue entries.
//
// The identifier is a SHA-256 hash over the absolute path, size, and
// modification time, so re-scanning an unchanged file produces the same
// id while any content change yields a new one.
package fileid
