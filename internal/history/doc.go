// Package history stores verified classification patterns and serves them
// back as history signals.
//
// Patterns are written by the review workflow when a human resolves a queued
// entry; classification only reads them. A pattern keys on extension and an
// optional filename keyword, so the lookup stays a cheap indexed query. The
// producer contract matches the other evidence sources: no history yields a
// null-opinion signal, never an error.
package history
