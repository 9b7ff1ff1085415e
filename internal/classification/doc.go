// Package classification ties the evidence producers, the fusion engine, and
// the review queue into the single entry point callers use: resolve a path,
// collect and normalize evidence, decide, and queue anything untrustworthy.
package classification
