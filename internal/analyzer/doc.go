// Package analyzer provides the modality producers: per-coarse-type file
// analyzers backed by the chat completion client, plus the dispatcher that
// routes a file to the right one. Adding a new modality means registering a
// new analyzer here; nothing downstream changes.
package analyzer
