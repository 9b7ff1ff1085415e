// Package evidence defines the signal model shared by every classification
// component and orchestrates evidence collection for one file.
//
// A Signal is one producer's opinion about a file's category. A Bundle holds
// exactly one signal per source (obvious, modality, history) even when a
// producer has no opinion, so downstream fusion logic stays total. The
// Collector invokes the three producers — the pure obvious matcher inline,
// the modality analyzer and history lookup concurrently — and downgrades any
// producer failure or timeout to a null-opinion signal instead of failing
// the classification.
package evidence
