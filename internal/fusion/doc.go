// Package fusion reconciles the evidence bundle into one classification
// decision.
//
// The pipeline is: normalize confidences so every signal carries a value in
// [0,1], detect conflicts that must block automatic routing, rank the
// opinionated signals into candidates, then apply the dominance rules. Every
// stage is a pure function over its inputs, so each is unit-testable in
// isolation and decisions are reproducible. The decision trace records which
// rule fired and the values compared; it is never empty and survives into
// the review queue for audit.
package fusion
