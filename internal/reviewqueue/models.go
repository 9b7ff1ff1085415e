package reviewqueue

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a review queue entry. The fusion
// engine only ever writes StatusPending; the review workflow owns the rest.
type Status string

const (
	StatusPending   Status = "pending"
	StatusResolved  Status = "resolved"
	StatusDismissed Status = "dismissed"
)

var statusSet = map[Status]struct{}{
	StatusPending:   {},
	StatusResolved:  {},
	StatusDismissed: {},
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := statusSet[Status(strings.ToLower(string(s)))]
	return ok
}

// CandidateSummary is the persisted view of one ranked candidate.
type CandidateSummary struct {
	Source     string   `json:"source"`
	Category   string   `json:"category"`
	Confidence float64  `json:"confidence"`
	Weight     float64  `json:"weight"`
	Reasoning  []string `json:"reasoning,omitempty"`
}

// Entry is one review queue record. ID is derived from path, size, and
// modification time, so re-scans of an unchanged file deduplicate.
type Entry struct {
	ID               string             `json:"id"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
	Path             string             `json:"path"`
	CoarseType       string             `json:"coarse_type"`
	Category         string             `json:"category"`
	Confidence       float64            `json:"confidence"`
	DecisionTrace    []string           `json:"decision_trace"`
	Conflicts        []string           `json:"conflicts,omitempty"`
	Candidates       []CandidateSummary `json:"candidates,omitempty"`
	Status           Status             `json:"status"`
	ResolvedCategory string             `json:"resolved_category,omitempty"`
}
