package classification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"sifter/internal/evidence"
	"sifter/internal/fileid"
	"sifter/internal/fusion"
	"sifter/internal/logging"
	"sifter/internal/media"
	"sifter/internal/reviewqueue"
	"sifter/internal/services"
	"sifter/internal/taxonomy"
)

const maxConcurrentClassifications = 4

// Outcome is the complete result of classifying one path: the fusion result
// plus where the file ended up.
type Outcome struct {
	Path       string           `json:"path"`
	FileID     string           `json:"file_id,omitempty"`
	CoarseType media.CoarseType `json:"coarse_type"`
	Result     *fusion.Result   `json:"result"`
	Queued     bool             `json:"queued"`
	QueueID    string           `json:"queue_id,omitempty"`
}

// QueueWriter persists review queue entries. *reviewqueue.Store satisfies it;
// tests substitute an in-memory recorder.
type QueueWriter interface {
	Append(ctx context.Context, entry reviewqueue.Entry) (*reviewqueue.Entry, error)
}

// QueueExporter mirrors queued entries to the append-only review log.
type QueueExporter interface {
	Append(entry reviewqueue.Entry) error
}

// Options wires a Classifier. Registry and Collector are required; Queue and
// Exporter may be nil, in which case review routing is decided but nothing is
// persisted.
type Options struct {
	Registry        *taxonomy.Registry
	Collector       *evidence.Collector
	Queue           QueueWriter
	Exporter        QueueExporter
	Logger *slog.Logger
}

// Classifier is the fusion engine entry point. It holds no per-file state
// and is safe for concurrent use.
type Classifier struct {
	registry  *taxonomy.Registry
	collector *evidence.Collector
	detector  *fusion.Detector
	queue     QueueWriter
	exporter  QueueExporter
	logger    *slog.Logger
}

// New builds a classifier from the supplied collaborators.
func New(opts Options) (*Classifier, error) {
	if opts.Registry == nil {
		return nil, services.Wrap(services.ErrConfiguration, "classification", "new", "taxonomy registry required", nil)
	}
	if opts.Collector == nil {
		return nil, services.Wrap(services.ErrConfiguration, "classification", "new", "evidence collector required", nil)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Classifier{
		registry:  opts.Registry,
		collector: opts.Collector,
		detector:  fusion.NewDetector(opts.Registry.KindOf),
		queue:     opts.Queue,
		exporter:  opts.Exporter,
		logger:    logging.WithComponent(logger, "classification"),
	}, nil
}

// Classify runs the full pipeline for one path. Invalid input never raises:
// an unreadable path produces an unknown/0.0 outcome with the failure in the
// decision trace. Queue persistence failures are logged, never returned.
func (c *Classifier) Classify(ctx context.Context, path string) *Outcome {
	requestID := uuid.NewString()
	ctx = services.WithRequestID(ctx, requestID)
	logger := c.logger.With(slog.String("request_id", requestID))

	ref, err := fileid.Resolve(path)
	if err != nil {
		logger.Warn("input rejected", slog.String("path", path), logging.Error(err))
		return &Outcome{
			Path:       path,
			CoarseType: media.TypeGeneric,
			Result: &fusion.Result{
				Category:      evidence.CategoryUnknown,
				Confidence:    0,
				DecisionTrace: []string{fmt.Sprintf("invalid input: %v", err)},
			},
		}
	}

	coarse := media.TypeOf(ref.Path)
	bundle := c.collector.Collect(ctx, ref, coarse)
	bundle = fusion.NormalizeBundle(bundle, coarse)
	conflicts := c.detector.Detect(bundle, coarse)
	candidates := fusion.Rank(bundle)
	result := fusion.Decide(candidates, conflicts, coarse)

	outcome := &Outcome{
		Path:       ref.Path,
		FileID:     fileid.ID(ref),
		CoarseType: coarse,
		Result:     result,
	}

	if needsQueue(result) {
		if result.Confidence < fusion.QueueThreshold && !evidence.IsSentinel(result.Category) {
			result.DecisionTrace = append(result.DecisionTrace,
				fmt.Sprintf("confidence %.2f below queue threshold %.2f; surfacing as needs_review (tentative category kept in candidates)",
					result.Confidence, fusion.QueueThreshold))
			result.Category = evidence.CategoryNeedsReview
		}
		outcome.Queued = true
		outcome.QueueID = outcome.FileID
		c.persist(ctx, logger, outcome, ref)
	}

	logger.Info("classification complete",
		slog.String("file", ref.Name),
		slog.String("category", result.Category),
		slog.Float64("confidence", result.Confidence),
		slog.Int("conflicts", len(result.Conflicts)),
		slog.Bool("queued", outcome.Queued))
	return outcome
}

// ClassifyAll classifies each path as an independent concurrent request,
// returning outcomes in input order. One bad path never affects the others.
func (c *Classifier) ClassifyAll(ctx context.Context, paths []string) []*Outcome {
	outcomes := make([]*Outcome, len(paths))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentClassifications)
	for i, path := range paths {
		group.Go(func() error {
			outcomes[i] = c.Classify(groupCtx, path)
			return nil
		})
	}
	_ = group.Wait()
	return outcomes
}

// needsQueue applies the routing triggers: low confidence, a sentinel
// category, any recorded conflict, or a conflicted result inside the
// uncertain zone between the queue and auto-route thresholds.
func needsQueue(result *fusion.Result) bool {
	switch {
	case result.Confidence < fusion.QueueThreshold:
		return true
	case evidence.IsSentinel(result.Category):
		return true
	case len(result.Conflicts) > 0:
		return true
	case result.Confidence < fusion.AutoRouteThreshold && len(result.Conflicts) > 0:
		return true
	}
	return false
}

func (c *Classifier) persist(ctx context.Context, logger *slog.Logger, outcome *Outcome, ref fileid.FileRef) {
	entry := buildEntry(outcome, ref)
	if c.queue != nil {
		if _, err := c.queue.Append(ctx, entry); err != nil {
			logger.Error("review queue append failed", slog.String("file", ref.Name), logging.Error(err))
		}
	}
	if c.exporter != nil {
		if err := c.exporter.Append(entry); err != nil {
			logger.Error("review log export failed", slog.String("file", ref.Name), logging.Error(err))
		}
	}
}

func buildEntry(outcome *Outcome, ref fileid.FileRef) reviewqueue.Entry {
	candidates := make([]reviewqueue.CandidateSummary, 0, len(outcome.Result.Candidates))
	for _, candidate := range outcome.Result.Candidates {
		candidates = append(candidates, reviewqueue.CandidateSummary{
			Source:     string(candidate.Source),
			Category:   candidate.Category,
			Confidence: candidate.Confidence,
			Weight:     candidate.Weight,
			Reasoning:  candidate.Reasoning,
		})
	}
	return reviewqueue.Entry{
		ID:            outcome.FileID,
		Path:          ref.Path,
		CoarseType:    outcome.CoarseType.String(),
		Category:      outcome.Result.Category,
		Confidence:    outcome.Result.Confidence,
		DecisionTrace: outcome.Result.DecisionTrace,
		Conflicts:     outcome.Result.Conflicts,
		Candidates:    candidates,
	}
}
