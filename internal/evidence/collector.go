package evidence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"sifter/internal/fileid"
	"sifter/internal/logging"
	"sifter/internal/media"
)

// ModalityAnalyzer describes the analyzer chosen by coarse file type. It is
// the only producer permitted to perform network or heavy local work.
type ModalityAnalyzer interface {
	Analyze(ctx context.Context, ref fileid.FileRef, coarse media.CoarseType) (Signal, error)
}

// HistoryLookup resolves verified prior patterns for a file. Implementations
// return a null-opinion signal (never an error) when no history exists.
type HistoryLookup interface {
	Lookup(ctx context.Context, ref fileid.FileRef) (Signal, error)
}

// Collector assembles the evidence bundle for one file. It is re-entrant;
// concurrent classifications share one collector.
type Collector struct {
	obvious         *ObviousMatcher
	modality        ModalityAnalyzer
	history         HistoryLookup
	modalityTimeout time.Duration
	logger          *slog.Logger
}

// NewCollector wires the three producers. modality and history may be nil,
// in which case their slots degrade to null-opinion signals.
func NewCollector(obvious *ObviousMatcher, modality ModalityAnalyzer, history HistoryLookup, modalityTimeout time.Duration, logger *slog.Logger) *Collector {
	if modalityTimeout <= 0 {
		modalityTimeout = 30 * time.Second
	}
	return &Collector{
		obvious:         obvious,
		modality:        modality,
		history:         history,
		modalityTimeout: modalityTimeout,
		logger:          logging.WithComponent(logger, "evidence"),
	}
}

// Collect runs the producers and returns a complete bundle. The obvious
// matcher runs inline; modality and history fan out concurrently and the
// call waits for both. A producer error or timeout fills its slot with a
// null-opinion signal carrying the failure reason.
func (c *Collector) Collect(ctx context.Context, ref fileid.FileRef, coarse media.CoarseType) Bundle {
	obvious := NullSignal(SourceObvious, "obvious matcher not configured")
	if c.obvious != nil {
		obvious = c.obvious.Match(ref)
	}

	var modality, history Signal
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		modality = c.collectModality(groupCtx, ref, coarse)
		return nil
	})
	group.Go(func() error {
		history = c.collectHistory(groupCtx, ref)
		return nil
	})
	// Producers handle their own failures, so Wait only synchronizes:
	// partial bundles must never flow downstream.
	_ = group.Wait()

	return NewBundle(obvious, modality, history)
}

func (c *Collector) collectModality(ctx context.Context, ref fileid.FileRef, coarse media.CoarseType) Signal {
	if c.modality == nil {
		return NullSignal(SourceModality, "modality analyzer not configured")
	}

	analyzeCtx, cancel := context.WithTimeout(ctx, c.modalityTimeout)
	defer cancel()

	sig, err := c.modality.Analyze(analyzeCtx, ref, coarse)
	if err != nil {
		reason := fmt.Sprintf("modality analyzer failed: %v", err)
		if errors.Is(err, context.DeadlineExceeded) {
			reason = fmt.Sprintf("modality analyzer timed out after %s", c.modalityTimeout)
		}
		c.logger.Warn("modality analyzer degraded to null opinion",
			slog.String("file", ref.Name),
			slog.String("coarse_type", coarse.String()),
			logging.Error(err))
		return NullSignal(SourceModality, reason)
	}
	sig.Source = SourceModality
	return sig
}

func (c *Collector) collectHistory(ctx context.Context, ref fileid.FileRef) Signal {
	if c.history == nil {
		return NullSignal(SourceHistory, "history matcher not configured")
	}
	sig, err := c.history.Lookup(ctx, ref)
	if err != nil {
		c.logger.Warn("history lookup degraded to null opinion",
			slog.String("file", ref.Name),
			logging.Error(err))
		return NullSignal(SourceHistory, fmt.Sprintf("history lookup failed: %v", err))
	}
	sig.Source = SourceHistory
	return sig
}
