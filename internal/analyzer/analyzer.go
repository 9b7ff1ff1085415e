package analyzer

import (
	"context"
	"fmt"
	"log/slog"

	"sifter/internal/config"
	"sifter/internal/evidence"
	"sifter/internal/fileid"
	"sifter/internal/logging"
	"sifter/internal/media"
	"sifter/internal/services/llm"
	"sifter/internal/taxonomy"
)

// Analyzer inspects one file of a known coarse type and returns a modality
// signal. Errors are producer failures; the evidence collector downgrades
// them, so implementations should not return null signals on failure.
type Analyzer interface {
	Analyze(ctx context.Context, ref fileid.FileRef, coarse media.CoarseType) (evidence.Signal, error)
}

// Dispatcher routes each file to the analyzer registered for its coarse
// type. It satisfies the collector's modality producer contract.
type Dispatcher struct {
	analyzers map[media.CoarseType]Analyzer
	logger    *slog.Logger
}

// NewDispatcher builds a dispatcher with the default analyzer per coarse
// type, all backed by the supplied client. The registry bounds the category
// vocabulary offered to the model.
func NewDispatcher(client *llm.Client, registry *taxonomy.Registry, cfg *config.Config, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	if registry == nil {
		registry = taxonomy.Default()
	}
	snippetBytes := 0
	if cfg != nil {
		snippetBytes = cfg.Analyzer.TextSnippetBytes
	}

	d := &Dispatcher{
		analyzers: make(map[media.CoarseType]Analyzer),
		logger:    logging.WithComponent(logger, "analyzer"),
	}
	d.Register(media.TypeText, newTextAnalyzer(client, registry, snippetBytes))
	d.Register(media.TypeImage, newMetadataAnalyzer(client, registry, media.TypeImage))
	d.Register(media.TypeAudio, newMetadataAnalyzer(client, registry, media.TypeAudio))
	d.Register(media.TypeVideo, newMetadataAnalyzer(client, registry, media.TypeVideo))
	d.Register(media.TypeGeneric, newMetadataAnalyzer(client, registry, media.TypeGeneric))
	return d
}

// Register installs an analyzer for one coarse type, replacing any previous
// registration.
func (d *Dispatcher) Register(coarse media.CoarseType, a Analyzer) {
	if a == nil {
		return
	}
	d.analyzers[coarse] = a
}

// Analyze dispatches to the registered analyzer. An unknown coarse type is a
// producer failure rather than an opinion about the file.
func (d *Dispatcher) Analyze(ctx context.Context, ref fileid.FileRef, coarse media.CoarseType) (evidence.Signal, error) {
	a, ok := d.analyzers[coarse]
	if !ok {
		return evidence.Signal{}, fmt.Errorf("analyzer dispatch: no analyzer registered for type %q", coarse)
	}
	d.logger.Debug("dispatching modality analysis", "path", ref.Path, "coarse_type", string(coarse))
	return a.Analyze(ctx, ref, coarse)
}
