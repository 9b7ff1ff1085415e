package testsupport

import (
	"path/filepath"
	"testing"

	"sifter/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ReviewLog = filepath.Join(base, "review", "review_queue.jsonl")
	cfg.LLM.APIKey = "test"

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithLLMBaseURL points the modality analyzer backend at a test server.
func WithLLMBaseURL(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.LLM.BaseURL = url
	}
}

// WithTaxonomyPath sets a taxonomy overlay file on the test config.
func WithTaxonomyPath(path string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.TaxonomyPath = path
	}
}
