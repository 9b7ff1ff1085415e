package main

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"sifter/internal/analyzer"
	"sifter/internal/classification"
	"sifter/internal/config"
	"sifter/internal/evidence"
	"sifter/internal/history"
	"sifter/internal/logging"
	"sifter/internal/reviewqueue"
	"sifter/internal/services/llm"
	"sifter/internal/taxonomy"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) registry() (*taxonomy.Registry, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Paths.TaxonomyPath) != "" {
		return taxonomy.Load(cfg.Paths.TaxonomyPath)
	}
	return taxonomy.Default(), nil
}

// withQueue opens the review queue store for the duration of fn.
func (c *commandContext) withQueue(fn func(*reviewqueue.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := reviewqueue.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

// withHistory opens the verified-pattern store for the duration of fn.
func (c *commandContext) withHistory(fn func(*history.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := history.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

// withClassifier assembles the full pipeline (registry, producers, stores)
// and hands the classifier to fn, closing the stores afterwards.
func (c *commandContext) withClassifier(fn func(*classification.Classifier) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	registry, err := c.registry()
	if err != nil {
		return err
	}
	logger := c.ensureLogger()

	queueStore, err := reviewqueue.Open(cfg)
	if err != nil {
		return err
	}
	defer queueStore.Close()

	historyStore, err := history.Open(cfg)
	if err != nil {
		return err
	}
	defer historyStore.Close()

	var modality evidence.ModalityAnalyzer
	client := llm.NewClient(llm.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Model:          cfg.LLM.Model,
		Referer:        cfg.LLM.Referer,
		Title:          cfg.LLM.Title,
		TimeoutSeconds: cfg.LLM.TimeoutSeconds,
	})
	if client.Configured() {
		modality = analyzer.NewDispatcher(client, registry, cfg, logger)
	} else {
		logger.Warn("llm api key not configured; modality analysis disabled")
	}

	collector := evidence.NewCollector(
		evidence.NewObviousMatcher(registry),
		modality,
		historyStore,
		time.Duration(cfg.Analyzer.ModalityTimeoutSeconds)*time.Second,
		logger,
	)

	classifier, err := classification.New(classification.Options{
		Registry:  registry,
		Collector: collector,
		Queue:     queueStore,
		Exporter:  reviewqueue.NewExporter(cfg.Paths.ReviewLog),
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	return fn(classifier)
}
