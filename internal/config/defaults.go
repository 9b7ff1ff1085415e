package config

const (
	defaultDataDir                = "~/.local/share/sifter"
	defaultLogDir                 = "~/.local/share/sifter/logs"
	defaultReviewLog              = "~/.local/share/sifter/review_queue.jsonl"
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
	defaultLLMBaseURL             = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel               = "google/gemini-3-flash-preview"
	defaultLLMReferer             = "https://github.com/sifter-dev/sifter"
	defaultLLMTitle               = "Sifter File Classifier"
	defaultLLMTimeoutSeconds      = 30
	defaultModalityTimeoutSeconds = 30
	defaultTextSnippetBytes       = 2048
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			LogDir:    defaultLogDir,
			ReviewLog: defaultReviewLog,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Analyzer: Analyzer{
			ModalityTimeoutSeconds: defaultModalityTimeoutSeconds,
			TextSnippetBytes:       defaultTextSnippetBytes,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
