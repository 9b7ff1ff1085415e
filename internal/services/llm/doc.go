// Package llm wraps the OpenRouter-style chat completion API behind the
// small surface the modality analyzers need: a JSON-only classification
// request, a health check, and retry/backoff handling for flaky providers.
package llm
