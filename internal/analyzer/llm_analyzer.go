package analyzer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"sifter/internal/evidence"
	"sifter/internal/fileid"
	"sifter/internal/media"
	"sifter/internal/services"
	"sifter/internal/services/llm"
	"sifter/internal/taxonomy"
)

const defaultSnippetBytes = 2048

// metadataAnalyzer classifies from file metadata alone: name, extension,
// size, timestamps. It serves the image, audio, video and generic
// modalities, where content inspection is out of scope.
type metadataAnalyzer struct {
	client   *llm.Client
	registry *taxonomy.Registry
	coarse   media.CoarseType
}

func newMetadataAnalyzer(client *llm.Client, registry *taxonomy.Registry, coarse media.CoarseType) *metadataAnalyzer {
	return &metadataAnalyzer{client: client, registry: registry, coarse: coarse}
}

func (a *metadataAnalyzer) Analyze(ctx context.Context, ref fileid.FileRef, coarse media.CoarseType) (evidence.Signal, error) {
	description := describeFile(ref, coarse)
	return classify(ctx, a.client, a.registry, coarse, description)
}

// textAnalyzer additionally reads a bounded snippet from the start of the
// file so the model sees real content, not just the name.
type textAnalyzer struct {
	client       *llm.Client
	registry     *taxonomy.Registry
	snippetBytes int
}

func newTextAnalyzer(client *llm.Client, registry *taxonomy.Registry, snippetBytes int) *textAnalyzer {
	if snippetBytes <= 0 {
		snippetBytes = defaultSnippetBytes
	}
	return &textAnalyzer{client: client, registry: registry, snippetBytes: snippetBytes}
}

func (a *textAnalyzer) Analyze(ctx context.Context, ref fileid.FileRef, coarse media.CoarseType) (evidence.Signal, error) {
	description := describeFile(ref, coarse)
	if snippet := readSnippet(ref.Path, a.snippetBytes); snippet != "" {
		description += "\nContent snippet:\n" + snippet
	}
	return classify(ctx, a.client, a.registry, coarse, description)
}

func classify(ctx context.Context, client *llm.Client, registry *taxonomy.Registry, coarse media.CoarseType, description string) (evidence.Signal, error) {
	if !client.Configured() {
		return evidence.Signal{}, services.Wrap(services.ErrConfiguration, "analyzer", "classify", "llm api key not configured", nil)
	}
	result, err := client.ClassifyFile(ctx, systemPrompt(registry, coarse), description)
	if err != nil {
		return evidence.Signal{}, services.Wrap(services.ErrExternalService, "analyzer", "classify", "chat completion failed", err)
	}

	category := strings.TrimSpace(result.Category)
	if category == "" {
		category = evidence.CategoryUnknown
	}
	reasoning := result.Reasoning
	if len(reasoning) == 0 {
		reasoning = []string{"model returned no reasoning"}
	}
	return evidence.Signal{
		Source:     evidence.SourceModality,
		Category:   category,
		Confidence: result.Confidence,
		Reasoning:  reasoning,
	}, nil
}

func systemPrompt(registry *taxonomy.Registry, coarse media.CoarseType) string {
	var b strings.Builder
	b.WriteString("You classify a single ")
	b.WriteString(string(coarse))
	b.WriteString(" file into exactly one category. Valid category ids:\n")
	for _, category := range registry.All() {
		fmt.Fprintf(&b, "- %s", category.ID)
		if len(category.Keywords) > 0 {
			fmt.Fprintf(&b, " (hints: %s)", strings.Join(category.Keywords, ", "))
		}
		b.WriteString("\n")
	}
	b.WriteString("- unknown (only when no category fits)\n")
	b.WriteString(`Respond with JSON only: {"category": "<id>", "confidence": <0.0-1.0>, "reasoning": ["<short reason>", ...]}. `)
	b.WriteString("Confidence reflects how certain you are; use unknown with low confidence when uncertain.")
	return b.String()
}

func describeFile(ref fileid.FileRef, coarse media.CoarseType) string {
	ext := strings.ToLower(filepath.Ext(ref.Name))
	if ext == "" {
		ext = "(none)"
	}
	return fmt.Sprintf("File name: %s\nExtension: %s\nCoarse type: %s\nSize: %d bytes\nModified: %s",
		ref.Name, ext, coarse, ref.Size, ref.ModTime.UTC().Format("2006-01-02 15:04:05 UTC"))
}

// readSnippet returns up to limit bytes from the start of the file, trimmed
// to a valid UTF-8 boundary. Unreadable or binary-looking content yields "";
// the analyzer then falls back to metadata only.
func readSnippet(path string, limit int) string {
	file, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer file.Close()

	buf := make([]byte, limit)
	n, err := io.ReadFull(file, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return ""
	}
	buf = buf[:n]
	for len(buf) > 0 && !utf8.Valid(buf) {
		buf = buf[:len(buf)-1]
	}
	snippet := string(buf)
	if strings.ContainsRune(snippet, '\x00') {
		return ""
	}
	return strings.TrimSpace(snippet)
}
