package taxonomy

const defaultMatchConfidence = 0.85

// defaultCategories returns a fresh copy of the built-in taxonomy so callers
// may append overlays without aliasing.
func defaultCategories() []Category {
	return []Category{
		{
			ID:         "screenshots",
			Extensions: []string{".png"},
			Keywords:   []string{"screenshot", "screen shot", "screen_shot", "capture"},
			Confidence: 0.95,
			Kind:       KindImage,
		},
		{
			ID:         "photos",
			Extensions: []string{".jpg", ".jpeg", ".heic", ".heif", ".raw", ".tiff"},
			Keywords:   []string{"img_", "photo", "dsc_"},
			Confidence: 0.85,
			Kind:       KindImage,
		},
		{
			ID:         "financial_documents",
			Extensions: nil,
			Keywords:   []string{"invoice", "receipt", "statement", "tax", "payroll", "budget"},
			Confidence: 0.9,
			Kind:       KindDocument,
		},
		{
			ID:         "contracts",
			Extensions: nil,
			Keywords:   []string{"contract", "agreement", "nda", "terms"},
			Confidence: 0.85,
			Kind:       KindDocument,
		},
		{
			ID:         "documents",
			Extensions: []string{".doc", ".docx", ".odt", ".rtf", ".pdf", ".txt", ".md"},
			Keywords:   nil,
			Confidence: 0.7,
			Kind:       KindDocument,
		},
		{
			ID:         "spreadsheets",
			Extensions: []string{".xls", ".xlsx", ".ods", ".csv", ".tsv"},
			Keywords:   nil,
			Confidence: 0.85,
			Kind:       KindDocument,
		},
		{
			ID:         "presentations",
			Extensions: []string{".ppt", ".pptx", ".odp", ".key"},
			Keywords:   []string{"slides", "deck"},
			Confidence: 0.85,
			Kind:       KindDocument,
		},
		{
			ID:         "ebooks",
			Extensions: []string{".epub", ".mobi", ".azw3"},
			Keywords:   nil,
			Confidence: 0.9,
			Kind:       KindDocument,
		},
		{
			ID:         "audio",
			Extensions: []string{".mp3", ".wav", ".flac", ".m4a", ".aac", ".ogg", ".opus", ".aiff"},
			Keywords:   nil,
			Confidence: 0.95,
			Kind:       KindAudio,
		},
		{
			ID:         "voice_memos",
			Extensions: nil,
			Keywords:   []string{"voice memo", "recording", "memo_"},
			Confidence: 0.8,
			Kind:       KindAudio,
		},
		{
			ID:         "video",
			Extensions: []string{".mp4", ".mkv", ".mov", ".avi", ".wmv", ".webm", ".m4v"},
			Keywords:   nil,
			Confidence: 0.95,
			Kind:       KindVideo,
		},
		{
			ID:         "code",
			Extensions: []string{".go", ".py", ".js", ".ts", ".rs", ".java", ".c", ".cpp", ".rb", ".sh", ".sql"},
			Keywords:   nil,
			Confidence: 0.9,
			Kind:       KindCode,
		},
		{
			ID:         "archives",
			Extensions: []string{".zip", ".tar", ".gz", ".bz2", ".xz", ".7z", ".rar"},
			Keywords:   []string{"backup"},
			Confidence: 0.9,
			Kind:       KindArchive,
		},
		{
			ID:         "installers",
			Extensions: []string{".dmg", ".pkg", ".msi", ".exe", ".deb", ".rpm", ".appimage"},
			Keywords:   []string{"setup", "installer"},
			Confidence: 0.9,
			Kind:       KindGeneric,
		},
	}
}
