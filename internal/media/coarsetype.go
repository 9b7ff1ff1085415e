package media

import (
	"path/filepath"
	"strings"
)

// CoarseType is the broad media category used for analyzer dispatch and
// type-mismatch conflict detection.
type CoarseType string

const (
	TypeText    CoarseType = "text"
	TypeImage   CoarseType = "image"
	TypeAudio   CoarseType = "audio"
	TypeVideo   CoarseType = "video"
	TypeGeneric CoarseType = "generic"
)

var extensionTypes = map[string]CoarseType{
	// Text and documents.
	".txt": TypeText, ".md": TypeText, ".rtf": TypeText, ".doc": TypeText,
	".docx": TypeText, ".odt": TypeText, ".pdf": TypeText, ".csv": TypeText,
	".tsv": TypeText, ".xls": TypeText, ".xlsx": TypeText, ".ods": TypeText,
	".ppt": TypeText, ".pptx": TypeText, ".odp": TypeText, ".epub": TypeText,
	".log": TypeText, ".tex": TypeText,

	// Images.
	".jpg": TypeImage, ".jpeg": TypeImage, ".png": TypeImage, ".gif": TypeImage,
	".bmp": TypeImage, ".webp": TypeImage, ".heic": TypeImage, ".heif": TypeImage,
	".tif": TypeImage, ".tiff": TypeImage, ".svg": TypeImage, ".raw": TypeImage,

	// Audio.
	".mp3": TypeAudio, ".wav": TypeAudio, ".flac": TypeAudio, ".m4a": TypeAudio,
	".aac": TypeAudio, ".ogg": TypeAudio, ".opus": TypeAudio, ".wma": TypeAudio,
	".aiff": TypeAudio,

	// Video.
	".mp4": TypeVideo, ".mkv": TypeVideo, ".mov": TypeVideo, ".avi": TypeVideo,
	".wmv": TypeVideo, ".webm": TypeVideo, ".m4v": TypeVideo, ".mpg": TypeVideo,
	".mpeg": TypeVideo, ".ts": TypeVideo,
}

// TypeOf returns the coarse media type for path based on its extension.
// Unrecognized or missing extensions map to TypeGeneric.
func TypeOf(path string) CoarseType {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return TypeGeneric
	}
	if ct, ok := extensionTypes[ext]; ok {
		return ct
	}
	return TypeGeneric
}

// String implements fmt.Stringer.
func (t CoarseType) String() string {
	return string(t)
}

// Valid reports whether t is one of the known coarse types.
func (t CoarseType) Valid() bool {
	switch t {
	case TypeText, TypeImage, TypeAudio, TypeVideo, TypeGeneric:
		return true
	}
	return false
}
