package fileid

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// FileRef identifies one on-disk file at one point in time. It is immutable
// once resolved; classification components pass it by value.
type FileRef struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Resolve stats path and returns a populated FileRef. Directories and
// unreadable paths are rejected.
func Resolve(path string) (FileRef, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return FileRef{}, fmt.Errorf("resolve path %q: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return FileRef{}, fmt.Errorf("stat %q: %w", abs, err)
	}
	if info.IsDir() {
		return FileRef{}, fmt.Errorf("%q is a directory, not a file", abs)
	}
	return FileRef{
		Path:    abs,
		Name:    filepath.Base(abs),
		Size:    info.Size(),
		ModTime: info.ModTime().UTC(),
	}, nil
}

// ID returns the stable queue identifier for ref. The hash covers path,
// size, and modification time so unchanged files deduplicate across scans.
func ID(ref FileRef) string {
	hasher := sha256.New()
	hasher.Write([]byte(ref.Path))
	hasher.Write([]byte{0})
	hasher.Write([]byte(strconv.FormatInt(ref.Size, 10)))
	hasher.Write([]byte{0})
	hasher.Write([]byte(strconv.FormatInt(ref.ModTime.UnixNano(), 10)))
	return hex.EncodeToString(hasher.Sum(nil))
}
