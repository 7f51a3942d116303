package processor

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/media-to-srt/internal/logger"
)

// Options holds settings shared by every job.
type Options struct {
	AudioExtensions []string
	VideoExtensions []string
	// RemoveOwnedArtifacts also cleans up isolation stems for WAV inputs.
	RemoveOwnedArtifacts bool
}

type implProcessor struct {
	opts       Options
	normalizer Normalizer
	isolator   Isolator
	recognizer Recognizer
	logger     logger.Logger

	writeFile func(name string, data []byte, perm os.FileMode) error
	remove    func(name string) error
	stat      func(name string) (os.FileInfo, error)
}

// New creates a new Processor instance
func New(opts Options, normalizer Normalizer, isolator Isolator, rec Recognizer, log logger.Logger) Processor {
	return &implProcessor{
		opts:       opts,
		normalizer: normalizer,
		isolator:   isolator,
		recognizer: rec,
		logger:     log,
		writeFile:  os.WriteFile,
		remove:     os.Remove,
		stat:       os.Stat,
	}
}

func hasAnySuffix(path string, exts []string) bool {
	lower := strings.ToLower(path)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func isWAV(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".wav")
}

// isSubdir reports whether dir lies strictly inside root.
func isSubdir(root, dir string) bool {
	if root == "" {
		return false
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
