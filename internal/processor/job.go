package processor

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/media-to-srt/internal/recognizer"
	"github.com/nguyentantai21042004/media-to-srt/internal/transcript"
)

// OutputMode selects where transcripts are written.
type OutputMode int

const (
	// OriginalDirectory writes next to the input file.
	OriginalDirectory OutputMode = iota
	// CustomDirectory writes into Job.OutputDir, which must already exist.
	CustomDirectory
)

func (m OutputMode) String() string {
	if m == CustomDirectory {
		return "custom"
	}
	return "original"
}

// Job is one input file to process.
type Job struct {
	ID             string
	InputPath      string
	TempDir        string
	OutputMode     OutputMode
	OutputDir      string
	Format         transcript.Format
	Language       recognizer.Language
	VocalIsolation bool
}

// NewJobID returns a fresh job identifier.
func NewJobID() string {
	return uuid.NewString()
}

func (j Job) baseName() string {
	base := filepath.Base(j.InputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Outcome is the single terminal result of a job.
type Outcome struct {
	JobID      string
	InputPath  string
	OutputPath string
	Segments   int
	Duration   time.Duration
	Err        *JobError
}

// OK reports whether the job wrote its output.
func (o Outcome) OK() bool {
	return o.Err == nil
}
