package processor

import (
	"errors"
	"fmt"
)

// Kind classifies job failures.
type Kind int

const (
	UnsupportedFileType Kind = iota + 1
	NormalizationFailed
	RecognitionFailed
	OutputWriteFailed
	// CleanupFailed is only logged; it never becomes a job outcome.
	CleanupFailed
)

func (k Kind) String() string {
	switch k {
	case UnsupportedFileType:
		return "UnsupportedFileType"
	case NormalizationFailed:
		return "NormalizationFailed"
	case RecognitionFailed:
		return "RecognitionFailed"
	case OutputWriteFailed:
		return "OutputWriteFailed"
	case CleanupFailed:
		return "CleanupFailed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ErrNoSegments is reported when the recognizer returns nothing.
var ErrNoSegments = errors.New("recognizer returned no segments")

// JobError identifies the failing stage and the offending path.
type JobError struct {
	Kind  Kind
	Stage string
	Path  string
	Err   error
}

func (e *JobError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s (%s)", e.Stage, e.Kind, e.Path)
	}
	return fmt.Sprintf("%s: %s (%s): %v", e.Stage, e.Kind, e.Path, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *JobError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newJobError(kind Kind, stage, path string, err error) *JobError {
	return &JobError{Kind: kind, Stage: stage, Path: path, Err: err}
}
