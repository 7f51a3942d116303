package processor

import (
	"context"

	"github.com/nguyentantai21042004/media-to-srt/internal/recognizer"
	"github.com/nguyentantai21042004/media-to-srt/internal/transcript"
)

// Processor runs one job end-to-end. It never returns an error: every
// failure is reported in the Outcome.
type Processor interface {
	Process(ctx context.Context, job Job) Outcome
}

// Normalizer turns media files into WAV files.
type Normalizer interface {
	AudioToWAV(ctx context.Context, src, dst string) (string, error)
	VideoToWAV(ctx context.Context, src, dst string) (string, error)
}

// Isolator separates vocals from accompaniment.
type Isolator interface {
	Isolate(ctx context.Context, audioPath, workDir string) (vocals, accompaniment string, err error)
}

// Recognizer turns audio into ordered segments.
type Recognizer interface {
	Recognize(ctx context.Context, audioPath string, lang recognizer.Language) ([]transcript.Segment, error)
}
