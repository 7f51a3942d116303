package processor

import (
	"context"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/media-to-srt/internal/transcript"
)

// Process orchestrates normalize -> isolate -> recognize -> write -> cleanup
// for one file.
func (p *implProcessor) Process(ctx context.Context, job Job) Outcome {
	startTime := time.Now()
	if job.ID == "" {
		job.ID = NewJobID()
	}

	p.logger.Info(ctx, "[%s] Processing %s", job.ID, job.InputPath)

	arts := &artifacts{}
	outputPath, segments, jobErr := p.run(ctx, job, arts)
	p.cleanup(ctx, job, arts)

	outcome := Outcome{
		JobID:      job.ID,
		InputPath:  job.InputPath,
		OutputPath: outputPath,
		Segments:   len(segments),
		Duration:   time.Since(startTime),
		Err:        jobErr,
	}

	if jobErr != nil {
		p.logger.Error(ctx, "[%s] Failed: %v", job.ID, jobErr)
		return outcome
	}

	spoken := segments[len(segments)-1].EndMS
	p.logger.Info(ctx, "[%s] Saved %s (%d segments, audio %s, took %s)",
		job.ID, outputPath, len(segments), transcript.Display(spoken), outcome.Duration.Round(time.Millisecond))
	return outcome
}

func (p *implProcessor) run(ctx context.Context, job Job, arts *artifacts) (string, []transcript.Segment, *JobError) {
	// Step 1: bring the input to WAV
	wavPath, jobErr := p.normalize(ctx, job, arts)
	if jobErr != nil {
		return "", nil, jobErr
	}

	// Step 2: optional vocal isolation, never fatal
	audioPath := wavPath
	if job.VocalIsolation {
		audioPath = p.isolate(ctx, job, wavPath, arts)
	}

	// Step 3: recognize
	segments, jobErr := p.recognize(ctx, job, audioPath)
	if jobErr != nil {
		return "", nil, jobErr
	}

	// Step 4 and 5: resolve output location, format and write
	outputPath, jobErr := p.writeTranscript(ctx, job, segments)
	if jobErr != nil {
		return "", nil, jobErr
	}

	return outputPath, segments, nil
}

// isolate returns the vocals stem, or the original input when isolation fails.
func (p *implProcessor) isolate(ctx context.Context, job Job, wavPath string, arts *artifacts) string {
	vocals, accompaniment, err := p.isolator.Isolate(ctx, wavPath, job.TempDir)
	if err != nil {
		p.logger.Warn(ctx, "[%s] Vocal isolation failed, recognizing original input %s: %v", job.ID, job.InputPath, err)
		return job.InputPath
	}

	arts.add(vocals)
	if accompaniment != "" {
		arts.add(accompaniment)
	}
	// Registered after the stems so it is empty by the time cleanup reaches it.
	if dir := filepath.Dir(vocals); isSubdir(job.TempDir, dir) {
		arts.add(dir)
	}
	return vocals
}

func (p *implProcessor) recognize(ctx context.Context, job Job, audioPath string) ([]transcript.Segment, *JobError) {
	segments, err := p.recognizer.Recognize(ctx, audioPath, job.Language)
	if err != nil {
		return nil, newJobError(RecognitionFailed, "recognize", audioPath, err)
	}
	if len(segments) == 0 {
		return nil, newJobError(RecognitionFailed, "recognize", audioPath, ErrNoSegments)
	}
	return segments, nil
}
