package processor

import (
	"context"
	"fmt"
	"path/filepath"
)

// tempWAVPath is where a job's normalized audio is written.
func tempWAVPath(job Job) string {
	return filepath.Join(job.TempDir, job.baseName()+"_temp.wav")
}

// normalize returns a WAV path for the job's input. WAV inputs pass through
// untouched; anything else is converted into the temp dir and registered
// for cleanup.
func (p *implProcessor) normalize(ctx context.Context, job Job, arts *artifacts) (string, *JobError) {
	input := job.InputPath

	switch {
	case hasAnySuffix(input, p.opts.AudioExtensions):
		if isWAV(input) {
			p.logger.Debug(ctx, "[%s] Input is already WAV, skipping conversion", job.ID)
			return input, nil
		}
		dst := tempWAVPath(job)
		arts.add(dst)
		wav, err := p.normalizer.AudioToWAV(ctx, input, dst)
		if err != nil {
			return "", newJobError(NormalizationFailed, "convert audio", input, err)
		}
		return wav, nil

	case hasAnySuffix(input, p.opts.VideoExtensions):
		dst := tempWAVPath(job)
		arts.add(dst)
		wav, err := p.normalizer.VideoToWAV(ctx, input, dst)
		if err != nil {
			return "", newJobError(NormalizationFailed, "extract audio", input, err)
		}
		return wav, nil

	default:
		return "", newJobError(UnsupportedFileType, "normalize", input,
			fmt.Errorf("extension %q is not a configured audio or video type", filepath.Ext(input)))
	}
}
