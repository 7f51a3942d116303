package processor

import (
	"context"
	"path/filepath"

	"github.com/nguyentantai21042004/media-to-srt/internal/transcript"
)

// outputDir is the input's directory, or the custom directory as given.
func outputDir(job Job) string {
	if job.OutputMode == CustomDirectory {
		return job.OutputDir
	}
	return filepath.Dir(job.InputPath)
}

// outputPath derives <dir>/<input base name><format extension>.
func outputPath(job Job) string {
	return filepath.Join(outputDir(job), job.baseName()+job.Format.Extension())
}

// writeTranscript formats segments and overwrites any existing file at the output path.
func (p *implProcessor) writeTranscript(ctx context.Context, job Job, segments []transcript.Segment) (string, *JobError) {
	path := outputPath(job)
	content := job.Format.Render(segments)

	p.logger.Debug(ctx, "[%s] Writing %s transcript to %s", job.ID, job.Format, path)
	if err := p.writeFile(path, []byte(content), 0644); err != nil {
		return "", newJobError(OutputWriteFailed, "write output", path, err)
	}
	return path, nil
}
