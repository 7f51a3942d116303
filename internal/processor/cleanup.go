package processor

import (
	"context"
	"os"
)

// artifacts are temporary files owned by one job, in creation order.
type artifacts struct {
	paths []string
}

func (a *artifacts) add(path string) {
	if path == "" {
		return
	}
	for _, existing := range a.paths {
		if existing == path {
			return
		}
	}
	a.paths = append(a.paths, path)
}

func (a *artifacts) list() []string {
	return a.paths
}

// cleanup deletes the job's artifacts that exist on disk. For WAV inputs it
// does nothing unless RemoveOwnedArtifacts is set. Failures are logged as
// CleanupFailed and never change the job outcome.
func (p *implProcessor) cleanup(ctx context.Context, job Job, arts *artifacts) {
	if isWAV(job.InputPath) && !p.opts.RemoveOwnedArtifacts {
		if len(arts.list()) > 0 {
			p.logger.Debug(ctx, "[%s] WAV input, keeping %d artifact(s)", job.ID, len(arts.list()))
		}
		return
	}

	for _, path := range arts.list() {
		p.cleanupTempFile(ctx, job, path)
	}
}

// cleanupTempFile removes a temporary file or an emptied stem directory,
// logs warning if fails
func (p *implProcessor) cleanupTempFile(ctx context.Context, job Job, path string) {
	if _, err := p.stat(path); err != nil {
		if !os.IsNotExist(err) {
			p.logger.Warn(ctx, "[%s] %s: cannot stat temp file %s: %v", job.ID, CleanupFailed, path, err)
		}
		return
	}

	if err := p.remove(path); err != nil {
		p.logger.Warn(ctx, "[%s] %s: failed to remove temp file %s: %v", job.ID, CleanupFailed, path, err)
		return
	}
	p.logger.Info(ctx, "[%s] Removed temp file: %s", job.ID, path)
}
