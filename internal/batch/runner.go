// Package batch discovers media files under a folder and runs the
// processor on each of them, one at a time.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/media-to-srt/internal/logger"
	"github.com/nguyentantai21042004/media-to-srt/internal/processor"
)

// Runner runs the processor over every supported file in a folder.
type Runner struct {
	processor  processor.Processor
	extensions []string
	logger     logger.Logger

	walkDir func(root string, fn fs.WalkDirFunc) error
}

// New creates a Runner. extensions are lowercase and include the leading dot.
func New(proc processor.Processor, extensions []string, log logger.Logger) *Runner {
	return &Runner{
		processor:  proc,
		extensions: extensions,
		logger:     log,
		walkDir:    filepath.WalkDir,
	}
}

// Report collects the outcome of every job in discovery order.
type Report struct {
	Outcomes []processor.Outcome
}

// Succeeded counts jobs that wrote output.
func (r Report) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}

// Failed counts jobs that reported an error.
func (r Report) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}

// OutputPaths lists the transcripts written by successful jobs.
func (r Report) OutputPaths() []string {
	var paths []string
	for _, o := range r.Outcomes {
		if o.OK() {
			paths = append(paths, o.OutputPath)
		}
	}
	return paths
}

// Supported reports whether name ends with a configured extension.
func (r *Runner) Supported(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range r.extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// WatchFilter accepts supported files that are not inside the temp folder,
// so a temp folder nested in the input folder never feeds jobs back in.
func (r *Runner) WatchFilter(settings Settings) func(path string) bool {
	return func(path string) bool {
		return r.Supported(path) && !within(settings.nestedTempDir(), path)
	}
}

// Discover walks the input folder recursively and returns supported files in
// walk order. Unreadable entries below the root are skipped with a warning,
// and so is a temp folder nested inside the input folder.
func (r *Runner) Discover(ctx context.Context, settings Settings) ([]string, error) {
	root := settings.InputDir
	skip := settings.nestedTempDir()
	var files []string
	err := r.walkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			r.logger.Warn(ctx, "Skipping unreadable %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && within(skip, path) {
				r.logger.Debug(ctx, "Skipping temp folder %s", path)
				return fs.SkipDir
			}
			return nil
		}
		if r.Supported(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover files in %s: %w", root, err)
	}
	return files, nil
}

// within reports whether path is dir or lies below it.
func within(dir, path string) bool {
	if dir == "" {
		return false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Prepare validates settings and applies the language/format rule. Settings
// returned here are ready for RunFile.
func (r *Runner) Prepare(ctx context.Context, settings Settings) (Settings, error) {
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings.normalize(ctx, r.logger), nil
}

// Run validates settings, then processes every discovered file sequentially.
// The returned error is non-nil only when the batch could not start.
func (r *Runner) Run(ctx context.Context, settings Settings) (Report, error) {
	settings, err := r.Prepare(ctx, settings)
	if err != nil {
		return Report{}, err
	}

	files, err := r.Discover(ctx, settings)
	if err != nil {
		return Report{}, err
	}

	r.logger.Info(ctx, "Found %d supported file(s) in %s", len(files), settings.InputDir)

	report := Report{Outcomes: make([]processor.Outcome, 0, len(files))}
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			r.logger.Warn(ctx, "Batch interrupted after %d of %d file(s)", i, len(files))
			break
		}
		r.logger.Info(ctx, "[%d/%d] %s", i+1, len(files), path)
		report.Outcomes = append(report.Outcomes, r.RunFile(ctx, settings, path))
	}

	r.logger.Info(ctx, "Batch complete: %d succeeded, %d failed", report.Succeeded(), report.Failed())
	return report, nil
}

// RunFile processes a single file with already validated settings.
func (r *Runner) RunFile(ctx context.Context, settings Settings, path string) processor.Outcome {
	return r.processor.Process(ctx, NewJob(settings, path))
}

// NewJob builds the processor job for one input file.
func NewJob(settings Settings, path string) processor.Job {
	return processor.Job{
		ID:             processor.NewJobID(),
		InputPath:      path,
		TempDir:        settings.TempDir,
		OutputMode:     settings.OutputMode,
		OutputDir:      settings.OutputDir,
		Format:         settings.Format,
		Language:       settings.Language,
		VocalIsolation: settings.VocalIsolation,
	}
}
