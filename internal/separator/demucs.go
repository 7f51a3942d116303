// Package separator splits a WAV file into vocals and accompaniment with demucs.
package separator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/media-to-srt/internal/device"
	"github.com/nguyentantai21042004/media-to-srt/internal/logger"
	"github.com/nguyentantai21042004/media-to-srt/pkg/executor"
)

const (
	vocalsFile        = "vocals.wav"
	accompanimentFile = "no_vocals.wav"
)

// Options configures the demucs invocation.
type Options struct {
	Python    string
	Model     string
	BatchSize int
	// ModelPath is exported as TORCH_HOME so demucs finds cached weights.
	ModelPath string
	Device    device.Device
}

// Demucs runs `python -m demucs.separate` in two-stem mode.
type Demucs struct {
	opts     Options
	executor executor.Executor
	logger   logger.Logger
}

// New creates a demucs-backed vocal isolator.
func New(opts Options, exec executor.Executor, log logger.Logger) *Demucs {
	return &Demucs{opts: opts, executor: exec, logger: log}
}

// Isolate separates audioPath into stems under workDir. accompaniment is
// empty when demucs did not write one. On failure the stem directory is
// removed so partial stems are not left behind.
func (d *Demucs) Isolate(ctx context.Context, audioPath, workDir string) (vocals, accompaniment string, err error) {
	d.logger.Info(ctx, "Isolating vocals with demucs model %s on %s: %s", d.opts.Model, d.opts.Device, audioPath)
	if !d.opts.Device.IsAccelerated() {
		d.logger.Warn(ctx, "demucs is running on CPU, separation may take several times the audio length")
	}

	stemDir := d.stemDir(audioPath, workDir)
	defer func() {
		if err != nil {
			d.discard(ctx, stemDir)
		}
	}()

	args := []string{
		"-m", "demucs.separate",
		"--two-stems", "vocals",
		"-n", d.opts.Model,
		"--device", string(d.opts.Device),
		"-j", strconv.Itoa(d.opts.BatchSize),
		"--out", workDir,
		audioPath,
	}

	var env []string
	if d.opts.ModelPath != "" {
		env = append(env, "TORCH_HOME="+d.opts.ModelPath)
	}

	if _, execErr := d.executor.ExecuteWithEnv(ctx, env, d.opts.Python, args...); execErr != nil {
		return "", "", fmt.Errorf("demucs separate %s: %w", audioPath, execErr)
	}

	vocals = filepath.Join(stemDir, vocalsFile)
	if _, statErr := os.Stat(vocals); statErr != nil {
		return "", "", fmt.Errorf("demucs finished but vocals stem is missing: %w", statErr)
	}

	if candidate := filepath.Join(stemDir, accompanimentFile); fileExists(candidate) {
		accompaniment = candidate
	}

	d.logger.Info(ctx, "Vocals saved to %s", vocals)
	return vocals, accompaniment, nil
}

// stemDir is where demucs writes the stems of audioPath: <out>/<model>/<base>.
func (d *Demucs) stemDir(audioPath, workDir string) string {
	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	return filepath.Join(workDir, d.opts.Model, base)
}

func (d *Demucs) discard(ctx context.Context, stemDir string) {
	if _, err := os.Stat(stemDir); err != nil {
		return
	}
	if err := os.RemoveAll(stemDir); err != nil {
		d.logger.Warn(ctx, "Failed to remove partial stems in %s: %v", stemDir, err)
		return
	}
	d.logger.Debug(ctx, "Removed partial stems in %s", stemDir)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
