package batch

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/media-to-srt/internal/config"
	"github.com/nguyentantai21042004/media-to-srt/internal/logger"
	"github.com/nguyentantai21042004/media-to-srt/internal/processor"
	"github.com/nguyentantai21042004/media-to-srt/internal/recognizer"
	"github.com/nguyentantai21042004/media-to-srt/internal/transcript"
)

// ErrPrecondition marks batch-level validation failures.
var ErrPrecondition = errors.New("batch precondition failed")

// Settings is everything a user chooses for one batch run.
type Settings struct {
	InputDir       string
	TempDir        string
	OutputMode     processor.OutputMode
	OutputDir      string
	Format         transcript.Format
	Language       recognizer.Language
	VocalIsolation bool
}

// SettingsFromConfig builds Settings from a validated config.
func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	format, err := transcript.ParseFormat(cfg.Job.Format)
	if err != nil {
		return Settings{}, err
	}

	mode := processor.OriginalDirectory
	if cfg.Job.OutputMode == config.OutputModeCustom {
		mode = processor.CustomDirectory
	}

	return Settings{
		InputDir:       cfg.Paths.Input,
		TempDir:        cfg.Paths.Temp,
		OutputMode:     mode,
		OutputDir:      cfg.Paths.Output,
		Format:         format,
		Language:       recognizer.Language(cfg.Job.Language),
		VocalIsolation: cfg.Job.VocalIsolation,
	}, nil
}

// normalize downgrades meeting records to subtitles for languages without
// speaker diarization.
func (s Settings) normalize(ctx context.Context, log logger.Logger) Settings {
	if s.Format == transcript.FormatMeeting && !config.SupportsMeetingRecord(string(s.Language)) {
		log.Warn(ctx, "Meeting records are not available for language %q, writing subtitles instead", s.Language)
		s.Format = transcript.FormatSubtitle
	}
	return s
}

// nestedTempDir is the temp folder when it lies strictly inside the input
// folder, otherwise "".
func (s Settings) nestedTempDir() string {
	if s.TempDir == "" || !within(s.InputDir, s.TempDir) || within(s.TempDir, s.InputDir) {
		return ""
	}
	return s.TempDir
}

// Validate checks the folders a batch needs before any job runs.
func (s Settings) Validate() error {
	if s.InputDir == "" || s.TempDir == "" {
		if s.OutputMode == processor.CustomDirectory && s.OutputDir == "" {
			return fmt.Errorf("%w: input folder, temp folder and output folder are required", ErrPrecondition)
		}
		return fmt.Errorf("%w: input folder and temp folder are required", ErrPrecondition)
	}
	if err := requireDir("input folder", s.InputDir); err != nil {
		return err
	}
	if err := requireDir("temp folder", s.TempDir); err != nil {
		return err
	}
	if s.OutputMode == processor.CustomDirectory {
		if s.OutputDir == "" {
			return fmt.Errorf("%w: output folder is required for custom output mode", ErrPrecondition)
		}
		if err := requireDir("output folder", s.OutputDir); err != nil {
			return err
		}
	}
	return nil
}

func requireDir(what, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrPrecondition, what, path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s %s is not a directory", ErrPrecondition, what, path)
	}
	return nil
}
