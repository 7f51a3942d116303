package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/nguyentantai21042004/media-to-srt/internal/batch"
	"github.com/nguyentantai21042004/media-to-srt/internal/config"
	"github.com/nguyentantai21042004/media-to-srt/internal/device"
	"github.com/nguyentantai21042004/media-to-srt/internal/logger"
	"github.com/nguyentantai21042004/media-to-srt/internal/media"
	"github.com/nguyentantai21042004/media-to-srt/internal/processor"
	"github.com/nguyentantai21042004/media-to-srt/internal/recognizer"
	"github.com/nguyentantai21042004/media-to-srt/internal/separator"
	"github.com/nguyentantai21042004/media-to-srt/internal/summarizer"
	"github.com/nguyentantai21042004/media-to-srt/internal/watcher"
	"github.com/nguyentantai21042004/media-to-srt/pkg/executor"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	inputDir := flag.String("input", "", "input folder (overrides paths.input)")
	watch := flag.Bool("watch", false, "keep watching the input folder after the batch")
	summarize := flag.Bool("summarize", false, "summarize written transcripts with Gemini")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *inputDir != "" {
		cfg.Paths.Input = *inputDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize logger
	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "FunASR media to subtitle")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)

	if err := run(ctx, cfg, log, *watch, *summarize); err != nil {
		log.Error(ctx, "%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger, watch, summarize bool) error {
	exec := executor.New()

	// Device is resolved once and handed to every model
	dev := device.Resolve(ctx, exec, cfg.FunASR.Python, cfg.Device, log)

	normalizer := media.New(cfg.FFmpeg.Binary, exec, log)
	isolator := separator.New(separator.Options{
		Python:    cfg.Demucs.Python,
		Model:     cfg.Demucs.Model,
		BatchSize: cfg.Demucs.BatchSize,
		ModelPath: cfg.Demucs.ModelPath,
		Device:    dev,
	}, exec, log)
	rec := recognizer.New(recognizer.Options{
		Python:     cfg.FunASR.Python,
		BatchSizeS: cfg.FunASR.BatchSizeS,
		Device:     dev,
		ScriptDir:  cfg.Paths.Temp,
	}, recognizer.NewProfiles(cfg.FunASR), exec, log)

	proc := processor.New(processor.Options{
		AudioExtensions:      cfg.FileTypes.AudioExtensions,
		VideoExtensions:      cfg.FileTypes.VideoExtensions,
		RemoveOwnedArtifacts: cfg.Job.RemoveOwnedArtifacts,
	}, normalizer, isolator, rec, log)

	extensions := append(append([]string{}, cfg.FileTypes.AudioExtensions...), cfg.FileTypes.VideoExtensions...)
	runner := batch.New(proc, extensions, log)

	settings, err := batch.SettingsFromConfig(cfg)
	if err != nil {
		return err
	}
	settings, err = runner.Prepare(ctx, settings)
	if err != nil {
		return err
	}

	log.Info(ctx, "Input: %s", settings.InputDir)
	log.Info(ctx, "Temp: %s", settings.TempDir)
	log.Info(ctx, "Output: %s %s", settings.OutputMode, settings.OutputDir)
	log.Info(ctx, "Format: %s, language: %s, vocal isolation: %v", settings.Format, settings.Language, settings.VocalIsolation)

	report, err := runner.Run(ctx, settings)
	if err != nil {
		return err
	}
	for _, o := range report.Outcomes {
		if !o.OK() {
			log.Warn(ctx, "Not converted: %s (%s)", o.InputPath, o.Err.Kind)
		}
	}

	if summarize {
		summaries(ctx, cfg, log, report.OutputPaths())
	}

	if !watch {
		return nil
	}
	return watchInput(ctx, cfg, log, runner, settings, summarize)
}

func watchInput(ctx context.Context, cfg *config.Config, log logger.Logger, runner *batch.Runner, settings batch.Settings, summarize bool) error {
	handler := func(ctx context.Context, path string) error {
		outcome := runner.RunFile(ctx, settings, path)
		if !outcome.OK() {
			return outcome.Err
		}
		if summarize {
			summaries(ctx, cfg, log, []string{outcome.OutputPath})
		}
		return nil
	}

	w, err := watcher.New(settings.InputDir, runner.WatchFilter(settings), handler, log)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	log.Info(ctx, "Watching %s for new media. Press Ctrl+C to stop", settings.InputDir)
	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watcher: %w", err)
	}
	log.Info(ctx, "Shutting down")
	return nil
}

func summaries(ctx context.Context, cfg *config.Config, log logger.Logger, transcripts []string) {
	destDir := cfg.Gemini.SummariesDir
	if destDir == "" {
		destDir = cfg.Paths.Temp
	}

	s := summarizer.New(cfg.Gemini.APIKeys, cfg.Gemini.Model, log)
	if _, err := s.SummarizeAll(ctx, transcripts, destDir); err != nil {
		log.Warn(ctx, "Summaries skipped: %v", err)
	}
}
