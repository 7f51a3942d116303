// Package media converts arbitrary audio and video containers into WAV files
// the recognizer can read.
package media

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/media-to-srt/internal/logger"
	"github.com/nguyentantai21042004/media-to-srt/pkg/executor"
)

// FFmpeg normalizes media through the ffmpeg binary.
type FFmpeg struct {
	binary   string
	executor executor.Executor
	logger   logger.Logger
}

// New creates an ffmpeg-backed normalizer. An empty binary means "ffmpeg" on PATH.
func New(binary string, exec executor.Executor, log logger.Logger) *FFmpeg {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &FFmpeg{binary: binary, executor: exec, logger: log}
}

// AudioToWAV re-encodes an audio file into a PCM WAV container at dst,
// keeping its sample rate and channels.
func (f *FFmpeg) AudioToWAV(ctx context.Context, src, dst string) (string, error) {
	f.logger.Info(ctx, "Converting audio to WAV: %s", src)

	args := []string{
		"-hide_banner",
		"-nostdin",
		"-i", src,
		"-vn",
		"-c:a", "pcm_s16le",
		"-y",
		dst,
	}
	if _, err := f.executor.Execute(ctx, f.binary, args...); err != nil {
		return "", fmt.Errorf("ffmpeg convert audio %s: %w", src, err)
	}

	f.logger.Info(ctx, "Audio converted to WAV: %s", dst)
	return dst, nil
}

// VideoToWAV extracts the audio track of a video into a 16kHz mono
// PCM16 WAV at dst.
func (f *FFmpeg) VideoToWAV(ctx context.Context, src, dst string) (string, error) {
	f.logger.Info(ctx, "Extracting audio from video: %s", src)

	// -vn: drop video, -ar 16000 -ac 1: 16kHz mono, pcm_s16le: 16-bit PCM
	args := []string{
		"-hide_banner",
		"-nostdin",
		"-i", src,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		dst,
	}
	if _, err := f.executor.Execute(ctx, f.binary, args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio %s: %w", src, err)
	}

	f.logger.Info(ctx, "Audio extracted to WAV: %s", dst)
	return dst, nil
}
