// Package device picks the compute device handed to the speech and
// separation models. The choice is made once at startup and passed along
// explicitly.
package device

import (
	"context"
	"strings"

	"github.com/nguyentantai21042004/media-to-srt/internal/config"
	"github.com/nguyentantai21042004/media-to-srt/internal/logger"
	"github.com/nguyentantai21042004/media-to-srt/pkg/executor"
)

// Device is a torch device string.
type Device string

const (
	CUDA Device = "cuda:0"
	CPU  Device = "cpu"
)

const probeScript = "import torch; print(torch.cuda.is_available())"

// IsAccelerated reports whether d runs on the GPU.
func (d Device) IsAccelerated() bool {
	return strings.HasPrefix(string(d), "cuda")
}

// Resolve maps the configured preference onto a Device. "auto" probes torch
// through python and falls back to CPU when the probe fails or reports no GPU.
func Resolve(ctx context.Context, exec executor.Executor, python, preference string, log logger.Logger) Device {
	switch preference {
	case config.DeviceCPU:
		log.Info(ctx, "Using CPU (configured)")
		return CPU
	case config.DeviceCUDA:
		log.Info(ctx, "Using GPU %s (configured)", CUDA)
		return CUDA
	}

	out, err := exec.Execute(ctx, python, "-c", probeScript)
	if err != nil {
		log.Warn(ctx, "CUDA probe failed, falling back to CPU: %v", err)
		return CPU
	}
	if strings.TrimSpace(out) != "True" {
		log.Warn(ctx, "CUDA is not available, falling back to CPU")
		return CPU
	}

	log.Info(ctx, "CUDA is available, using GPU %s", CUDA)
	return CUDA
}
