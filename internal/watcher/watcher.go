package watcher

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/media-to-srt/internal/logger"
)

type implWatcher struct {
	inputDir    string
	filter      Filter
	handler     EventHandler
	logger      logger.Logger
	watcher     *fsnotify.Watcher
	settleDelay time.Duration
}

// Start monitors the input tree and runs the handler for each new supported
// file. Files are processed sequentially in the event loop.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started. Monitoring: %s", w.inputDir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// Only process CREATE events
			if event.Op&fsnotify.Create == fsnotify.Create {
				w.handleCreate(ctx, event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

func (w *implWatcher) handleCreate(ctx context.Context, path string) {
	info, err := os.Stat(path)
	if err != nil {
		w.logger.Debug(ctx, "Ignoring vanished path %s: %v", path, err)
		return
	}

	if info.IsDir() {
		if err := w.addTree(path); err != nil {
			w.logger.Warn(ctx, "Failed to watch new directory %s: %v", path, err)
		}
		return
	}

	if !w.filter(path) {
		w.logger.Debug(ctx, "Ignoring unsupported file: %s", path)
		return
	}

	w.logger.Info(ctx, "New media detected: %s", path)

	// Small delay to ensure file is fully written
	select {
	case <-time.After(w.settleDelay):
	case <-ctx.Done():
		return
	}

	if err := w.handler(ctx, path); err != nil {
		w.logger.Error(ctx, "Failed to process %s: %v", path, err)
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}
