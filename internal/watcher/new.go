package watcher

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/media-to-srt/internal/logger"
)

// DefaultSettleDelay gives writers time to finish a new file before it is read.
const DefaultSettleDelay = 500 * time.Millisecond

// New creates a Watcher over inputDir and every existing subdirectory.
// Files are handed to handler one at a time.
func New(inputDir string, filter Filter, handler EventHandler, log logger.Logger) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &implWatcher{
		inputDir:    inputDir,
		filter:      filter,
		handler:     handler,
		logger:      log,
		watcher:     watcher,
		settleDelay: DefaultSettleDelay,
	}

	if err := w.addTree(inputDir); err != nil {
		watcher.Close()
		return nil, err
	}

	return w, nil
}

// addTree watches root and all directories below it.
func (w *implWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("add watch path %s: %w", path, err)
		}
		return nil
	})
}
