package watcher

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/media-to-srt/internal/logger"
)

type collector struct {
	mu      sync.Mutex
	paths   []string
	active  int
	overlap bool
	seen    chan string
}

func (c *collector) handle(ctx context.Context, path string) error {
	c.mu.Lock()
	c.active++
	if c.active > 1 {
		c.overlap = true
	}
	c.paths = append(c.paths, path)
	c.mu.Unlock()

	time.Sleep(20 * time.Millisecond)

	c.mu.Lock()
	c.active--
	c.mu.Unlock()

	c.seen <- path
	return errors.New("handler errors are logged, not fatal")
}

func onlyMP3(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".mp3")
}

func waitFor(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case p := <-ch:
		return p
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for handler")
		return ""
	}
}

func startWatcher(t *testing.T, dir string, c *collector) context.CancelFunc {
	t.Helper()
	w, err := New(dir, onlyMP3, c.handle, logger.NewWithWriter("error", io.Discard))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	w.(*implWatcher).settleDelay = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Start(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		w.Stop()
	})
	return cancel
}

func TestWatcherHandlesNewSupportedFiles(t *testing.T) {
	dir := t.TempDir()
	c := &collector{seen: make(chan string, 10)}
	startWatcher(t, dir, c)

	if err := os.WriteFile(filepath.Join(dir, "ignore.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "new.mp3")
	if err := os.WriteFile(want, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if got := waitFor(t, c.seen); got != want {
		t.Errorf("handled %q, want %q", got, want)
	}
}

func TestWatcherFollowsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing")
	if err := os.Mkdir(existing, 0755); err != nil {
		t.Fatal(err)
	}

	c := &collector{seen: make(chan string, 10)}
	startWatcher(t, dir, c)

	want := filepath.Join(existing, "a.mp3")
	if err := os.WriteFile(want, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := waitFor(t, c.seen); got != want {
		t.Errorf("handled %q, want %q", got, want)
	}
}

func TestWatcherProcessesSequentially(t *testing.T) {
	dir := t.TempDir()
	c := &collector{seen: make(chan string, 10)}
	startWatcher(t, dir, c)

	for _, name := range []string{"1.mp3", "2.mp3", "3.mp3"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 3; i++ {
		waitFor(t, c.seen)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.overlap {
		t.Error("handler ran concurrently")
	}
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), onlyMP3, func(context.Context, string) error { return nil }, logger.NewWithWriter("error", io.Discard))
	if err == nil {
		t.Error("New() should fail for a missing directory")
	}
}
