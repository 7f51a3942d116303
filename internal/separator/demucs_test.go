package separator

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/media-to-srt/internal/device"
	"github.com/nguyentantai21042004/media-to-srt/internal/logger"
	"github.com/nguyentantai21042004/media-to-srt/pkg/executor/executortest"
)

func writeStems(t *testing.T, workDir, model, base string, names ...string) {
	t.Helper()
	dir := filepath.Join(workDir, model, base)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("RIFF"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func newDemucs(exec *executortest.Fake, modelPath string) *Demucs {
	return New(Options{
		Python:    "python3",
		Model:     "mdx_extra",
		BatchSize: 4,
		ModelPath: modelPath,
		Device:    device.CPU,
	}, exec, logger.NewWithWriter("error", io.Discard))
}

func TestIsolate(t *testing.T) {
	workDir := t.TempDir()
	exec := &executortest.Fake{Handler: func(executortest.Call) (string, error) {
		writeStems(t, workDir, "mdx_extra", "meeting_temp", vocalsFile, accompanimentFile)
		return "", nil
	}}

	vocals, accompaniment, err := newDemucs(exec, "/models").Isolate(context.Background(), "/tmp/meeting_temp.wav", workDir)
	if err != nil {
		t.Fatalf("Isolate() error = %v", err)
	}

	if want := filepath.Join(workDir, "mdx_extra", "meeting_temp", vocalsFile); vocals != want {
		t.Errorf("vocals = %q, want %q", vocals, want)
	}
	if want := filepath.Join(workDir, "mdx_extra", "meeting_temp", accompanimentFile); accompaniment != want {
		t.Errorf("accompaniment = %q, want %q", accompaniment, want)
	}

	call := exec.Calls()[0]
	joined := strings.Join(call.Args, " ")
	for _, want := range []string{"-m demucs.separate", "--two-stems vocals", "-n mdx_extra", "--device cpu", "-j 4", "--out " + workDir} {
		if !strings.Contains(joined, want) {
			t.Errorf("args %q missing %q", joined, want)
		}
	}
	if len(call.Env) != 1 || call.Env[0] != "TORCH_HOME=/models" {
		t.Errorf("env = %v, want TORCH_HOME=/models", call.Env)
	}
}

func TestIsolateWithoutAccompaniment(t *testing.T) {
	workDir := t.TempDir()
	exec := &executortest.Fake{Handler: func(executortest.Call) (string, error) {
		writeStems(t, workDir, "mdx_extra", "clip", vocalsFile)
		return "", nil
	}}

	_, accompaniment, err := newDemucs(exec, "").Isolate(context.Background(), "clip.wav", workDir)
	if err != nil {
		t.Fatalf("Isolate() error = %v", err)
	}
	if accompaniment != "" {
		t.Errorf("accompaniment = %q, want empty", accompaniment)
	}
	if env := exec.Calls()[0].Env; len(env) != 0 {
		t.Errorf("env = %v, want none without model path", env)
	}
}

func TestIsolateFailures(t *testing.T) {
	t.Run("demucs error", func(t *testing.T) {
		exec := &executortest.Fake{Handler: func(executortest.Call) (string, error) {
			return "", errors.New("CUDA out of memory")
		}}
		if _, _, err := newDemucs(exec, "").Isolate(context.Background(), "a.wav", t.TempDir()); err == nil {
			t.Error("Isolate() should fail when demucs fails")
		}
	})

	t.Run("missing vocals stem", func(t *testing.T) {
		exec := &executortest.Fake{}
		if _, _, err := newDemucs(exec, "").Isolate(context.Background(), "a.wav", t.TempDir()); err == nil {
			t.Error("Isolate() should fail when no vocals stem is written")
		}
	})
}

func TestIsolateFailureRemovesPartialStems(t *testing.T) {
	tests := []struct {
		name    string
		written []string
		execErr error
	}{
		{"demucs crashes mid-write", []string{accompanimentFile}, errors.New("killed")},
		{"demucs exits cleanly without vocals", []string{accompanimentFile}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workDir := t.TempDir()
			exec := &executortest.Fake{Handler: func(executortest.Call) (string, error) {
				writeStems(t, workDir, "mdx_extra", "clip_temp", tt.written...)
				return "", tt.execErr
			}}

			if _, _, err := newDemucs(exec, "").Isolate(context.Background(), "/tmp/clip_temp.wav", workDir); err == nil {
				t.Fatal("Isolate() should fail")
			}
			stemDir := filepath.Join(workDir, "mdx_extra", "clip_temp")
			if _, err := os.Stat(stemDir); !os.IsNotExist(err) {
				t.Errorf("partial stem dir %s should be removed (stat err = %v)", stemDir, err)
			}
			if _, err := os.Stat(workDir); err != nil {
				t.Errorf("work dir must survive: %v", err)
			}
		})
	}
}

func TestIsolateWarnsOnCPU(t *testing.T) {
	workDir := t.TempDir()
	exec := &executortest.Fake{Handler: func(executortest.Call) (string, error) {
		writeStems(t, workDir, "mdx_extra", "clip", vocalsFile)
		return "", nil
	}}

	for _, tt := range []struct {
		dev  device.Device
		warn bool
	}{
		{device.CPU, true},
		{device.CUDA, false},
	} {
		t.Run(string(tt.dev), func(t *testing.T) {
			var logs bytes.Buffer
			d := New(Options{Python: "python3", Model: "mdx_extra", BatchSize: 4, Device: tt.dev}, exec, logger.NewWithWriter("warn", &logs))
			if _, _, err := d.Isolate(context.Background(), "clip.wav", workDir); err != nil {
				t.Fatalf("Isolate() error = %v", err)
			}
			if got := strings.Contains(logs.String(), "running on CPU"); got != tt.warn {
				t.Errorf("CPU warning logged = %v, want %v:\n%s", got, tt.warn, logs.String())
			}
		})
	}
}
