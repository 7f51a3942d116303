package executor

import (
	"context"
	"os/exec"
	"strings"
	"testing"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecute(t *testing.T) {
	requireShell(t)
	out, err := New().Execute(context.Background(), "sh", "-c", "printf hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "hello" {
		t.Errorf("Execute() = %q, want %q", out, "hello")
	}
}

func TestExecuteIncludesStderr(t *testing.T) {
	requireShell(t)
	_, err := New().Execute(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	if err == nil {
		t.Fatal("Execute() should fail on non-zero exit")
	}
	if !strings.Contains(err.Error(), "stderr: boom") {
		t.Errorf("error %q does not carry stderr", err)
	}
}

func TestExecuteWithEnv(t *testing.T) {
	requireShell(t)
	out, err := New().ExecuteWithEnv(context.Background(), []string{"MEDIA_TO_SRT_TEST=42"}, "sh", "-c", "printf $MEDIA_TO_SRT_TEST")
	if err != nil {
		t.Fatalf("ExecuteWithEnv() error = %v", err)
	}
	if out != "42" {
		t.Errorf("ExecuteWithEnv() = %q, want %q", out, "42")
	}
}
