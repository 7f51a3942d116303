package device

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/nguyentantai21042004/media-to-srt/internal/logger"
	"github.com/nguyentantai21042004/media-to-srt/pkg/executor/executortest"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		preference string
		out        string
		err        error
		want       Device
		wantProbe  bool
	}{
		{"configured cpu", "cpu", "", nil, CPU, false},
		{"configured cuda", "cuda", "", nil, CUDA, false},
		{"auto with gpu", "auto", "True\n", nil, CUDA, true},
		{"auto without gpu", "auto", "False\n", nil, CPU, true},
		{"auto probe failure", "auto", "", errors.New("no torch"), CPU, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &executortest.Fake{Handler: func(executortest.Call) (string, error) {
				return tt.out, tt.err
			}}
			got := Resolve(context.Background(), exec, "python3", tt.preference, logger.NewWithWriter("error", io.Discard))
			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
			if (len(exec.Calls()) > 0) != tt.wantProbe {
				t.Errorf("probe calls = %d, wantProbe %v", len(exec.Calls()), tt.wantProbe)
			}
		})
	}
}

func TestIsAccelerated(t *testing.T) {
	if !CUDA.IsAccelerated() {
		t.Error("CUDA should be accelerated")
	}
	if CPU.IsAccelerated() {
		t.Error("CPU should not be accelerated")
	}
}
