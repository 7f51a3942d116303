package media

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/media-to-srt/internal/logger"
	"github.com/nguyentantai21042004/media-to-srt/pkg/executor/executortest"
)

func quietLogger() logger.Logger {
	return logger.NewWithWriter("error", io.Discard)
}

func TestVideoToWAV(t *testing.T) {
	exec := &executortest.Fake{}
	f := New("/opt/ffmpeg", exec, quietLogger())

	got, err := f.VideoToWAV(context.Background(), "in/talk.mp4", "tmp/talk_temp.wav")
	if err != nil {
		t.Fatalf("VideoToWAV() error = %v", err)
	}
	if got != "tmp/talk_temp.wav" {
		t.Errorf("VideoToWAV() = %q, want %q", got, "tmp/talk_temp.wav")
	}

	calls := exec.Calls()
	if len(calls) != 1 {
		t.Fatalf("ffmpeg calls = %d, want 1", len(calls))
	}
	call := calls[0]
	if call.Name != "/opt/ffmpeg" {
		t.Errorf("binary = %q, want /opt/ffmpeg", call.Name)
	}
	joined := strings.Join(call.Args, " ")
	for _, want := range []string{"-i in/talk.mp4", "-vn", "-ar 16000", "-ac 1", "-c:a pcm_s16le"} {
		if !strings.Contains(joined, want) {
			t.Errorf("args %q missing %q", joined, want)
		}
	}
	if call.Args[len(call.Args)-1] != "tmp/talk_temp.wav" {
		t.Errorf("last arg = %q, want destination", call.Args[len(call.Args)-1])
	}
}

func TestAudioToWAVKeepsSampleRate(t *testing.T) {
	exec := &executortest.Fake{}
	f := New("", exec, quietLogger())

	if _, err := f.AudioToWAV(context.Background(), "song.mp3", "song_temp.wav"); err != nil {
		t.Fatalf("AudioToWAV() error = %v", err)
	}

	call := exec.Calls()[0]
	if call.Name != "ffmpeg" {
		t.Errorf("binary = %q, want ffmpeg", call.Name)
	}
	if slices.Contains(call.Args, "-ar") {
		t.Errorf("audio conversion should not resample: %v", call.Args)
	}
}

func TestNormalizeFailure(t *testing.T) {
	exec := &executortest.Fake{Handler: func(executortest.Call) (string, error) {
		return "", errors.New("exit status 1")
	}}
	f := New("ffmpeg", exec, quietLogger())

	if _, err := f.VideoToWAV(context.Background(), "broken.mkv", "out.wav"); err == nil || !strings.Contains(err.Error(), "broken.mkv") {
		t.Errorf("VideoToWAV() error = %v, want error naming the input", err)
	}
	if _, err := f.AudioToWAV(context.Background(), "broken.flac", "out.wav"); err == nil {
		t.Error("AudioToWAV() should fail when ffmpeg fails")
	}
}
