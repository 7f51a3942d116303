// Package recognizer runs FunASR speech recognition and returns timestamped,
// optionally speaker-tagged segments.
package recognizer

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/media-to-srt/internal/device"
	"github.com/nguyentantai21042004/media-to-srt/internal/logger"
	"github.com/nguyentantai21042004/media-to-srt/internal/transcript"
	"github.com/nguyentantai21042004/media-to-srt/pkg/executor"
)

//go:embed assets/funasr_generate.py
var helperScript []byte

const helperPattern = "funasr-generate-*.py"

// Options configures the FunASR helper process.
type Options struct {
	Python     string
	BatchSizeS int
	Device     device.Device
	// ScriptDir is where the embedded helper is written; empty means os.TempDir().
	ScriptDir string
}

// FunASR recognizes speech by running the embedded Python helper.
type FunASR struct {
	opts     Options
	profiles Profiles
	executor executor.Executor
	logger   logger.Logger
}

// New creates a FunASR recognizer.
func New(opts Options, profiles Profiles, exec executor.Executor, log logger.Logger) *FunASR {
	return &FunASR{opts: opts, profiles: profiles, executor: exec, logger: log}
}

type sentenceInfo struct {
	Start   int64           `json:"start"`
	End     int64           `json:"end"`
	Text    string          `json:"text"`
	Speaker json.RawMessage `json:"spk,omitempty"`
}

type helperOutput struct {
	SentenceInfo []sentenceInfo `json:"sentence_info"`
}

// Recognize returns the segments for audioPath in ascending start order.
func (f *FunASR) Recognize(ctx context.Context, audioPath string, lang Language) ([]transcript.Segment, error) {
	profile, err := f.profiles.For(lang)
	if err != nil {
		return nil, err
	}

	scriptPath, err := f.writeHelper()
	if err != nil {
		return nil, err
	}
	defer os.Remove(scriptPath)

	f.logger.Info(ctx, "Recognizing %s (language=%s, model=%s, device=%s)", audioPath, lang, profile.Model, f.opts.Device)

	out, err := f.executor.Execute(ctx, f.opts.Python, f.buildArgs(scriptPath, audioPath, profile)...)
	if err != nil {
		return nil, fmt.Errorf("funasr generate: %w", err)
	}

	segments, err := parseHelperOutput(out)
	if err != nil {
		return nil, err
	}

	f.logger.Info(ctx, "Recognition produced %d segments", len(segments))
	return segments, nil
}

func (f *FunASR) buildArgs(scriptPath, audioPath string, profile Profile) []string {
	args := []string{
		scriptPath,
		"--audio", audioPath,
		"--model", profile.Model,
		"--device", string(f.opts.Device),
		"--batch-size-s", strconv.Itoa(f.opts.BatchSizeS),
	}
	if profile.VADModel != "" {
		args = append(args, "--vad-model", profile.VADModel)
	}
	if profile.PuncModel != "" {
		args = append(args, "--punc-model", profile.PuncModel)
	}
	if profile.Diarized() {
		args = append(args, "--spk-model", profile.SpkModel)
	}
	return args
}

func (f *FunASR) writeHelper() (string, error) {
	dir := f.opts.ScriptDir
	if dir == "" {
		dir = os.TempDir()
	}
	file, err := os.CreateTemp(dir, helperPattern)
	if err != nil {
		return "", fmt.Errorf("create funasr helper: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(helperScript); err != nil {
		os.Remove(file.Name())
		return "", fmt.Errorf("write funasr helper: %w", err)
	}
	return file.Name(), nil
}

// parseHelperOutput decodes the helper's result, which is always the last
// non-empty line of stdout. Anything FunASR prints before it is ignored.
func parseHelperOutput(out string) ([]transcript.Segment, error) {
	var parsed helperOutput
	if err := json.Unmarshal([]byte(lastLine(out)), &parsed); err != nil {
		return nil, fmt.Errorf("parse funasr output: %w", err)
	}

	segments := make([]transcript.Segment, 0, len(parsed.SentenceInfo))
	for _, s := range parsed.SentenceInfo {
		segments = append(segments, transcript.Segment{
			StartMS: s.Start,
			EndMS:   s.End,
			Text:    s.Text,
			Speaker: speakerLabel(s.Speaker),
		})
	}
	return segments, nil
}

func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

// speakerLabel renders FunASR's numeric or string speaker id.
func speakerLabel(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
