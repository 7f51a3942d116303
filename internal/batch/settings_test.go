package batch

import (
	"testing"

	"github.com/nguyentantai21042004/media-to-srt/internal/config"
	"github.com/nguyentantai21042004/media-to-srt/internal/processor"
	"github.com/nguyentantai21042004/media-to-srt/internal/recognizer"
	"github.com/nguyentantai21042004/media-to-srt/internal/transcript"
)

func TestSettingsFromConfig(t *testing.T) {
	cfg := &config.Config{
		Paths: config.PathsConfig{Input: "in", Temp: "tmp", Output: "out"},
		Job: config.JobConfig{
			OutputMode:     config.OutputModeCustom,
			Format:         config.FormatMeetingRecord,
			Language:       config.LanguageZH,
			VocalIsolation: true,
		},
	}

	got, err := SettingsFromConfig(cfg)
	if err != nil {
		t.Fatalf("SettingsFromConfig() error = %v", err)
	}

	want := Settings{
		InputDir:       "in",
		TempDir:        "tmp",
		OutputMode:     processor.CustomDirectory,
		OutputDir:      "out",
		Format:         transcript.FormatMeeting,
		Language:       recognizer.Chinese,
		VocalIsolation: true,
	}
	if got != want {
		t.Errorf("SettingsFromConfig() = %+v, want %+v", got, want)
	}
}

func TestSettingsFromConfigRejectsUnknownFormat(t *testing.T) {
	cfg := &config.Config{Job: config.JobConfig{Format: "ass"}}
	if _, err := SettingsFromConfig(cfg); err == nil {
		t.Error("SettingsFromConfig() should reject unknown formats")
	}
}
