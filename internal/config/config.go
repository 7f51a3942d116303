package config

import (
	"fmt"
	"strings"
)

const (
	FormatSRT           = "srt"
	FormatMeetingRecord = "meeting_record"

	OutputModeOriginal = "original"
	OutputModeCustom   = "custom"

	LanguageZH  = "zh"
	LanguageEN  = "en"
	LanguageMix = "mix"

	DeviceAuto = "auto"
	DeviceCUDA = "cuda"
	DeviceCPU  = "cpu"
)

type Config struct {
	FileTypes FileTypesConfig `yaml:"file_types"`
	FunASR    FunASRConfig    `yaml:"funasr"`
	Demucs    DemucsConfig    `yaml:"demucs"`
	FFmpeg    FFmpegConfig    `yaml:"ffmpeg"`
	Device    string          `yaml:"device"`
	Paths     PathsConfig     `yaml:"paths"`
	Job       JobConfig       `yaml:"job"`
	Logging   LoggingConfig   `yaml:"logging"`
	Gemini    GeminiConfig    `yaml:"gemini"`
}

type FileTypesConfig struct {
	AudioExtensions []string `yaml:"audio_extensions"`
	VideoExtensions []string `yaml:"video_extensions"`
}

// ModelBundle names the FunASR models used for one language.
// SpkModel is empty when the language has no speaker diarization.
type ModelBundle struct {
	Model     string `yaml:"model"`
	VADModel  string `yaml:"vad_model"`
	PuncModel string `yaml:"punc_model"`
	SpkModel  string `yaml:"spk_model"`
}

type FunASRConfig struct {
	Python     string      `yaml:"python"`
	BatchSizeS int         `yaml:"batch_size_s"`
	ZH         ModelBundle `yaml:"zh"`
	EN         ModelBundle `yaml:"en"`
	Mix        ModelBundle `yaml:"mix"`
}

type DemucsConfig struct {
	Python    string `yaml:"python"`
	Model     string `yaml:"model"`
	BatchSize int    `yaml:"batch_size"`
	ModelPath string `yaml:"model_path"`
}

type FFmpegConfig struct {
	Binary string `yaml:"binary"`
}

type PathsConfig struct {
	Input  string `yaml:"input"`
	Temp   string `yaml:"temp"`
	Output string `yaml:"output"`
}

type JobConfig struct {
	OutputMode     string `yaml:"output_mode"`
	Format         string `yaml:"format"`
	Language       string `yaml:"language"`
	VocalIsolation bool   `yaml:"vocal_isolation"`
	// RemoveOwnedArtifacts deletes isolation outputs even when the input was already a WAV.
	RemoveOwnedArtifacts bool `yaml:"remove_owned_artifacts"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type GeminiConfig struct {
	Model        string   `yaml:"model"`
	APIKeys      []string `yaml:"api_keys"`
	SummariesDir string   `yaml:"summaries_dir"`
}

// Validate checks enumerated values and fills defaults. Folder existence is
// checked by the batch runner, not here.
func (c *Config) Validate() error {
	c.FileTypes.AudioExtensions = normalizeExtensions(c.FileTypes.AudioExtensions)
	c.FileTypes.VideoExtensions = normalizeExtensions(c.FileTypes.VideoExtensions)
	if len(c.FileTypes.AudioExtensions) == 0 && len(c.FileTypes.VideoExtensions) == 0 {
		return fmt.Errorf("file_types: at least one audio or video extension is required")
	}

	if c.Job.Language == "" {
		c.Job.Language = LanguageZH
	}
	bundle, err := c.FunASR.Bundle(c.Job.Language)
	if err != nil {
		return err
	}
	if bundle.Model == "" {
		return fmt.Errorf("funasr.%s.model is required", c.Job.Language)
	}

	if c.Job.Format == "" {
		c.Job.Format = FormatSRT
	}
	if c.Job.Format != FormatSRT && c.Job.Format != FormatMeetingRecord {
		return fmt.Errorf("job.format must be %q or %q, got %q", FormatSRT, FormatMeetingRecord, c.Job.Format)
	}

	if c.Job.OutputMode == "" {
		c.Job.OutputMode = OutputModeOriginal
	}
	if c.Job.OutputMode != OutputModeOriginal && c.Job.OutputMode != OutputModeCustom {
		return fmt.Errorf("job.output_mode must be %q or %q, got %q", OutputModeOriginal, OutputModeCustom, c.Job.OutputMode)
	}

	c.Device = strings.ToLower(strings.TrimSpace(c.Device))
	if c.Device == "" {
		c.Device = DeviceAuto
	}
	if c.Device != DeviceAuto && c.Device != DeviceCUDA && c.Device != DeviceCPU {
		return fmt.Errorf("device must be auto, cuda or cpu, got %q", c.Device)
	}

	if c.FunASR.Python == "" {
		c.FunASR.Python = "python3"
	}
	if c.FunASR.BatchSizeS <= 0 {
		c.FunASR.BatchSizeS = 30
	}
	if c.Demucs.Python == "" {
		c.Demucs.Python = c.FunASR.Python
	}
	if c.Demucs.Model == "" {
		c.Demucs.Model = "mdx_extra"
	}
	if c.Demucs.BatchSize <= 0 {
		c.Demucs.BatchSize = 4
	}
	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = "ffmpeg"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}

	return nil
}

// Bundle returns the model bundle configured for a language.
func (f FunASRConfig) Bundle(language string) (ModelBundle, error) {
	switch language {
	case LanguageZH:
		return f.ZH, nil
	case LanguageEN:
		return f.EN, nil
	case LanguageMix:
		return f.Mix, nil
	default:
		return ModelBundle{}, fmt.Errorf("unsupported language %q (want zh, en or mix)", language)
	}
}

// SupportsMeetingRecord reports whether a language can produce speaker-grouped
// meeting records. Only zh ships a working speaker model.
func SupportsMeetingRecord(language string) bool {
	return language == LanguageZH
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	seen := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if seen[ext] {
			continue
		}
		seen[ext] = true
		out = append(out, ext)
	}
	return out
}
