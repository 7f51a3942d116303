package recognizer

import (
	"fmt"

	"github.com/nguyentantai21042004/media-to-srt/internal/config"
)

// Language is the recognition language selected for a job.
type Language string

const (
	Chinese Language = config.LanguageZH
	English Language = config.LanguageEN
	Mixed   Language = config.LanguageMix
)

// Profile is the model bundle loaded for one language.
type Profile struct {
	Language  Language
	Model     string
	VADModel  string
	PuncModel string
	// SpkModel is empty when the language runs without diarization.
	SpkModel string
}

// Diarized reports whether segments from this profile carry speaker labels.
func (p Profile) Diarized() bool {
	return p.SpkModel != ""
}

// Profiles holds one immutable Profile per supported language.
type Profiles struct {
	zh, en, mix Profile
}

// NewProfiles builds the per-language bundles from config. The mixed
// language model never loads a speaker model.
func NewProfiles(cfg config.FunASRConfig) Profiles {
	return Profiles{
		zh:  profileFrom(Chinese, cfg.ZH),
		en:  profileFrom(English, cfg.EN),
		mix: Profile{Language: Mixed, Model: cfg.Mix.Model, VADModel: cfg.Mix.VADModel, PuncModel: cfg.Mix.PuncModel},
	}
}

func profileFrom(lang Language, b config.ModelBundle) Profile {
	return Profile{
		Language:  lang,
		Model:     b.Model,
		VADModel:  b.VADModel,
		PuncModel: b.PuncModel,
		SpkModel:  b.SpkModel,
	}
}

// For returns the Profile for lang.
func (p Profiles) For(lang Language) (Profile, error) {
	var profile Profile
	switch lang {
	case Chinese:
		profile = p.zh
	case English:
		profile = p.en
	case Mixed:
		profile = p.mix
	default:
		return Profile{}, fmt.Errorf("unsupported language %q", lang)
	}
	if profile.Model == "" {
		return Profile{}, fmt.Errorf("no model configured for language %q", lang)
	}
	return profile, nil
}
