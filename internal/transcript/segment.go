// Package transcript turns recognized segments into SRT subtitles or
// speaker-grouped meeting records.
package transcript

// UnknownSpeaker labels segments recognized without speaker diarization.
const UnknownSpeaker = "未知"

// Segment is one recognized utterance. Offsets are milliseconds into the source audio.
type Segment struct {
	StartMS int64
	EndMS   int64
	Text    string
	// Speaker is empty when diarization was not run.
	Speaker string
}

// SpeakerLabel returns the segment's speaker or UnknownSpeaker.
func (s Segment) SpeakerLabel() string {
	if s.Speaker == "" {
		return UnknownSpeaker
	}
	return s.Speaker
}

// Cue is one numbered SRT entry.
type Cue struct {
	Index   int
	StartMS int64
	EndMS   int64
	Text    string
}

// Paragraph is a run of consecutive segments from the same speaker.
type Paragraph struct {
	Speaker string
	StartMS int64
	EndMS   int64
	Texts   []string
}
