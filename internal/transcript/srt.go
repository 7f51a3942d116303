package transcript

import (
	"strconv"
	"strings"
)

// Cues numbers segments 1..n without merging or reordering.
func Cues(segments []Segment) []Cue {
	cues := make([]Cue, 0, len(segments))
	for i, seg := range segments {
		cues = append(cues, Cue{
			Index:   i + 1,
			StartMS: seg.StartMS,
			EndMS:   seg.EndMS,
			Text:    seg.Text,
		})
	}
	return cues
}

// FormatSRT renders segments as SRT text. Empty input yields "".
func FormatSRT(segments []Segment) string {
	if len(segments) == 0 {
		return ""
	}

	lines := make([]string, 0, len(segments)*4)
	for _, cue := range Cues(segments) {
		lines = append(lines,
			strconv.Itoa(cue.Index),
			SRTTimecode(cue.StartMS)+" --> "+SRTTimecode(cue.EndMS),
			cue.Text,
			"",
		)
	}
	return strings.Join(lines, "\n")
}
