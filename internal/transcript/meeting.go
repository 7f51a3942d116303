package transcript

import "strings"

// Paragraphs merges consecutive same-speaker segments in a single pass.
// A paragraph closes with the end of the last segment it absorbed.
func Paragraphs(segments []Segment) []Paragraph {
	if len(segments) == 0 {
		return nil
	}

	var paragraphs []Paragraph
	current := Paragraph{
		Speaker: segments[0].SpeakerLabel(),
		StartMS: segments[0].StartMS,
	}
	for i, seg := range segments {
		speaker := seg.SpeakerLabel()
		if speaker != current.Speaker {
			current.EndMS = segments[i-1].EndMS
			paragraphs = append(paragraphs, current)
			current = Paragraph{
				Speaker: speaker,
				StartMS: seg.StartMS,
			}
		}
		current.Texts = append(current.Texts, seg.Text)
	}
	current.EndMS = segments[len(segments)-1].EndMS
	return append(paragraphs, current)
}

// FormatMeetingRecord renders two lines per paragraph: the time range, then
// "speaker: text" with the paragraph's texts joined by single spaces.
func FormatMeetingRecord(segments []Segment) string {
	paragraphs := Paragraphs(segments)
	if len(paragraphs) == 0 {
		return ""
	}

	lines := make([]string, 0, len(paragraphs)*2)
	for _, p := range paragraphs {
		lines = append(lines,
			SRTTimecode(p.StartMS)+" - "+SRTTimecode(p.EndMS),
			p.Speaker+": "+strings.Join(p.Texts, " "),
		)
	}
	return strings.Join(lines, "\n")
}
