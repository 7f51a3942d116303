package transcript

import "fmt"

// Format selects how a segment list is rendered.
type Format string

const (
	FormatSubtitle Format = "srt"
	FormatMeeting  Format = "meeting_record"
)

// ParseFormat maps a config value onto a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatSubtitle, FormatMeeting:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown transcript format %q", s)
	}
}

// Extension is the output file extension, including the dot.
func (f Format) Extension() string {
	if f == FormatMeeting {
		return ".txt"
	}
	return ".srt"
}

// Render formats segments with the formatter for f.
func (f Format) Render(segments []Segment) string {
	if f == FormatMeeting {
		return FormatMeetingRecord(segments)
	}
	return FormatSRT(segments)
}
