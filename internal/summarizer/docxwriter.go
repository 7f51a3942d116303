package summarizer

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName = "SimSun"
	fontSize = 13
)

var (
	reHeading      = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold         = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet       = regexp.MustCompile(`^[\-\*+]\s+(.+)$`)
	reNumbered     = regexp.MustCompile(`^(\d+)[.、)]\s*(.+)$`)
	reSpeaker      = regexp.MustCompile(`^\**((?:发言人|说话人|Speaker)\s*(?:\w+|[甲乙丙丁戊己庚辛])|未知)\**\s*[:：]\**\s*(.+)$`)
	reSrtTime      = regexp.MustCompile(`^\d{2,}:\d{2}:\d{2},\d{3} --> `)
	reMeetingRange = regexp.MustCompile(`^\d{2,}:\d{2}:\d{2},\d{3} - \d{2,}:\d{2}:\d{2},\d{3}$`)
	reSrtIndex     = regexp.MustCompile(`^\d+$`)
)

type blockKind int

const (
	blockText blockKind = iota
	blockHeading
	blockBullet
	blockNumbered
	blockSpeaker
)

// block is one rendered line of a summary. Label holds the heading level
// marker, list number or speaker name depending on Kind.
type block struct {
	Kind  blockKind
	Level int
	Label string
	Text  string
}

// summaryBlocks classifies the lines of a Gemini summary. Speaker points,
// whether written as a bullet or on their own line, become speaker blocks.
func summaryBlocks(markdown string) []block {
	var blocks []block
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" || strings.HasPrefix(trimmed, "```") {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			blocks = append(blocks, block{Kind: blockHeading, Level: len(m[1]), Text: m[2]})
			continue
		}

		item := trimmed
		bullet := false
		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			item, bullet = m[1], true
		}

		switch m := reSpeaker.FindStringSubmatch(item); {
		case m != nil:
			blocks = append(blocks, block{Kind: blockSpeaker, Label: strings.TrimSpace(m[1]), Text: m[2]})
		case bullet:
			blocks = append(blocks, block{Kind: blockBullet, Text: item})
		default:
			if n := reNumbered.FindStringSubmatch(trimmed); n != nil {
				blocks = append(blocks, block{Kind: blockNumbered, Label: n[1], Text: n[2]})
				continue
			}
			blocks = append(blocks, block{Kind: blockText, Text: trimmed})
		}
	}
	return blocks
}

// markdownToDocx writes a summary document: headings sized by level, speaker
// points with the speaker in bold, and numbered items kept in order.
func markdownToDocx(title, markdown, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)

	for _, b := range summaryBlocks(markdown) {
		p := doc.AddParagraph("")
		switch b.Kind {
		case blockHeading:
			addStyledRun(p, b.Text, true, headingSize(b.Level))
		case blockSpeaker:
			addStyledRun(p, b.Label+"：", true, fontSize)
			addRichText(p, b.Text)
		case blockNumbered:
			addRichText(p, b.Label+". "+b.Text)
		case blockBullet:
			addRichText(p, "• "+b.Text)
		default:
			addRichText(p, b.Text)
		}
	}

	return doc.SaveTo(outputPath)
}

// transcriptToDocx writes a readable transcript document. SRT numbering and
// timecodes are dropped and repeated cue texts are collapsed; meeting-record
// time ranges become bold lines above each speaker paragraph.
func transcriptToDocx(title, content, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)
	doc.AddParagraph("")

	previous := ""
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || reSrtIndex.MatchString(trimmed) {
			continue
		}

		if reMeetingRange.MatchString(trimmed) {
			addStyledRun(doc.AddParagraph(""), trimmed, true, fontSize)
			continue
		}
		if reSrtTime.MatchString(trimmed) {
			continue
		}

		if trimmed == previous {
			continue
		}
		previous = trimmed
		p := doc.AddParagraph("")
		p.AddText(trimmed).Font(fontName).Size(fontSize).Color("000000")
	}

	return doc.SaveTo(outputPath)
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = cleanMarkdownInline(text)
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			clean := cleanMarkdownInline(part)
			p.AddText(clean).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			clean := cleanMarkdownInline(matches[i][1])
			p.AddText(clean).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
