package summarizer

import "context"

// Summarizer turns written transcripts into LLM-generated summaries.
type Summarizer interface {
	// SummarizeAll writes <base>.md, <base>.docx and <base>_transcript.docx
	// into destDir for each transcript. Per-file failures are logged and
	// counted, never returned.
	SummarizeAll(ctx context.Context, transcriptPaths []string, destDir string) (Result, error)
}

// Result counts summarized and failed transcripts.
type Result struct {
	Succeeded int
	Failed    int
}
