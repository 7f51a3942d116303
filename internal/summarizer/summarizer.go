package summarizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"google.golang.org/genai"
)

const summaryPrompt = `你是一名专业的会议与音视频内容整理助手。下面是一份%s，请用中文写一份详细的总结。

要求：
- 第一行用一句话概括主题
- 按出现顺序列出所有要点，每个要点给出必要的细节
- 如果内容包含多位发言人，请分别归纳每位发言人的主要观点
- 列出明确的结论、决定和待办事项（如有）
- 使用 markdown 格式：标题、列表，关键词加粗

%s：
---
%s
---`

// ErrNoAPIKeys is returned when summaries are requested without Gemini keys.
var ErrNoAPIKeys = errors.New("no Gemini API keys configured")

// SummarizeAll summarizes each transcript and writes the results into destDir.
func (s *implSummarizer) SummarizeAll(ctx context.Context, transcriptPaths []string, destDir string) (Result, error) {
	var result Result
	if len(transcriptPaths) == 0 {
		s.logger.Info(ctx, "No transcripts to summarize")
		return result, nil
	}
	if len(s.apiKeys) == 0 {
		return result, ErrNoAPIKeys
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return result, fmt.Errorf("create dest dir: %w", err)
	}

	s.logger.Info(ctx, "Summarizing %d transcript(s) into %s", len(transcriptPaths), destDir)

	for i, path := range transcriptPaths {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		s.logger.Info(ctx, "[%d/%d] Summarizing: %s", i+1, len(transcriptPaths), name)

		if err := s.summarizeOne(ctx, path, name, destDir); err != nil {
			s.logger.Error(ctx, "Failed to summarize %s: %v", path, err)
			result.Failed++
			continue
		}
		result.Succeeded++
	}

	s.logger.Info(ctx, "Summary complete: %d success, %d failed", result.Succeeded, result.Failed)
	return result, nil
}

func (s *implSummarizer) summarizeOne(ctx context.Context, path, name, destDir string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	kind := transcriptKind(path)
	summary, err := s.callGemini(ctx, fmt.Sprintf(summaryPrompt, kind, kind, string(content)))
	if err != nil {
		return err
	}

	md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
		name,
		time.Now().Format("2006-01-02 15:04"),
		strings.TrimSpace(summary),
	)

	mdPath := filepath.Join(destDir, name+".md")
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	if err := markdownToDocx(name, summary, filepath.Join(destDir, name+".docx")); err != nil {
		s.logger.Warn(ctx, "Failed to write summary docx for %s: %v", name, err)
	}
	if err := transcriptToDocx(name, string(content), filepath.Join(destDir, name+"_transcript.docx")); err != nil {
		s.logger.Warn(ctx, "Failed to write transcript docx for %s: %v", name, err)
	}

	s.logger.Info(ctx, "[DONE] %s -> %s", name, mdPath)
	return nil
}

// transcriptKind names the transcript type for the prompt.
func transcriptKind(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".srt") {
		return "字幕"
	}
	return "会议记录"
}

// callGemini sends the prompt and returns the summary text.
// Rotates API keys on 429 / quota errors.
func (s *implSummarizer) callGemini(ctx context.Context, prompt string) (string, error) {
	attempts := len(s.apiKeys)
	var lastErr error

	for range attempts {
		key := s.apiKeys[s.currentKey]

		text, err := s.generate(ctx, key, s.model, prompt)
		if err == nil {
			return text, nil
		}
		if !isQuotaError(err) {
			return "", err
		}

		s.logger.Warn(ctx, "Key %d rate limited, rotating...", s.currentKey+1)
		s.rotateKey()
		lastErr = err
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func (s *implSummarizer) rotateKey() {
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
}

// geminiGenerate runs one GenerateContent call with the given key.
func geminiGenerate(ctx context.Context, apiKey, model, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text string
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text += part.Text
			}
		}
		return text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}
