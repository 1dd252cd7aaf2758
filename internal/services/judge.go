package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"recruitai/backend/internal/models"
)

// Default and sentinel values for judgment records. A degraded judgment
// is distinguishable from a genuine result only by these sentinels.
const (
	maxJudgmentGaps = 3

	summaryNoBackend   = "AI analysis unavailable. Please configure GROQ_API_KEY or GOOGLE_API_KEY."
	summaryUnparseable = "Unable to parse AI response. Please try again."
	summaryMissing     = "Analysis not available"
	gapNoBackend       = "No API configured"
	gapAnalysisError   = "Analysis error"
)

type JudgeService interface {
	Judge(ctx context.Context, resumeText, jobDescription string) models.ResumeJudgment
}

type judgeService struct {
	backend       JudgmentBackend
	promptBuilder *PromptBuilder
}

// NewJudgeService wires the engine to the backend selected at startup.
// A nil backend is valid and yields the no-backend degraded judgment.
func NewJudgeService(backend JudgmentBackend) JudgeService {
	return &judgeService{
		backend:       backend,
		promptBuilder: NewPromptBuilder(),
	}
}

// Judge evaluates a resume against a job description. It never returns
// an error: every failure mode degrades into a well-formed judgment.
// One backend invocation per call; no retries, no caching.
func (s *judgeService) Judge(ctx context.Context, resumeText, jobDescription string) models.ResumeJudgment {
	if s.backend == nil {
		return models.ResumeJudgment{
			Score:   0,
			Summary: summaryNoBackend,
			Gaps:    []string{gapNoBackend},
		}
	}

	prompt := s.promptBuilder.BuildAnalysisPrompt(resumeText, jobDescription)

	response, err := s.backend.Invoke(ctx, prompt)
	if err != nil {
		log.Printf("❌ Judgment invocation failed (%s): %v\n", s.backend.Name(), err)
		return models.ResumeJudgment{
			Score:   0,
			Summary: fmt.Sprintf("Error during analysis: %s", err.Error()),
			Gaps:    []string{},
		}
	}

	judgment, err := decodeJudgment(response)
	if err != nil {
		log.Printf("❌ Unparseable judgment response (%s): %v\n", s.backend.Name(), err)
		// A malformed answer scores neutral 50, not 0
		return models.ResumeJudgment{
			Score:   50,
			Summary: summaryUnparseable,
			Gaps:    []string{gapAnalysisError},
		}
	}

	return judgment
}

// decodeJudgment is a best-effort decode, not a schema validator:
// markdown fences are stripped, missing keys fall back to defaults,
// wrong-typed keys are coerced, extra keys are ignored, and the gap
// list is capped. Only invalid JSON is an error.
func decodeJudgment(raw string) (models.ResumeJudgment, error) {
	cleaned := stripCodeFences(raw)

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return models.ResumeJudgment{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return models.ResumeJudgment{
		Score:   clampScore(coerceInt(payload["score"])),
		Summary: coerceString(payload["summary"], summaryMissing),
		Gaps:    coerceGaps(payload["gaps"]),
	}, nil
}

// stripCodeFences removes a leading markdown fence (optionally tagged
// as json) and a trailing fence, then trims whitespace.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	}
	if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-len("```")]
	}
	return strings.TrimSpace(s)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func coerceInt(value interface{}) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return parsed
		}
	}
	return 0
}

func coerceString(value interface{}, fallback string) string {
	switch v := value.(type) {
	case nil:
		return fallback
	case string:
		if v == "" {
			return fallback
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

func coerceGaps(value interface{}) []string {
	items, ok := value.([]interface{})
	if !ok {
		return []string{}
	}

	gaps := make([]string, 0, maxJudgmentGaps)
	for _, item := range items {
		if len(gaps) == maxJudgmentGaps {
			break
		}
		if s, ok := item.(string); ok {
			gaps = append(gaps, s)
		} else {
			gaps = append(gaps, fmt.Sprintf("%v", item))
		}
	}
	return gaps
}
