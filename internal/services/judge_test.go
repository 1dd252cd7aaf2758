package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitai/backend/internal/models"
)

// stubBackend returns a canned response and records the prompt it was
// handed.
type stubBackend struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubBackend) Name() string { return "stub" }

func (s *stubBackend) Invoke(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	return s.response, s.err
}

func TestJudge_NoBackend(t *testing.T) {
	judge := NewJudgeService(nil)

	result := judge.Judge(context.Background(), "resume text", "job description")

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, "AI analysis unavailable. Please configure GROQ_API_KEY or GOOGLE_API_KEY.", result.Summary)
	assert.Equal(t, []string{"No API configured"}, result.Gaps)
}

func TestJudge_InvocationError(t *testing.T) {
	backend := &stubBackend{err: errors.New("rate limited")}
	judge := NewJudgeService(backend)

	result := judge.Judge(context.Background(), "resume", "job")

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, "Error during analysis: rate limited", result.Summary)
	assert.Empty(t, result.Gaps)
	assert.NotNil(t, result.Gaps)
}

func TestJudge_UnparseableResponse(t *testing.T) {
	backend := &stubBackend{response: "I think this candidate is great!"}
	judge := NewJudgeService(backend)

	result := judge.Judge(context.Background(), "resume", "job")

	assert.Equal(t, 50, result.Score)
	assert.Equal(t, "Unable to parse AI response. Please try again.", result.Summary)
	assert.Equal(t, []string{"Analysis error"}, result.Gaps)
}

func TestJudge_WellFormedResponse(t *testing.T) {
	backend := &stubBackend{
		response: `{"score": 85, "summary": "Strong fit.", "gaps": ["No Kubernetes experience"]}`,
	}
	judge := NewJudgeService(backend)

	result := judge.Judge(context.Background(), "resume", "job")

	assert.Equal(t, 85, result.Score)
	assert.Equal(t, "Strong fit.", result.Summary)
	assert.Equal(t, []string{"No Kubernetes experience"}, result.Gaps)
}

func TestJudge_FencedResponsesDecodeLikePlain(t *testing.T) {
	plain := `{"score": 70, "summary": "Decent.", "gaps": []}`

	variants := map[string]string{
		"plain":        plain,
		"fence":        "```\n" + plain + "\n```",
		"tagged fence": "```json\n" + plain + "\n```",
		"padded":       "\n\n  ```json\n" + plain + "\n```  \n",
	}

	expected := models.ResumeJudgment{Score: 70, Summary: "Decent.", Gaps: []string{}}
	for name, raw := range variants {
		t.Run(name, func(t *testing.T) {
			backend := &stubBackend{response: raw}
			judge := NewJudgeService(backend)

			result := judge.Judge(context.Background(), "resume", "job")
			assert.Equal(t, expected, result)
		})
	}
}

func TestJudge_PromptTruncatesLongResume(t *testing.T) {
	backend := &stubBackend{response: `{"score": 10, "summary": "x", "gaps": []}`}
	judge := NewJudgeService(backend)

	longResume := strings.Repeat("a", 15000)
	judge.Judge(context.Background(), longResume, "job")

	require.NotEmpty(t, backend.lastPrompt)
	assert.Contains(t, backend.lastPrompt, strings.Repeat("a", 10000))
	assert.NotContains(t, backend.lastPrompt, strings.Repeat("a", 10001))
}

func TestDecodeJudgment_Defaults(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected models.ResumeJudgment
	}{
		{
			name:     "empty object",
			raw:      `{}`,
			expected: models.ResumeJudgment{Score: 0, Summary: "Analysis not available", Gaps: []string{}},
		},
		{
			name:     "missing gaps",
			raw:      `{"score": 42, "summary": "ok"}`,
			expected: models.ResumeJudgment{Score: 42, Summary: "ok", Gaps: []string{}},
		},
		{
			name:     "empty summary falls back",
			raw:      `{"score": 42, "summary": "", "gaps": []}`,
			expected: models.ResumeJudgment{Score: 42, Summary: "Analysis not available", Gaps: []string{}},
		},
		{
			name:     "extra keys ignored",
			raw:      `{"score": 42, "summary": "ok", "gaps": [], "confidence": 0.9, "model": "x"}`,
			expected: models.ResumeJudgment{Score: 42, Summary: "ok", Gaps: []string{}},
		},
		{
			name:     "string score coerced",
			raw:      `{"score": "67", "summary": "ok", "gaps": []}`,
			expected: models.ResumeJudgment{Score: 67, Summary: "ok", Gaps: []string{}},
		},
		{
			name:     "unparseable score defaults to zero",
			raw:      `{"score": "high", "summary": "ok", "gaps": []}`,
			expected: models.ResumeJudgment{Score: 0, Summary: "ok", Gaps: []string{}},
		},
		{
			name:     "negative score clamped",
			raw:      `{"score": -5, "summary": "ok", "gaps": []}`,
			expected: models.ResumeJudgment{Score: 0, Summary: "ok", Gaps: []string{}},
		},
		{
			name:     "oversized score clamped",
			raw:      `{"score": 250, "summary": "ok", "gaps": []}`,
			expected: models.ResumeJudgment{Score: 100, Summary: "ok", Gaps: []string{}},
		},
		{
			name:     "gaps capped at three",
			raw:      `{"score": 10, "summary": "ok", "gaps": ["a", "b", "c", "d", "e"]}`,
			expected: models.ResumeJudgment{Score: 10, Summary: "ok", Gaps: []string{"a", "b", "c"}},
		},
		{
			name:     "non-string gaps stringified",
			raw:      `{"score": 10, "summary": "ok", "gaps": ["a", 2]}`,
			expected: models.ResumeJudgment{Score: 10, Summary: "ok", Gaps: []string{"a", "2"}},
		},
		{
			name:     "non-array gaps dropped",
			raw:      `{"score": 10, "summary": "ok", "gaps": "none"}`,
			expected: models.ResumeJudgment{Score: 10, Summary: "ok", Gaps: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := decodeJudgment(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDecodeJudgment_InvalidJSON(t *testing.T) {
	_, err := decodeJudgment("not json at all")
	assert.Error(t, err)

	_, err = decodeJudgment(`{"score": 10,`)
	assert.Error(t, err)
}
