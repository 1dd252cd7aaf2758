package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplication_SetJudgmentRoundTrip(t *testing.T) {
	var app Application

	app.SetJudgment(ResumeJudgment{
		Score:   85,
		Summary: "Strong candidate.",
		Gaps:    []string{"No Go experience", "Short tenure"},
	})

	require.NotNil(t, app.AIScore)
	assert.Equal(t, 85, *app.AIScore)
	require.NotNil(t, app.AISummary)
	assert.Equal(t, "Strong candidate.", *app.AISummary)
	assert.Equal(t, []string{"No Go experience", "Short tenure"}, app.Gaps())
}

func TestApplication_GapsDefensiveDecoding(t *testing.T) {
	var app Application
	assert.Equal(t, []string{}, app.Gaps())

	broken := "{not json"
	app.AIGaps = &broken
	assert.Equal(t, []string{}, app.Gaps())

	empty := "[]"
	app.AIGaps = &empty
	assert.Equal(t, []string{}, app.Gaps())
}

func TestApplication_ScoreOrZero(t *testing.T) {
	var app Application
	assert.Equal(t, 0, app.ScoreOrZero())

	score := 73
	app.AIScore = &score
	assert.Equal(t, 73, app.ScoreOrZero())
}

func TestJob_FullDescription(t *testing.T) {
	job := Job{
		Title:        "Backend Engineer",
		Description:  "Build services.",
		Requirements: "Go, Postgres",
	}

	assert.Equal(t, "Backend Engineer\nBuild services.\nGo, Postgres", job.FullDescription())
}
