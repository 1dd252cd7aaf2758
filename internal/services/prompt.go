package services

import "fmt"

// maxResumePromptChars bounds the resume text embedded in the prompt so
// request size stays bounded regardless of document length. Truncation
// is silent.
const maxResumePromptChars = 10000

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildAnalysisPrompt creates the resume-vs-job-description prompt. The
// backend is directed to answer with a single JSON object and nothing
// else.
func (pb *PromptBuilder) BuildAnalysisPrompt(resumeText, jobDescription string) string {
	if len(resumeText) > maxResumePromptChars {
		resumeText = resumeText[:maxResumePromptChars]
	}

	return fmt.Sprintf(`Analyze the following Resume against the Job Description.

JOB DESCRIPTION:
%s

RESUME:
%s

Provide your analysis in the following JSON format ONLY (no additional text):
{
    "score": <number between 0-100>,
    "summary": "<2-3 sentence summary of candidate's fit>",
    "gaps": ["<gap 1>", "<gap 2>", "<gap 3>"]
}

Be strict and objective in scoring. Only list the top 3 most critical skill/experience gaps.`,
		jobDescription, resumeText)
}
