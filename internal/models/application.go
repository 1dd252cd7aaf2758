package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusReviewed    ApplicationStatus = "reviewed"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusRejected    ApplicationStatus = "rejected"
	StatusHired       ApplicationStatus = "hired"
)

// ResumeJudgment is the structured fitness assessment of one resume
// against one job description. A score of 0 together with a sentinel
// gap entry ("No API configured", "Analysis error") marks a degraded
// judgment produced by a recovery path rather than a model response.
type ResumeJudgment struct {
	Score   int      `json:"score"`
	Summary string   `json:"summary"`
	Gaps    []string `json:"gaps"`
}

type Application struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"job_id"`
	ApplicantID uuid.UUID         `gorm:"type:uuid;not null;index" json:"applicant_id"`
	ResumeURL   string            `gorm:"type:text" json:"resume_url"`
	Status      ApplicationStatus `gorm:"type:text;not null;default:'pending'" json:"status"`

	// AI judgment results
	AIScore   *int    `gorm:"type:integer" json:"ai_score,omitempty"`
	AISummary *string `gorm:"type:text" json:"ai_summary,omitempty"`
	AIGaps    *string `gorm:"type:text" json:"-"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Job       Job  `gorm:"foreignKey:JobID" json:"-"`
	Applicant User `gorm:"foreignKey:ApplicantID" json:"-"`
}

func (Application) TableName() string {
	return "applications"
}

// ScoreOrZero treats a missing judgment score as 0 for ranking purposes.
func (a *Application) ScoreOrZero() int {
	if a.AIScore == nil {
		return 0
	}
	return *a.AIScore
}

// Gaps decodes the persisted gap list. Unreadable columns decode to an
// empty list rather than an error; the column is always written by
// SetJudgment.
func (a *Application) Gaps() []string {
	if a.AIGaps == nil {
		return []string{}
	}
	var gaps []string
	if err := json.Unmarshal([]byte(*a.AIGaps), &gaps); err != nil {
		return []string{}
	}
	return gaps
}

// SetJudgment stores a judgment on the application, gaps as a JSON text
// column.
func (a *Application) SetJudgment(j ResumeJudgment) {
	score := j.Score
	summary := j.Summary
	raw, err := json.Marshal(j.Gaps)
	if err != nil {
		raw = []byte("[]")
	}
	encoded := string(raw)

	a.AIScore = &score
	a.AISummary = &summary
	a.AIGaps = &encoded
}
