package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
	JobStatusDraft  JobStatus = "draft"
)

type Job struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title        string    `gorm:"type:text;not null" json:"title"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Requirements string    `gorm:"type:text;not null" json:"requirements"`
	Location     string    `gorm:"type:text" json:"location"`
	SalaryRange  string    `gorm:"type:text" json:"salary_range"`
	Status       JobStatus `gorm:"type:text;not null;default:'active'" json:"status"`
	HRID         uuid.UUID `gorm:"type:uuid;not null" json:"hr_id"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	HRUser User `gorm:"foreignKey:HRID" json:"-"`
}

func (Job) TableName() string {
	return "jobs"
}

// FullDescription is the text handed to the judgment engine.
func (j *Job) FullDescription() string {
	return fmt.Sprintf("%s\n%s\n%s", j.Title, j.Description, j.Requirements)
}
