package models

import "time"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=hr applicant"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

type JobCreateRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	Requirements string `json:"requirements" validate:"required"`
	Location     string `json:"location"`
	SalaryRange  string `json:"salary_range"`
}

type JobUpdateRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Location     string `json:"location"`
	SalaryRange  string `json:"salary_range"`
	Status       string `json:"status" validate:"omitempty,oneof=active closed draft"`
}

type JobResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	Location     string    `json:"location"`
	SalaryRange  string    `json:"salary_range"`
	Status       string    `json:"status"`
	HRID         string    `json:"hr_id"`
	HRName       string    `json:"hr_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=pending reviewed shortlisted rejected hired"`
}

type ApplicationResponse struct {
	ID             string    `json:"id"`
	JobID          string    `json:"job_id"`
	ApplicantID    string    `json:"applicant_id"`
	ResumeURL      string    `json:"resume_url"`
	Status         string    `json:"status"`
	AIScore        *int      `json:"ai_score"`
	AISummary      *string   `json:"ai_summary"`
	AIGaps         []string  `json:"ai_gaps"`
	CreatedAt      time.Time `json:"created_at"`
	JobTitle       string    `json:"job_title,omitempty"`
	ApplicantName  string    `json:"applicant_name,omitempty"`
	ApplicantEmail string    `json:"applicant_email,omitempty"`
}

type ShortlistRequest struct {
	Threshold int `json:"threshold" validate:"required"`
}

type ShortlistedApplicant struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Score     int    `json:"score"`
	ResumeURL string `json:"resume_url"`
}

// ShortlistResponse is the ephemeral result of one shortlisting
// invocation. The two email flags are independent: a candidate
// invitation failure never aborts the batch, and an operator summary
// failure never touches the committed status transitions.
type ShortlistResponse struct {
	Success             bool                   `json:"success"`
	Message             string                 `json:"message"`
	TotalApplicants     int                    `json:"total_applicants"`
	ShortlistedCount    int                    `json:"shortlisted_count"`
	SelectedApplicants  []ShortlistedApplicant `json:"selected_applicants"`
	CandidateEmailsSent bool                   `json:"emails_sent"`
	OperatorEmailSent   bool                   `json:"hr_email_sent"`
}
