package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleHR        UserRole = "hr"
	RoleApplicant UserRole = "applicant"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email        string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`
	FullName     string    `gorm:"type:text;not null" json:"full_name"`
	Role         UserRole  `gorm:"type:text;not null" json:"role"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
