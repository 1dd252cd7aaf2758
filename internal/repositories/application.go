package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recruitai/backend/internal/models"
)

type ApplicationRepository interface {
	Create(app *models.Application) error
	FindByID(id uuid.UUID) (*models.Application, error)
	FindByJob(jobID uuid.UUID) ([]models.Application, error)
	FindByApplicant(applicantID uuid.UUID) ([]models.Application, error)
	ExistsForJobAndApplicant(jobID, applicantID uuid.UUID) (bool, error)
	UpdateStatus(id uuid.UUID, status models.ApplicationStatus) error
	UpdateStatusBatch(ids []uuid.UUID, status models.ApplicationStatus) error
	UpdateJudgment(id uuid.UUID, judgment models.ResumeJudgment) error
	FindMissingJudgments(limit int) ([]models.Application, error)
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create implements ApplicationRepository.
func (r *applicationRepository) Create(app *models.Application) error {
	if err := r.db.Create(app).Error; err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// FindByID implements ApplicationRepository.
func (r *applicationRepository) FindByID(id uuid.UUID) (*models.Application, error) {
	var app models.Application
	err := r.db.
		Preload("Job").
		Preload("Applicant").
		Where("id = ?", id).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return &app, nil
}

// FindByJob returns all applications for a job in submission order. The
// ranking engine sorts in memory so that stable-sort tie behavior is
// tied to this retrieval order.
func (r *applicationRepository) FindByJob(jobID uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.
		Preload("Applicant").
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// FindByApplicant implements ApplicationRepository.
func (r *applicationRepository) FindByApplicant(applicantID uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.
		Preload("Job").
		Where("applicant_id = ?", applicantID).
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// ExistsForJobAndApplicant implements ApplicationRepository.
func (r *applicationRepository) ExistsForJobAndApplicant(jobID, applicantID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Application{}).
		Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check application: %w", err)
	}
	return count > 0, nil
}

// UpdateStatus implements ApplicationRepository.
func (r *applicationRepository) UpdateStatus(id uuid.UUID, status models.ApplicationStatus) error {
	result := r.db.Model(&models.Application{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// UpdateStatusBatch commits one status transition for the whole selected
// set in a single statement.
func (r *applicationRepository) UpdateStatusBatch(ids []uuid.UUID, status models.ApplicationStatus) error {
	if len(ids) == 0 {
		return nil
	}

	result := r.db.Model(&models.Application{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update statuses: %w", result.Error)
	}

	return nil
}

// UpdateJudgment implements ApplicationRepository.
func (r *applicationRepository) UpdateJudgment(id uuid.UUID, judgment models.ResumeJudgment) error {
	var app models.Application
	app.SetJudgment(judgment)

	result := r.db.Model(&models.Application{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"ai_score":   app.AIScore,
			"ai_summary": app.AISummary,
			"ai_gaps":    app.AIGaps,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update judgment: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// FindMissingJudgments returns applications that never received a
// judgment, oldest first. Degraded judgments still carry a score, so
// only rows interrupted before the engine ran show up here.
func (r *applicationRepository) FindMissingJudgments(limit int) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.
		Where("ai_score IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find unjudged applications: %w", err)
	}
	return apps, nil
}
