package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recruitai/backend/internal/models"
)

type JobRepository interface {
	Create(job *models.Job) error
	FindByID(id uuid.UUID) (*models.Job, error)
	FindByIDAndOwner(id, hrID uuid.UUID) (*models.Job, error)
	FindActive() ([]models.Job, error)
	FindByOwner(hrID uuid.UUID) ([]models.Job, error)
	Update(job *models.Job) error
	Delete(job *models.Job) error
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// Create implements JobRepository.
func (r *jobRepository) Create(job *models.Job) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// FindByID implements JobRepository.
func (r *jobRepository) FindByID(id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := r.db.Preload("HRUser").Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	return &job, nil
}

// FindByIDAndOwner implements JobRepository.
func (r *jobRepository) FindByIDAndOwner(id, hrID uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := r.db.Where("id = ? AND hr_id = ?", id, hrID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	return &job, nil
}

// FindActive implements JobRepository.
func (r *jobRepository) FindActive() ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.
		Preload("HRUser").
		Where("status = ?", models.JobStatusActive).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// FindByOwner implements JobRepository.
func (r *jobRepository) FindByOwner(hrID uuid.UUID) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.
		Where("hr_id = ?", hrID).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list postings: %w", err)
	}
	return jobs, nil
}

// Update implements JobRepository.
func (r *jobRepository) Update(job *models.Job) error {
	if err := r.db.Save(job).Error; err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	return nil
}

// Delete implements JobRepository.
func (r *jobRepository) Delete(job *models.Job) error {
	if err := r.db.Delete(job).Error; err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}
