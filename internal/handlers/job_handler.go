package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"recruitai/backend/internal/models"
	"recruitai/backend/internal/repositories"
)

type JobHandler struct {
	jobs     repositories.JobRepository
	validate *validator.Validate
}

func NewJobHandler(jobs repositories.JobRepository) *JobHandler {
	return &JobHandler{
		jobs:     jobs,
		validate: validator.New(),
	}
}

// HandleListActive handles GET /jobs
func (h *JobHandler) HandleListActive(c *fiber.Ctx) error {
	jobs, err := h.jobs.FindActive()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list jobs",
		})
	}

	responses := make([]models.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, toJobResponse(&jobs[i]))
	}

	return c.JSON(responses)
}

// HandleMyPostings handles GET /jobs/my-postings
func (h *JobHandler) HandleMyPostings(c *fiber.Ctx) error {
	user := CurrentUser(c)

	jobs, err := h.jobs.FindByOwner(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list jobs",
		})
	}

	responses := make([]models.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, toJobResponse(&jobs[i]))
	}

	return c.JSON(responses)
}

// HandleGetJob handles GET /jobs/:id
func (h *JobHandler) HandleGetJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	job, err := h.jobs.FindByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Job not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch job",
		})
	}

	return c.JSON(toJobResponse(job))
}

// HandleCreateJob handles POST /jobs
func (h *JobHandler) HandleCreateJob(c *fiber.Ctx) error {
	user := CurrentUser(c)

	var req models.JobCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	job := &models.Job{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		SalaryRange:  req.SalaryRange,
		Status:       models.JobStatusActive,
		HRID:         user.ID,
	}

	if err := h.jobs.Create(job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create job",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(toJobResponse(job))
}

// HandleUpdateJob handles PUT /jobs/:id
func (h *JobHandler) HandleUpdateJob(c *fiber.Ctx) error {
	user := CurrentUser(c)

	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	job, err := h.jobs.FindByIDAndOwner(jobID, user.ID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	var req models.JobUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if req.Title != "" {
		job.Title = req.Title
	}
	if req.Description != "" {
		job.Description = req.Description
	}
	if req.Requirements != "" {
		job.Requirements = req.Requirements
	}
	if req.Location != "" {
		job.Location = req.Location
	}
	if req.SalaryRange != "" {
		job.SalaryRange = req.SalaryRange
	}
	if req.Status != "" {
		job.Status = models.JobStatus(req.Status)
	}

	if err := h.jobs.Update(job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update job",
		})
	}

	return c.JSON(toJobResponse(job))
}

// HandleDeleteJob handles DELETE /jobs/:id
func (h *JobHandler) HandleDeleteJob(c *fiber.Ctx) error {
	user := CurrentUser(c)

	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	job, err := h.jobs.FindByIDAndOwner(jobID, user.ID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	if err := h.jobs.Delete(job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete job",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Job deleted successfully",
	})
}

func toJobResponse(job *models.Job) models.JobResponse {
	resp := models.JobResponse{
		ID:           job.ID.String(),
		Title:        job.Title,
		Description:  job.Description,
		Requirements: job.Requirements,
		Location:     job.Location,
		SalaryRange:  job.SalaryRange,
		Status:       string(job.Status),
		HRID:         job.HRID.String(),
		CreatedAt:    job.CreatedAt,
	}
	if job.HRUser.FullName != "" {
		resp.HRName = job.HRUser.FullName
	}
	return resp
}
