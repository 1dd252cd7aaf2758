package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"recruitai/backend/internal/models"
	"recruitai/backend/internal/repositories"
	"recruitai/backend/internal/services"
)

type ShortlistHandler struct {
	jobs      repositories.JobRepository
	shortlist services.ShortlistService
}

func NewShortlistHandler(jobs repositories.JobRepository, shortlist services.ShortlistService) *ShortlistHandler {
	return &ShortlistHandler{
		jobs:      jobs,
		shortlist: shortlist,
	}
}

// HandleShortlist handles POST /applications/job/:jobID/shortlist
func (h *ShortlistHandler) HandleShortlist(c *fiber.Ctx) error {
	user := CurrentUser(c)

	jobID, err := uuid.Parse(c.Params("jobID"))
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

	var req models.ShortlistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	result, err := h.shortlist.Shortlist(c.UserContext(), job, user, req.Threshold)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidThreshold),
			errors.Is(err, services.ErrNoApplications),
			errors.Is(err, services.ErrNotifierNotConfigured):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to shortlist applicants",
			})
		}
	}

	return c.JSON(result)
}
