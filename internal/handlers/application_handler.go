package handlers

import (
	"errors"
	"io"
	"log"
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"recruitai/backend/internal/models"
	"recruitai/backend/internal/repositories"
	"recruitai/backend/internal/services"
)

type ApplicationHandler struct {
	applications repositories.ApplicationRepository
	jobs         repositories.JobRepository
	storage      services.StorageService
	extractor    services.ResumeExtractor
	judge        services.JudgeService
	worker       services.JudgmentWorker
	maxFileSize  int64
}

func NewApplicationHandler(
	applications repositories.ApplicationRepository,
	jobs repositories.JobRepository,
	storage services.StorageService,
	extractor services.ResumeExtractor,
	judge services.JudgeService,
	worker services.JudgmentWorker,
	maxFileSize int64,
) *ApplicationHandler {
	return &ApplicationHandler{
		applications: applications,
		jobs:         jobs,
		storage:      storage,
		extractor:    extractor,
		judge:        judge,
		worker:       worker,
		maxFileSize:  maxFileSize,
	}
}

// HandleApply handles POST /applications. The resume is judged inline
// so the applicant's score is available as soon as the row exists.
func (h *ApplicationHandler) HandleApply(c *fiber.Ctx) error {
	user := CurrentUser(c)

	jobID, err := uuid.Parse(c.FormValue("job_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job_id format",
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

	if job.Status != models.JobStatusActive {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Job is not accepting applications",
		})
	}

	exists, err := h.applications.ExistsForJobAndApplicant(job.ID, user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check existing application",
		})
	}
	if exists {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "You have already applied to this job",
		})
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Resume file is required",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Resume file is too large",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to open uploaded file",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read uploaded file",
		})
	}

	_, location, err := h.storage.SaveResume(data, fileHeader.Filename)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only PDF resumes are accepted",
		})
	}

	resumeText := h.extractor.Extract(data)
	judgment := h.judge.Judge(c.UserContext(), resumeText, job.FullDescription())

	application := &models.Application{
		JobID:       job.ID,
		ApplicantID: user.ID,
		ResumeURL:   location,
		Status:      models.StatusPending,
	}
	application.SetJudgment(judgment)

	if err := h.applications.Create(application); err != nil {
		if delErr := h.storage.DeleteResume(location); delErr != nil {
			log.Printf("⚠️  Failed to clean up resume %s: %v\n", location, delErr)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create application",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(toApplicationResponse(application))
}

// HandleMyApplications handles GET /applications/my-applications
func (h *ApplicationHandler) HandleMyApplications(c *fiber.Ctx) error {
	user := CurrentUser(c)

	apps, err := h.applications.FindByApplicant(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list applications",
		})
	}

	responses := make([]models.ApplicationResponse, 0, len(apps))
	for i := range apps {
		responses = append(responses, toApplicationResponse(&apps[i]))
	}

	return c.JSON(responses)
}

// HandleJobApplications handles GET /applications/job/:jobID, ranked by
// judgment score for review.
func (h *ApplicationHandler) HandleJobApplications(c *fiber.Ctx) error {
	user := CurrentUser(c)

	jobID, err := uuid.Parse(c.Params("jobID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	if _, err := h.jobs.FindByIDAndOwner(jobID, user.ID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	apps, err := h.applications.FindByJob(jobID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list applications",
		})
	}

	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].ScoreOrZero() > apps[j].ScoreOrZero()
	})

	responses := make([]models.ApplicationResponse, 0, len(apps))
	for i := range apps {
		responses = append(responses, toApplicationResponse(&apps[i]))
	}

	return c.JSON(responses)
}

// HandleGetApplication handles GET /applications/:id. Visible to the
// applicant who owns it and to the HR user who owns the job.
func (h *ApplicationHandler) HandleGetApplication(c *fiber.Ctx) error {
	user := CurrentUser(c)

	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application ID format",
		})
	}

	app, err := h.applications.FindByID(appID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Application not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch application",
		})
	}

	if app.ApplicantID != user.ID && app.Job.HRID != user.ID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Application not found",
		})
	}

	return c.JSON(toApplicationResponse(app))
}

// HandleUpdateStatus handles PUT /applications/:id/status
func (h *ApplicationHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	user := CurrentUser(c)

	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application ID format",
		})
	}

	var req models.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	switch models.ApplicationStatus(req.Status) {
	case models.StatusPending, models.StatusReviewed, models.StatusShortlisted, models.StatusRejected, models.StatusHired:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status value",
		})
	}

	app, err := h.applications.FindByID(appID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Application not found",
		})
	}

	if app.Job.HRID != user.ID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Application not found",
		})
	}

	if err := h.applications.UpdateStatus(appID, models.ApplicationStatus(req.Status)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update status",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Status updated successfully",
		"status":  req.Status,
	})
}

// HandleReanalyze handles POST /applications/:id/reanalyze. The
// judgment re-run happens on the worker, so the response is a 202.
func (h *ApplicationHandler) HandleReanalyze(c *fiber.Ctx) error {
	user := CurrentUser(c)

	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application ID format",
		})
	}

	app, err := h.applications.FindByID(appID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Application not found",
		})
	}

	if app.Job.HRID != user.ID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Application not found",
		})
	}

	h.worker.Enqueue(app.ID)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Application queued for re-analysis",
		"id":      app.ID.String(),
	})
}

func toApplicationResponse(app *models.Application) models.ApplicationResponse {
	resp := models.ApplicationResponse{
		ID:          app.ID.String(),
		JobID:       app.JobID.String(),
		ApplicantID: app.ApplicantID.String(),
		ResumeURL:   app.ResumeURL,
		Status:      string(app.Status),
		AIScore:     app.AIScore,
		AISummary:   app.AISummary,
		AIGaps:      app.Gaps(),
		CreatedAt:   app.CreatedAt,
	}
	if app.Job.Title != "" {
		resp.JobTitle = app.Job.Title
	}
	if app.Applicant.FullName != "" {
		resp.ApplicantName = app.Applicant.FullName
		resp.ApplicantEmail = app.Applicant.Email
	}
	return resp
}
