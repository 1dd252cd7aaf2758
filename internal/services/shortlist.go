package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"

	"recruitai/backend/internal/models"
)

// Input-rejection errors. These are the only shortlisting failures that
// cross the pipeline boundary; notification failures degrade into the
// response flags instead.
var (
	ErrInvalidThreshold      = errors.New("threshold must be greater than 0")
	ErrNoApplications        = errors.New("no applications found for this job")
	ErrNotifierNotConfigured = errors.New("email not configured: set SMTP_EMAIL and SMTP_PASSWORD")
)

// shortlistStore is the slice of the application repository the ranking
// engine needs.
type shortlistStore interface {
	FindByJob(jobID uuid.UUID) ([]models.Application, error)
	UpdateStatusBatch(ids []uuid.UUID, status models.ApplicationStatus) error
}

type ShortlistService interface {
	Shortlist(ctx context.Context, job *models.Job, operator *models.User, threshold int) (*models.ShortlistResponse, error)
}

type shortlistService struct {
	store    shortlistStore
	notifier Notifier

	mu       sync.Mutex
	jobLocks map[uuid.UUID]*sync.Mutex
}

func NewShortlistService(store shortlistStore, notifier Notifier) ShortlistService {
	return &shortlistService{
		store:    store,
		notifier: notifier,
		jobLocks: make(map[uuid.UUID]*sync.Mutex),
	}
}

// lockJob serializes shortlisting per job so two concurrent calls
// cannot double-process the same candidates.
func (s *shortlistService) lockJob(jobID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.jobLocks[jobID]
	if !ok {
		lock = &sync.Mutex{}
		s.jobLocks[jobID] = lock
	}
	return lock
}

// Shortlist ranks every application for the job by judgment score,
// marks the top candidates shortlisted, and dispatches notifications.
// Requesting more candidates than exist shortlists everyone.
func (s *shortlistService) Shortlist(ctx context.Context, job *models.Job, operator *models.User, threshold int) (*models.ShortlistResponse, error) {
	if threshold <= 0 {
		return nil, ErrInvalidThreshold
	}

	lock := s.lockJob(job.ID)
	lock.Lock()
	defer lock.Unlock()

	apps, err := s.store.FindByJob(job.ID)
	if err != nil {
		return nil, err
	}

	totalApplicants := len(apps)
	if totalApplicants == 0 {
		return nil, ErrNoApplications
	}

	// Reject before any mutation: shortlisting without the ability to
	// notify is worse than failing outright.
	if !s.notifier.Configured() {
		return nil, ErrNotifierNotConfigured
	}

	// Stable descending sort; a missing score ranks as 0 and ties keep
	// submission order.
	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].ScoreOrZero() > apps[j].ScoreOrZero()
	})

	count := threshold
	if count > totalApplicants {
		count = totalApplicants
	}
	selected := apps[:count]

	selectedApplicants := make([]models.ShortlistedApplicant, 0, count)
	selectedIDs := make([]uuid.UUID, 0, count)
	candidateEmailsSent := true

	for _, app := range selected {
		selectedIDs = append(selectedIDs, app.ID)
		selectedApplicants = append(selectedApplicants, models.ShortlistedApplicant{
			ID:        app.ID.String(),
			Name:      app.Applicant.FullName,
			Email:     app.Applicant.Email,
			Score:     app.ScoreOrZero(),
			ResumeURL: app.ResumeURL,
		})

		// At-least-attempt policy: one failed invitation never aborts
		// the batch or rolls back the selection.
		if err := s.notifier.SendInterviewInvitation(app.Applicant.Email, app.Applicant.FullName, job.Title); err != nil {
			log.Printf("⚠️  Failed to send invitation to %s: %v\n", app.Applicant.Email, err)
			candidateEmailsSent = false
		}
	}

	// Single batch commit after the loop. A retry after a failed commit
	// re-sends the invitations above.
	if err := s.store.UpdateStatusBatch(selectedIDs, models.StatusShortlisted); err != nil {
		return nil, err
	}

	operatorEmailSent := true
	if err := s.notifier.SendOperatorSummary(operator.Email, operator.FullName, job.Title, selectedApplicants, totalApplicants); err != nil {
		log.Printf("⚠️  Failed to send summary to %s: %v\n", operator.Email, err)
		operatorEmailSent = false
	}

	return &models.ShortlistResponse{
		Success:             true,
		Message:             fmt.Sprintf("Successfully shortlisted %d applicants", len(selectedApplicants)),
		TotalApplicants:     totalApplicants,
		ShortlistedCount:    len(selectedApplicants),
		SelectedApplicants:  selectedApplicants,
		CandidateEmailsSent: candidateEmailsSent,
		OperatorEmailSent:   operatorEmailSent,
	}, nil
}
