package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitai/backend/internal/models"
)

type fakeShortlistStore struct {
	apps       []models.Application
	findErr    error
	updatedIDs []uuid.UUID
	updated    models.ApplicationStatus
	updateErr  error
}

func (f *fakeShortlistStore) FindByJob(_ uuid.UUID) ([]models.Application, error) {
	return f.apps, f.findErr
}

func (f *fakeShortlistStore) UpdateStatusBatch(ids []uuid.UUID, status models.ApplicationStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedIDs = ids
	f.updated = status
	return nil
}

type fakeNotifier struct {
	configured      bool
	invitations     []string
	failInvitations map[string]bool
	summaries       int
	failSummary     bool
}

func (f *fakeNotifier) Configured() bool { return f.configured }

func (f *fakeNotifier) SendInterviewInvitation(email, _, _ string) error {
	if f.failInvitations[email] {
		return errors.New("smtp refused")
	}
	f.invitations = append(f.invitations, email)
	return nil
}

func (f *fakeNotifier) SendOperatorSummary(_, _, _ string, _ []models.ShortlistedApplicant, _ int) error {
	if f.failSummary {
		return errors.New("smtp refused")
	}
	f.summaries++
	return nil
}

func testJob() *models.Job {
	return &models.Job{ID: uuid.New(), Title: "Backend Engineer"}
}

func testOperator() *models.User {
	return &models.User{ID: uuid.New(), Email: "hr@example.com", FullName: "HR Person"}
}

func applicationWithScore(score *int, email string) models.Application {
	return models.Application{
		ID:      uuid.New(),
		AIScore: score,
		Applicant: models.User{
			ID:       uuid.New(),
			Email:    email,
			FullName: "Candidate " + email,
		},
	}
}

func intPtr(v int) *int { return &v }

func TestShortlist_RejectsNonPositiveThreshold(t *testing.T) {
	store := &fakeShortlistStore{apps: []models.Application{applicationWithScore(intPtr(80), "a@x.com")}}
	notifier := &fakeNotifier{configured: true}
	svc := NewShortlistService(store, notifier)

	for _, threshold := range []int{0, -1, -100} {
		t.Run(fmt.Sprintf("threshold %d", threshold), func(t *testing.T) {
			_, err := svc.Shortlist(context.Background(), testJob(), testOperator(), threshold)
			assert.ErrorIs(t, err, ErrInvalidThreshold)
		})
	}

	// No mutation and no emails on rejection
	assert.Empty(t, store.updatedIDs)
	assert.Empty(t, notifier.invitations)
}

func TestShortlist_RejectsEmptyApplicationSet(t *testing.T) {
	store := &fakeShortlistStore{}
	svc := NewShortlistService(store, &fakeNotifier{configured: true})

	_, err := svc.Shortlist(context.Background(), testJob(), testOperator(), 5)
	assert.ErrorIs(t, err, ErrNoApplications)
}

func TestShortlist_RejectsUnconfiguredNotifierBeforeMutation(t *testing.T) {
	store := &fakeShortlistStore{apps: []models.Application{applicationWithScore(intPtr(80), "a@x.com")}}
	notifier := &fakeNotifier{configured: false}
	svc := NewShortlistService(store, notifier)

	_, err := svc.Shortlist(context.Background(), testJob(), testOperator(), 1)

	assert.ErrorIs(t, err, ErrNotifierNotConfigured)
	assert.Empty(t, store.updatedIDs)
	assert.Empty(t, notifier.invitations)
}

func TestShortlist_RanksByScoreWithNilAsZeroAndStableTies(t *testing.T) {
	first90 := applicationWithScore(intPtr(90), "first90@x.com")
	second90 := applicationWithScore(intPtr(90), "second90@x.com")
	apps := []models.Application{
		applicationWithScore(intPtr(30), "thirty@x.com"),
		applicationWithScore(nil, "unjudged@x.com"),
		first90,
		second90,
		applicationWithScore(intPtr(10), "ten@x.com"),
	}

	store := &fakeShortlistStore{apps: apps}
	notifier := &fakeNotifier{configured: true}
	svc := NewShortlistService(store, notifier)

	result, err := svc.Shortlist(context.Background(), testJob(), testOperator(), 2)
	require.NoError(t, err)

	require.Len(t, result.SelectedApplicants, 2)
	// Equal scores keep submission order
	assert.Equal(t, first90.ID.String(), result.SelectedApplicants[0].ID)
	assert.Equal(t, second90.ID.String(), result.SelectedApplicants[1].ID)

	assert.Equal(t, 5, result.TotalApplicants)
	assert.Equal(t, 2, result.ShortlistedCount)
	assert.Equal(t, []uuid.UUID{first90.ID, second90.ID}, store.updatedIDs)
	assert.Equal(t, models.StatusShortlisted, store.updated)
	assert.True(t, result.CandidateEmailsSent)
	assert.True(t, result.OperatorEmailSent)
	assert.Equal(t, 1, notifier.summaries)
}

func TestShortlist_ThresholdAboveTotalSelectsEveryone(t *testing.T) {
	apps := []models.Application{
		applicationWithScore(intPtr(50), "a@x.com"),
		applicationWithScore(intPtr(40), "b@x.com"),
	}
	store := &fakeShortlistStore{apps: apps}
	svc := NewShortlistService(store, &fakeNotifier{configured: true})

	result, err := svc.Shortlist(context.Background(), testJob(), testOperator(), 100)
	require.NoError(t, err)

	assert.Equal(t, 2, result.ShortlistedCount)
	assert.Len(t, store.updatedIDs, 2)
}

func TestShortlist_InvitationFailureContinuesBatch(t *testing.T) {
	apps := []models.Application{
		applicationWithScore(intPtr(90), "ok@x.com"),
		applicationWithScore(intPtr(80), "broken@x.com"),
		applicationWithScore(intPtr(70), "also-ok@x.com"),
	}
	store := &fakeShortlistStore{apps: apps}
	notifier := &fakeNotifier{
		configured:      true,
		failInvitations: map[string]bool{"broken@x.com": true},
	}
	svc := NewShortlistService(store, notifier)

	result, err := svc.Shortlist(context.Background(), testJob(), testOperator(), 3)
	require.NoError(t, err)

	// All three are still committed, the flag just degrades
	assert.Equal(t, 3, result.ShortlistedCount)
	assert.Len(t, store.updatedIDs, 3)
	assert.False(t, result.CandidateEmailsSent)
	assert.True(t, result.OperatorEmailSent)
	assert.Equal(t, []string{"ok@x.com", "also-ok@x.com"}, notifier.invitations)
}

func TestShortlist_OperatorSummaryFailureDegradesFlagOnly(t *testing.T) {
	apps := []models.Application{applicationWithScore(intPtr(90), "a@x.com")}
	store := &fakeShortlistStore{apps: apps}
	notifier := &fakeNotifier{configured: true, failSummary: true}
	svc := NewShortlistService(store, notifier)

	result, err := svc.Shortlist(context.Background(), testJob(), testOperator(), 1)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, result.CandidateEmailsSent)
	assert.False(t, result.OperatorEmailSent)
	assert.Len(t, store.updatedIDs, 1)
}

func TestShortlist_StoreErrorPropagates(t *testing.T) {
	store := &fakeShortlistStore{findErr: errors.New("db down")}
	svc := NewShortlistService(store, &fakeNotifier{configured: true})

	_, err := svc.Shortlist(context.Background(), testJob(), testOperator(), 1)
	assert.Error(t, err)
}
