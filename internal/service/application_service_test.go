package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arowley/prepsprint/internal/domain"
	"github.com/arowley/prepsprint/internal/testutil"
)

func TestApplicationService_CreateDefaults(t *testing.T) {
	env := newTestEnv(t)
	svc := env.applicationService()
	ctx := context.Background()

	a := &domain.Application{Company: "Initech", Role: "Backend Engineer"}
	require.NoError(t, svc.Create(ctx, a))

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, domain.StatusApplied, a.Status)
	assert.False(t, a.CreatedAt.IsZero())

	stored, err := svc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Initech", stored.Company)
}

func TestApplicationService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := env.applicationService()
	ctx := context.Background()

	assert.Error(t, svc.Create(ctx, &domain.Application{Role: "Backend Engineer"}))
	assert.Error(t, svc.Create(ctx, &domain.Application{Company: "Initech"}))
	assert.Error(t, svc.Create(ctx, &domain.Application{
		Company: "Initech", Role: "Backend Engineer", Status: domain.ApplicationStatus("ghosted"),
	}))
	assert.Error(t, svc.Create(ctx, &domain.Application{
		Company: "Initech", Role: "Backend Engineer", RoleType: domain.RoleType("astronaut"),
	}))
}

func TestApplicationService_ScheduleInterview(t *testing.T) {
	env := newTestEnv(t)
	svc := env.applicationService()
	ctx := context.Background()

	a := &domain.Application{Company: "Initech", Role: "Backend Engineer"}
	require.NoError(t, svc.Create(ctx, a))

	when := date("2025-03-15").Add(14 * time.Hour)
	require.NoError(t, svc.ScheduleInterview(ctx, a.ID, when, domain.RoleBackend))

	stored, err := svc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInterview, stored.Status)
	require.NotNil(t, stored.InterviewDate)
	assert.True(t, domain.SameDay(*stored.InterviewDate, date("2025-03-15")),
		"time of day is dropped; sprints count calendar days")

	assert.Error(t, svc.ScheduleInterview(ctx, a.ID, when, domain.RoleType("astronaut")))
}

func TestApplicationService_RejectionExpiresActiveSprints(t *testing.T) {
	env := newTestEnv(t)
	svc := env.applicationService()
	ctx := context.Background()

	a := &domain.Application{Company: "Initech", Role: "Backend Engineer"}
	require.NoError(t, svc.Create(ctx, a))
	sp := testutil.NewTestSprint(a.ID)
	require.NoError(t, env.sprints.Create(ctx, sp))

	require.NoError(t, svc.SetStatus(ctx, a.ID, domain.StatusRejected))

	stored, err := env.sprints.GetByID(ctx, sp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SprintExpired, stored.Status)

	app, err := svc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, app.Status)
}

func TestApplicationService_OfferKeepsSprintActive(t *testing.T) {
	env := newTestEnv(t)
	svc := env.applicationService()
	ctx := context.Background()

	a := &domain.Application{Company: "Initech", Role: "Backend Engineer"}
	require.NoError(t, svc.Create(ctx, a))
	sp := testutil.NewTestSprint(a.ID)
	require.NoError(t, env.sprints.Create(ctx, sp))

	require.NoError(t, svc.SetStatus(ctx, a.ID, domain.StatusOffer))

	stored, err := env.sprints.GetByID(ctx, sp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SprintActive, stored.Status)
}

func TestApplicationService_RoundsAndFeedback(t *testing.T) {
	env := newTestEnv(t)
	svc := env.applicationService()
	ctx := context.Background()

	a := &domain.Application{Company: "Initech", Role: "Backend Engineer"}
	require.NoError(t, svc.Create(ctx, a))

	r1 := &domain.InterviewRound{RoundType: domain.RoundHR}
	require.NoError(t, svc.AddRound(ctx, a.ID, r1))
	assert.Equal(t, 1, r1.RoundNumber)

	r2 := &domain.InterviewRound{RoundType: domain.RoundTechnical1, Questions: []string{"Design a URL shortener"}}
	require.NoError(t, svc.AddRound(ctx, a.ID, r2))
	assert.Equal(t, 2, r2.RoundNumber, "round numbers count up from the highest existing")

	err := svc.RecordFeedback(ctx, r1.ID, domain.Feedback{Rating: 9})
	assert.Error(t, err, "rating is bounded 1 to 5")

	fb := domain.Feedback{
		Rating:          3,
		Cons:            []string{"slow on follow-ups"},
		StruggledTopics: []string{"graphs"},
	}
	require.NoError(t, svc.RecordFeedback(ctx, r1.ID, fb))

	stored, err := svc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, stored.Rounds, 2)
	require.NotNil(t, stored.Rounds[0].Feedback)
	assert.Equal(t, 3, stored.Rounds[0].Feedback.Rating)
	assert.Equal(t, []string{"graphs"}, stored.StruggledTopics())
}

func TestApplicationService_DeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	svc := env.applicationService()
	ctx := context.Background()

	a := &domain.Application{Company: "Initech", Role: "Backend Engineer"}
	require.NoError(t, svc.Create(ctx, a))
	require.NoError(t, svc.AddRound(ctx, a.ID, &domain.InterviewRound{RoundType: domain.RoundHR}))
	sp := testutil.NewTestSprint(a.ID)
	require.NoError(t, env.sprints.Create(ctx, sp))

	require.NoError(t, svc.Delete(ctx, a.ID))

	_, err := svc.GetByID(ctx, a.ID)
	assert.Error(t, err)
	_, err = env.sprints.GetByID(ctx, sp.ID)
	assert.Error(t, err)

	active, err := env.sprints.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active, "no orphaned active sprint survives the delete")

	rounds, err := env.rounds.ListByApplication(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, rounds)
}
