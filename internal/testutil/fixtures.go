package testutil

import (
	"fmt"
	"time"

	"github.com/arowley/prepsprint/internal/domain"
	"github.com/google/uuid"
)

// Application options
type ApplicationOption func(*domain.Application)

func WithRoleType(r domain.RoleType) ApplicationOption {
	return func(a *domain.Application) {
		a.RoleType = r
	}
}

func WithApplicationStatus(s domain.ApplicationStatus) ApplicationOption {
	return func(a *domain.Application) {
		a.Status = s
	}
}

func WithInterviewDate(d time.Time) ApplicationOption {
	return func(a *domain.Application) {
		a.InterviewDate = &d
	}
}

func NewTestApplication(company string, opts ...ApplicationOption) *domain.Application {
	now := time.Now().UTC()
	a := &domain.Application{
		ID:        uuid.New().String(),
		Company:   company,
		Role:      "Software Engineer",
		RoleType:  domain.RoleBackend,
		Status:    domain.StatusApplied,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Round options
type RoundOption func(*domain.InterviewRound)

func WithRoundType(r domain.RoundType) RoundOption {
	return func(round *domain.InterviewRound) {
		round.RoundType = r
	}
}

func WithRoundFeedback(f *domain.Feedback) RoundOption {
	return func(round *domain.InterviewRound) {
		round.Feedback = f
	}
}

func WithQuestions(qs ...string) RoundOption {
	return func(round *domain.InterviewRound) {
		round.Questions = qs
	}
}

func NewTestRound(applicationID string, number int, opts ...RoundOption) *domain.InterviewRound {
	r := &domain.InterviewRound{
		ID:            uuid.New().String(),
		ApplicationID: applicationID,
		RoundNumber:   number,
		RoundType:     domain.RoundTechnical1,
		CreatedAt:     time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Sprint options
type SprintOption func(*domain.Sprint)

func WithSprintStatus(s domain.SprintStatus) SprintOption {
	return func(sp *domain.Sprint) {
		sp.Status = s
	}
}

func WithSprintCreatedAt(t time.Time) SprintOption {
	return func(sp *domain.Sprint) {
		sp.CreatedAt = t
		sp.UpdatedAt = t
	}
}

func WithSprintID(id string) SprintOption {
	return func(sp *domain.Sprint) {
		sp.ID = id
	}
}

// WithPlanDates replaces the generated daily plans with one single-block,
// single-task plan per date, in the given order.
func WithPlanDates(dates ...time.Time) SprintOption {
	return func(sp *domain.Sprint) {
		sp.DailyPlans = nil
		for i, d := range dates {
			sp.DailyPlans = append(sp.DailyPlans, domain.DailyPlan{
				Day:   i + 1,
				Date:  d,
				Focus: domain.FocusDSA,
				Blocks: []domain.Block{{
					ID:       uuid.New().String(),
					Type:     domain.BlockMorning,
					Duration: "90 min",
					Tasks: []domain.Task{{
						ID:          uuid.New().String(),
						Description: fmt.Sprintf("Study block %d", i+1),
						Category:    "arrays",
					}},
				}},
			})
		}
		sp.TotalDays = len(sp.DailyPlans)
	}
}

// NewTestSprint builds a two-day sprint starting today with a morning block
// of two tasks and an evening block of one task per day.
func NewTestSprint(applicationID string, opts ...SprintOption) *domain.Sprint {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	s := &domain.Sprint{
		ID:            uuid.New().String(),
		ApplicationID: applicationID,
		InterviewDate: today.AddDate(0, 0, 2),
		RoleType:      domain.RoleBackend,
		Status:        domain.SprintActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for day := 1; day <= 2; day++ {
		s.DailyPlans = append(s.DailyPlans, domain.DailyPlan{
			Day:   day,
			Date:  today.AddDate(0, 0, day-1),
			Focus: domain.FocusDSA,
			Blocks: []domain.Block{
				{
					ID:       uuid.New().String(),
					Type:     domain.BlockMorning,
					Duration: "90 min",
					Tasks: []domain.Task{
						{ID: uuid.New().String(), Description: fmt.Sprintf("Day %d study", day), Category: "arrays"},
						{ID: uuid.New().String(), Description: fmt.Sprintf("Day %d drill", day), Category: "strings"},
					},
				},
				{
					ID:       uuid.New().String(),
					Type:     domain.BlockEvening,
					Duration: "45 min",
					Tasks: []domain.Task{
						{ID: uuid.New().String(), Description: fmt.Sprintf("Day %d practice", day), Category: "practice"},
					},
				},
			},
		})
	}
	s.TotalDays = len(s.DailyPlans)
	for _, opt := range opts {
		opt(s)
	}
	return s
}
