package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/arowley/prepsprint/internal/contract"
	"github.com/arowley/prepsprint/internal/domain"
	"github.com/arowley/prepsprint/internal/planning"
	"github.com/arowley/prepsprint/internal/repository"
)

type planService struct {
	apps    repository.ApplicationRepo
	rounds  repository.RoundRepo
	sprints repository.SprintRepo
}

func NewPlanService(apps repository.ApplicationRepo, rounds repository.RoundRepo, sprints repository.SprintRepo) PlanService {
	return &planService{apps: apps, rounds: rounds, sprints: sprints}
}

// PlanForDate resolves what to study on a date. For a single application it
// uses that application's active sprint; without an application it scans
// every active sprint, each falling back to its own nearest day
// independently. A sprint that cannot resolve becomes a warning, never a
// failure for the others.
func (s *planService) PlanForDate(ctx context.Context, req contract.PlanRequest) (*contract.PlanResponse, error) {
	date := time.Now().UTC()
	if req.Date != nil {
		date = *req.Date
	}
	date = domain.DateOnly(date)

	if req.ApplicationID != "" {
		return s.planForApplication(ctx, req.ApplicationID, date)
	}
	return s.planAcrossApplications(ctx, date)
}

func (s *planService) planForApplication(ctx context.Context, applicationID string, date time.Time) (*contract.PlanResponse, error) {
	a, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		return nil, &contract.PlanError{
			Code:    contract.PlanErrApplicationNotFound,
			Message: fmt.Sprintf("application %s not found", applicationID),
		}
	}

	sprints, err := s.sprints.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	active := activeSprints(sprints)
	if len(active) == 0 {
		return nil, &contract.PlanError{
			Code:    contract.PlanErrSprintNotFound,
			Message: fmt.Sprintf("no active sprint for %s; schedule an interview to start one", a.Company),
		}
	}

	view, err := s.buildView(ctx, a, canonicalSprint(active), date)
	if err != nil {
		return nil, err
	}
	return &contract.PlanResponse{GeneratedFor: date, Plans: []contract.PlanView{*view}}, nil
}

func (s *planService) planAcrossApplications(ctx context.Context, date time.Time) (*contract.PlanResponse, error) {
	active, err := s.sprints.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, &contract.PlanError{
			Code:    contract.PlanErrNoActiveSprints,
			Message: "no active sprints; schedule an interview to start one",
		}
	}

	resp := &contract.PlanResponse{GeneratedFor: date}
	for _, sp := range active {
		a, err := s.apps.GetByID(ctx, sp.ApplicationID)
		if err != nil {
			resp.Warnings = append(resp.Warnings,
				fmt.Sprintf("sprint %s: application %s missing", sp.ID, sp.ApplicationID))
			continue
		}
		view, err := s.buildView(ctx, a, sp, date)
		if err != nil {
			resp.Warnings = append(resp.Warnings,
				fmt.Sprintf("%s: %s", a.Company, err.Error()))
			continue
		}
		resp.Plans = append(resp.Plans, *view)
	}

	sort.Slice(resp.Plans, func(i, j int) bool {
		if resp.Plans[i].Company != resp.Plans[j].Company {
			return resp.Plans[i].Company < resp.Plans[j].Company
		}
		return resp.Plans[i].SprintID < resp.Plans[j].SprintID
	})
	return resp, nil
}

func (s *planService) buildView(ctx context.Context, a *domain.Application, sp *domain.Sprint, date time.Time) (*contract.PlanView, error) {
	sel, err := planning.SelectPlanForDate(sp, date)
	if err != nil {
		return nil, err
	}

	// Struggled topics from round feedback surface as weak-spot flags on
	// matching task categories.
	if rounds, err := s.rounds.ListByApplication(ctx, a.ID); err == nil {
		a.Rounds = rounds
	}

	return &contract.PlanView{
		ApplicationID: a.ID,
		Company:       a.Company,
		Position:      a.Role,
		SprintID:      sp.ID,
		DayIndex:      sel.DayIndex,
		TotalDays:     sp.TotalDays,
		Date:          sel.Plan.Date,
		Focus:         sel.Plan.Focus,
		Blocks:        sel.Plan.Blocks,
		Guidance:      sel.Guidance,
		WeakSpots:     a.StruggledTopics(),
	}, nil
}
