package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arowley/prepsprint/internal/contract"
	"github.com/arowley/prepsprint/internal/db"
	"github.com/arowley/prepsprint/internal/domain"
	"github.com/arowley/prepsprint/internal/generation"
	"github.com/arowley/prepsprint/internal/planning"
	"github.com/arowley/prepsprint/internal/repository"
)

type sprintService struct {
	apps     repository.ApplicationRepo
	sprints  repository.SprintRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	newID    func() string

	// locks serializes regeneration per application; concurrent runs for
	// different applications proceed independently.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewSprintService(
	apps repository.ApplicationRepo,
	sprints repository.SprintRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) SprintService {
	return &sprintService{
		apps:     apps,
		sprints:  sprints,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		newID:    func() string { return uuid.New().String() },
		locks:    make(map[string]*sync.Mutex),
	}
}

func (s *sprintService) appLock(applicationID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	mu, ok := s.locks[applicationID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[applicationID] = mu
	}
	return mu
}

// Regenerate builds a fresh sprint from the application's interview date and
// role, then reconciles it against whatever sprints already exist. Repeated
// calls over unchanged inputs converge on the same stored state.
func (s *sprintService) Regenerate(ctx context.Context, req contract.RegenerateRequest) (*contract.RegenerateResponse, error) {
	started := time.Now()
	resp, err := s.regenerate(ctx, req)

	fields := map[string]any{"application_id": req.ApplicationID}
	if resp != nil {
		fields["outcome"] = string(resp.Outcome)
		fields["total_days"] = resp.TotalDays
	}
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "sprint.regenerate",
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: started,
	})
	return resp, err
}

func (s *sprintService) regenerate(ctx context.Context, req contract.RegenerateRequest) (*contract.RegenerateResponse, error) {
	mu := s.appLock(req.ApplicationID)
	mu.Lock()
	defer mu.Unlock()

	now := time.Now().UTC()
	if req.Now != nil {
		now = req.Now.UTC()
	}

	a, err := s.apps.GetByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, &contract.ReconcileError{
			Code:    contract.ReconcileErrApplicationNotFound,
			Message: fmt.Sprintf("application %s not found", req.ApplicationID),
		}
	}
	if a.InterviewDate == nil {
		return nil, &contract.ReconcileError{
			Code:    contract.ReconcileErrMissingInterview,
			Message: "application has no scheduled interview date",
		}
	}

	candidate, err := generation.Generate(a.ID, *a.InterviewDate, a.RoleType, now, s.newID)
	if err != nil {
		if errors.Is(err, generation.ErrUnknownRole) {
			return nil, &contract.ReconcileError{
				Code:    contract.ReconcileErrUnknownRole,
				Message: fmt.Sprintf("no preparation template for role type %q", a.RoleType),
			}
		}
		return nil, err
	}

	existing, err := s.sprints.ListByApplication(ctx, a.ID)
	if err != nil {
		return nil, storeFailure("loading sprints", err)
	}

	decision := planning.DecideReconciliation(existing, req.Confirmed)

	if decision.Action == planning.ActionNeedsConfirmation {
		// Duplicate actives are still expired; that repair is not part of
		// the destructive replace awaiting confirmation.
		if len(decision.ExpireIDs) > 0 {
			if err := s.expire(ctx, decision.ExpireIDs); err != nil {
				return nil, storeFailure("expiring duplicate sprints", err)
			}
		}
		canonical := sprintByID(existing, decision.CanonicalID)
		done := 0
		if canonical != nil {
			done, _ = canonical.TaskCounts()
		}
		msg := "an active sprint already exists; regenerating replaces it"
		if done > 0 {
			msg = fmt.Sprintf("active sprint has %d completed tasks; regenerating discards them", done)
		}
		return nil, &contract.ReconcileError{
			Code:           contract.ReconcileErrConfirmationRequired,
			Message:        msg,
			CompletedTasks: done,
		}
	}

	outcome := contract.OutcomeCreated
	if decision.Action == planning.ActionReplace {
		// The canonical sprint keeps its identity but is otherwise rebuilt;
		// CreatedAt reflects this regeneration, not the original run.
		outcome = contract.OutcomeReplaced
		candidate.ID = decision.CanonicalID
		candidate.UpdatedAt = now
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSprints := repository.NewSQLiteSprintRepo(tx)
		for _, id := range decision.ExpireIDs {
			if err := txSprints.SetStatus(ctx, id, domain.SprintExpired); err != nil {
				return err
			}
		}
		if decision.Action == planning.ActionReplace {
			return txSprints.ReplacePlans(ctx, candidate)
		}
		return txSprints.Create(ctx, candidate)
	})
	if err != nil {
		return nil, storeFailure("storing sprint", err)
	}

	resp := &contract.RegenerateResponse{
		Sprint:           candidate,
		Outcome:          outcome,
		ExpiredSprintIDs: decision.ExpireIDs,
		TotalDays:        candidate.TotalDays,
	}
	if decision.Anomaly {
		resp.Warnings = append(resp.Warnings,
			fmt.Sprintf("found %d extra active sprints for this application; expired them", len(decision.ExpireIDs)))
	}
	return resp, nil
}

func (s *sprintService) expire(ctx context.Context, ids []string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSprints := repository.NewSQLiteSprintRepo(tx)
		for _, id := range ids {
			if err := txSprints.SetStatus(ctx, id, domain.SprintExpired); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *sprintService) GetByID(ctx context.Context, id string) (*domain.Sprint, error) {
	return s.sprints.GetByID(ctx, id)
}

// ActiveForApplication returns the application's single active sprint, or
// an error when none exists. With the anomaly of several actives present it
// returns the one reconciliation would treat as canonical.
func (s *sprintService) ActiveForApplication(ctx context.Context, applicationID string) (*domain.Sprint, error) {
	sprints, err := s.sprints.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	active := activeSprints(sprints)
	if len(active) == 0 {
		return nil, fmt.Errorf("no active sprint for application %s", applicationID)
	}
	return canonicalSprint(active), nil
}

func (s *sprintService) ListActive(ctx context.Context) ([]*domain.Sprint, error) {
	return s.sprints.ListActive(ctx)
}

func storeFailure(op string, err error) *contract.ReconcileError {
	return &contract.ReconcileError{
		Code:    contract.ReconcileErrStoreFailure,
		Message: op + ": " + err.Error(),
	}
}

func sprintByID(sprints []*domain.Sprint, id string) *domain.Sprint {
	for _, sp := range sprints {
		if sp.ID == id {
			return sp
		}
	}
	return nil
}
