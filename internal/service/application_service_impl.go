package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/arowley/prepsprint/internal/db"
	"github.com/arowley/prepsprint/internal/domain"
	"github.com/arowley/prepsprint/internal/repository"
)

type applicationService struct {
	apps    repository.ApplicationRepo
	rounds  repository.RoundRepo
	sprints repository.SprintRepo
	uow     db.UnitOfWork
}

func NewApplicationService(
	apps repository.ApplicationRepo,
	rounds repository.RoundRepo,
	sprints repository.SprintRepo,
	uow db.UnitOfWork,
) ApplicationService {
	return &applicationService{apps: apps, rounds: rounds, sprints: sprints, uow: uow}
}

func (s *applicationService) Create(ctx context.Context, a *domain.Application) error {
	if a.Company == "" {
		return fmt.Errorf("company is required")
	}
	if a.Role == "" {
		return fmt.Errorf("role is required")
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Status == "" {
		a.Status = domain.StatusApplied
	}
	if !domain.ValidApplicationStatuses[string(a.Status)] {
		return fmt.Errorf("invalid application status: %s", a.Status)
	}
	if a.RoleType != "" && !domain.ValidRoleTypes[string(a.RoleType)] {
		return fmt.Errorf("invalid role type: %s", a.RoleType)
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	return s.apps.Create(ctx, a)
}

// GetByID returns the application with its interview rounds attached.
func (s *applicationService) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	a, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rounds, err := s.rounds.ListByApplication(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading rounds for application %s: %w", id, err)
	}
	a.Rounds = rounds
	return a, nil
}

func (s *applicationService) List(ctx context.Context) ([]*domain.Application, error) {
	return s.apps.List(ctx)
}

func (s *applicationService) Update(ctx context.Context, a *domain.Application) error {
	if !domain.ValidApplicationStatuses[string(a.Status)] {
		return fmt.Errorf("invalid application status: %s", a.Status)
	}
	a.UpdatedAt = time.Now().UTC()
	return s.apps.Update(ctx, a)
}

// SetStatus moves the application through its pipeline. A rejection also
// expires any active sprints for the application in the same transaction;
// there is nothing left to prepare for.
func (s *applicationService) SetStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	if !domain.ValidApplicationStatuses[string(status)] {
		return fmt.Errorf("invalid application status: %s", status)
	}

	a, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return err
	}
	a.Status = status
	a.UpdatedAt = time.Now().UTC()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txApps := repository.NewSQLiteApplicationRepo(tx)
		if err := txApps.Update(ctx, a); err != nil {
			return err
		}
		if status != domain.StatusRejected {
			return nil
		}
		txSprints := repository.NewSQLiteSprintRepo(tx)
		sprints, err := txSprints.ListByApplication(ctx, id)
		if err != nil {
			return err
		}
		for _, sp := range sprints {
			if sp.Status != domain.SprintActive {
				continue
			}
			if err := txSprints.SetStatus(ctx, sp.ID, domain.SprintExpired); err != nil {
				return err
			}
		}
		return nil
	})
}

// ScheduleInterview records the interview date and target role. It does not
// build the sprint itself; callers follow up with SprintService.Regenerate.
func (s *applicationService) ScheduleInterview(ctx context.Context, id string, date time.Time, role domain.RoleType) error {
	if !domain.ValidRoleTypes[string(role)] {
		return fmt.Errorf("invalid role type: %s", role)
	}

	a, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return err
	}
	day := domain.DateOnly(date)
	a.InterviewDate = &day
	a.RoleType = role
	a.Status = domain.StatusInterview
	a.UpdatedAt = time.Now().UTC()
	return s.apps.Update(ctx, a)
}

// Delete removes the application aggregate. Sprints are deleted explicitly
// in the same transaction so databases created before sprints carried a
// foreign key cannot leave active ones orphaned; rounds and plan rows go
// via cascades.
func (s *applicationService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSprints := repository.NewSQLiteSprintRepo(tx)
		sprints, err := txSprints.ListByApplication(ctx, id)
		if err != nil {
			return err
		}
		for _, sp := range sprints {
			if err := txSprints.Delete(ctx, sp.ID); err != nil {
				return err
			}
		}
		return repository.NewSQLiteApplicationRepo(tx).Delete(ctx, id)
	})
}

func (s *applicationService) AddRound(ctx context.Context, applicationID string, r *domain.InterviewRound) error {
	a, err := s.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	r.ApplicationID = applicationID
	if r.RoundNumber == 0 {
		r.RoundNumber = a.NextRoundNumber()
	}
	r.CreatedAt = time.Now().UTC()
	return s.rounds.Create(ctx, r)
}

func (s *applicationService) RecordFeedback(ctx context.Context, roundID string, fb domain.Feedback) error {
	if fb.Rating < 1 || fb.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", fb.Rating)
	}
	r, err := s.rounds.GetByID(ctx, roundID)
	if err != nil {
		return err
	}
	r.Feedback = &fb
	return s.rounds.Update(ctx, r)
}
