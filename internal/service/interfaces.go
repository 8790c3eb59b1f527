package service

import (
	"context"
	"time"

	"github.com/arowley/prepsprint/internal/contract"
	"github.com/arowley/prepsprint/internal/domain"
)

type ApplicationService interface {
	Create(ctx context.Context, a *domain.Application) error
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	List(ctx context.Context) ([]*domain.Application, error)
	Update(ctx context.Context, a *domain.Application) error
	SetStatus(ctx context.Context, id string, status domain.ApplicationStatus) error
	ScheduleInterview(ctx context.Context, id string, date time.Time, role domain.RoleType) error
	Delete(ctx context.Context, id string) error
	AddRound(ctx context.Context, applicationID string, r *domain.InterviewRound) error
	RecordFeedback(ctx context.Context, roundID string, fb domain.Feedback) error
}

type SprintService interface {
	contract.RegenerateUseCase
	GetByID(ctx context.Context, id string) (*domain.Sprint, error)
	ActiveForApplication(ctx context.Context, applicationID string) (*domain.Sprint, error)
	ListActive(ctx context.Context) ([]*domain.Sprint, error)
}

type PlanService interface {
	contract.PlanUseCase
}

type ProgressService interface {
	contract.TaskUseCase
	contract.ProgressUseCase
}
