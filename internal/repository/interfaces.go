package repository

import (
	"context"

	"github.com/arowley/prepsprint/internal/domain"
)

type ApplicationRepo interface {
	Create(ctx context.Context, a *domain.Application) error
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	List(ctx context.Context) ([]*domain.Application, error)
	Update(ctx context.Context, a *domain.Application) error
	Delete(ctx context.Context, id string) error
}

type RoundRepo interface {
	Create(ctx context.Context, r *domain.InterviewRound) error
	GetByID(ctx context.Context, id string) (*domain.InterviewRound, error)
	ListByApplication(ctx context.Context, applicationID string) ([]domain.InterviewRound, error)
	Update(ctx context.Context, r *domain.InterviewRound) error
}

// SprintRepo persists the sprint aggregate. Plans, blocks and tasks are
// written whole at creation; afterwards only SetTaskCompleted mutates the
// aggregate body (field-scoped, never a whole-record rewrite).
type SprintRepo interface {
	Create(ctx context.Context, s *domain.Sprint) error
	GetByID(ctx context.Context, id string) (*domain.Sprint, error)
	ListByApplication(ctx context.Context, applicationID string) ([]*domain.Sprint, error)
	ListActive(ctx context.Context) ([]*domain.Sprint, error)
	// ReplacePlans updates the sprint header in place (same id) and swaps
	// its daily plans for the given set. Prior task state is discarded.
	ReplacePlans(ctx context.Context, s *domain.Sprint) error
	SetStatus(ctx context.Context, id string, status domain.SprintStatus) error
	SetTaskCompleted(ctx context.Context, taskID string, completed bool) error
	Delete(ctx context.Context, id string) error
}

type ProgressRepo interface {
	// Get returns the singleton aggregate, or a zero-valued aggregate when
	// no completion event has ever been recorded.
	Get(ctx context.Context) (*domain.UserProgress, error)
	Upsert(ctx context.Context, p *domain.UserProgress) error
}
