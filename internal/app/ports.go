package app

import "context"

type RegenerateUseCase interface {
	Regenerate(ctx context.Context, req RegenerateRequest) (*RegenerateResponse, error)
}

type PlanUseCase interface {
	PlanForDate(ctx context.Context, req PlanRequest) (*PlanResponse, error)
}

type TaskUseCase interface {
	SetTaskDone(ctx context.Context, req SetTaskRequest) (*SetTaskResponse, error)
}

type ProgressUseCase interface {
	GetProgress(ctx context.Context) (*ProgressResponse, error)
}
