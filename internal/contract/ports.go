package contract

import "github.com/arowley/prepsprint/internal/app"

type RegenerateUseCase = app.RegenerateUseCase

type PlanUseCase = app.PlanUseCase

type TaskUseCase = app.TaskUseCase

type ProgressUseCase = app.ProgressUseCase
