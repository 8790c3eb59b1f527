package contract

import "github.com/arowley/prepsprint/internal/app"

type PlanRequest = app.PlanRequest

var NewPlanRequest = app.NewPlanRequest

type PlanView = app.PlanView

type PlanResponse = app.PlanResponse

type PlanErrorCode = app.PlanErrorCode

const (
	PlanErrNoActiveSprints     PlanErrorCode = app.PlanErrNoActiveSprints
	PlanErrSprintNotFound      PlanErrorCode = app.PlanErrSprintNotFound
	PlanErrApplicationNotFound PlanErrorCode = app.PlanErrApplicationNotFound
)

type PlanError = app.PlanError
