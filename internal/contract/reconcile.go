package contract

import "github.com/arowley/prepsprint/internal/app"

type RegenerateRequest = app.RegenerateRequest

var NewRegenerateRequest = app.NewRegenerateRequest

type RegenerateOutcome = app.RegenerateOutcome

const (
	OutcomeCreated  RegenerateOutcome = app.OutcomeCreated
	OutcomeReplaced RegenerateOutcome = app.OutcomeReplaced
)

type RegenerateResponse = app.RegenerateResponse

type ReconcileErrorCode = app.ReconcileErrorCode

const (
	ReconcileErrConfirmationRequired ReconcileErrorCode = app.ReconcileErrConfirmationRequired
	ReconcileErrApplicationNotFound  ReconcileErrorCode = app.ReconcileErrApplicationNotFound
	ReconcileErrMissingInterview     ReconcileErrorCode = app.ReconcileErrMissingInterview
	ReconcileErrUnknownRole          ReconcileErrorCode = app.ReconcileErrUnknownRole
	ReconcileErrStoreFailure         ReconcileErrorCode = app.ReconcileErrStoreFailure
)

type ReconcileError = app.ReconcileError
