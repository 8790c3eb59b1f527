package app

import (
	"time"

	"github.com/arowley/prepsprint/internal/domain"
)

type RegenerateRequest struct {
	ApplicationID string
	Confirmed     bool
	Now           *time.Time
}

func NewRegenerateRequest(applicationID string) RegenerateRequest {
	return RegenerateRequest{ApplicationID: applicationID}
}

type RegenerateOutcome string

const (
	OutcomeCreated  RegenerateOutcome = "created"
	OutcomeReplaced RegenerateOutcome = "replaced"
)

type RegenerateResponse struct {
	Sprint           *domain.Sprint
	Outcome          RegenerateOutcome
	ExpiredSprintIDs []string
	TotalDays        int
	Warnings         []string
}

type ReconcileErrorCode string

const (
	ReconcileErrConfirmationRequired ReconcileErrorCode = "CONFIRMATION_REQUIRED"
	ReconcileErrApplicationNotFound  ReconcileErrorCode = "APPLICATION_NOT_FOUND"
	ReconcileErrMissingInterview     ReconcileErrorCode = "MISSING_INTERVIEW_DETAILS"
	ReconcileErrUnknownRole          ReconcileErrorCode = "UNKNOWN_ROLE"
	ReconcileErrStoreFailure         ReconcileErrorCode = "STORE_FAILURE"
)

// ReconcileError carries the completed-task count when confirmation is
// required so prompts can say exactly what a replace would discard.
type ReconcileError struct {
	Code           ReconcileErrorCode
	Message        string
	CompletedTasks int
}

func (e *ReconcileError) Error() string {
	return string(e.Code) + ": " + e.Message
}
