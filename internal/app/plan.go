package app

import (
	"time"

	"github.com/arowley/prepsprint/internal/domain"
)

type PlanRequest struct {
	// ApplicationID empty means every application with an active sprint.
	ApplicationID string
	Date          *time.Time
}

func NewPlanRequest() PlanRequest {
	return PlanRequest{}
}

type PlanView struct {
	ApplicationID string
	Company       string
	Position      string
	SprintID      string
	DayIndex      int
	TotalDays     int
	Date          time.Time
	Focus         domain.FocusArea
	Blocks        []domain.Block
	Guidance      string
	// WeakSpots holds struggled topics recorded in round feedback; tasks
	// whose category matches one are flagged in output.
	WeakSpots []string
}

type PlanResponse struct {
	GeneratedFor time.Time
	Plans        []PlanView
	Warnings     []string
}

type PlanErrorCode string

const (
	PlanErrNoActiveSprints     PlanErrorCode = "NO_ACTIVE_SPRINTS"
	PlanErrSprintNotFound      PlanErrorCode = "SPRINT_NOT_FOUND"
	PlanErrApplicationNotFound PlanErrorCode = "APPLICATION_NOT_FOUND"
)

type PlanError struct {
	Code    PlanErrorCode
	Message string
}

func (e *PlanError) Error() string {
	return string(e.Code) + ": " + e.Message
}
