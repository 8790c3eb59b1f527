package app

import (
	"time"

	"github.com/arowley/prepsprint/internal/domain"
)

// SetTaskRequest addresses a task by its 1-indexed position: day, block
// within the day, task within the block. The sprint is either named
// directly by SprintID or found as the application's active sprint.
type SetTaskRequest struct {
	ApplicationID string
	SprintID      string
	Day           int
	Block         int
	Task          int
	Done          bool
	Now           *time.Time
}

func NewSetTaskRequest(applicationID string, day, block, task int) SetTaskRequest {
	return SetTaskRequest{
		ApplicationID: applicationID,
		Day:           day,
		Block:         block,
		Task:          task,
		Done:          true,
	}
}

type SetTaskResponse struct {
	// Changed is false when the task was already in the requested state;
	// progress is untouched in that case.
	Changed     bool
	Description string
	DayComplete bool
	Progress    domain.UserProgress
}

type TaskErrorCode string

const (
	TaskErrOutOfRange     TaskErrorCode = "OUT_OF_RANGE"
	TaskErrSprintNotFound TaskErrorCode = "SPRINT_NOT_FOUND"
)

type TaskError struct {
	Code    TaskErrorCode
	Message string
}

func (e *TaskError) Error() string {
	return string(e.Code) + ": " + e.Message
}
