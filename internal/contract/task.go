package contract

import "github.com/arowley/prepsprint/internal/app"

type SetTaskRequest = app.SetTaskRequest

var NewSetTaskRequest = app.NewSetTaskRequest

type SetTaskResponse = app.SetTaskResponse

type TaskErrorCode = app.TaskErrorCode

const (
	TaskErrOutOfRange     TaskErrorCode = app.TaskErrOutOfRange
	TaskErrSprintNotFound TaskErrorCode = app.TaskErrSprintNotFound
)

type TaskError = app.TaskError

type SprintProgressView = app.SprintProgressView

type ProgressResponse = app.ProgressResponse
