package app

import (
	"time"

	"github.com/arowley/prepsprint/internal/domain"
)

type SprintProgressView struct {
	ApplicationID  string
	Company        string
	Position       string
	SprintID       string
	InterviewDate  *time.Time
	TasksCompleted int
	TasksTotal     int
}

type ProgressResponse struct {
	Progress      domain.UserProgress
	ActiveSprints []SprintProgressView
}
