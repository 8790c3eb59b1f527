package domain

import "time"

// UserProgress is the single per-user streak aggregate. It is recomputed on
// each completion event, never recreated.
type UserProgress struct {
	CurrentStreak       int
	LongestStreak       int
	LastActiveDate      *time.Time
	TotalTasksCompleted int
	UpdatedAt           time.Time
}
