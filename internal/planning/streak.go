package planning

import (
	"time"

	"github.com/arowley/prepsprint/internal/domain"
)

// AdvanceStreak folds one task-completion event into the progress
// aggregate. The streak compares calendar days only: a repeat completion
// on the same day counts the task but leaves the streak alone, the next
// consecutive day extends it, and any gap resets it to one.
func AdvanceStreak(p domain.UserProgress, eventDate time.Time) domain.UserProgress {
	day := domain.DateOnly(eventDate)

	switch {
	case p.LastActiveDate == nil:
		p.CurrentStreak = 1
	case domain.SameDay(*p.LastActiveDate, day):
		// Streak already credited for this day.
	case domain.DaysBetween(*p.LastActiveDate, day) == 1:
		p.CurrentStreak++
	default:
		p.CurrentStreak = 1
	}

	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}
	if p.LastActiveDate == nil || day.After(*p.LastActiveDate) {
		p.LastActiveDate = &day
	}
	p.TotalTasksCompleted++
	return p
}

// RetreatCompletion undoes one completion's contribution to the total.
// Streak history stays as it was; undoing a task never rewrites past days.
func RetreatCompletion(p domain.UserProgress) domain.UserProgress {
	if p.TotalTasksCompleted > 0 {
		p.TotalTasksCompleted--
	}
	return p
}
