package planning

import (
	"errors"
	"fmt"
	"time"

	"github.com/arowley/prepsprint/internal/domain"
)

const dateLayout = "2006-01-02"

// Selection is the selector's result and the only shape presentation layers
// consume. Guidance is empty on an exact date match; otherwise it explains
// why the returned plan differs from the requested date.
type Selection struct {
	Plan     *domain.DailyPlan
	DayIndex int
	Guidance string
}

// ErrNoPlans marks a sprint with no daily plans at all; distinct from an
// invalid requested date.
var ErrNoPlans = errors.New("sprint has no daily plans")

// ErrNoValidDates marks a sprint whose stored plan dates are all invalid.
var ErrNoValidDates = errors.New("sprint has no valid plan dates")

// SelectPlanForDate resolves which daily plan to show for a target date.
//
// Resolution order: exact calendar-day match; otherwise the nearest future
// plan; otherwise the final plan. The fallback never looks outside the given
// sprint, so scanning several sprints stays independent per sprint.
func SelectPlanForDate(s *domain.Sprint, target time.Time) (*Selection, error) {
	if len(s.DailyPlans) == 0 {
		return nil, ErrNoPlans
	}

	day := domain.DateOnly(target)

	var nextIdx, lastIdx = -1, -1
	for i := range s.DailyPlans {
		plan := &s.DailyPlans[i]
		if plan.Date.IsZero() {
			continue
		}
		if domain.SameDay(plan.Date, day) {
			return &Selection{Plan: plan, DayIndex: plan.Day}, nil
		}
		if plan.Date.After(day) && (nextIdx < 0 || plan.Date.Before(s.DailyPlans[nextIdx].Date)) {
			nextIdx = i
		}
		if lastIdx < 0 || plan.Date.After(s.DailyPlans[lastIdx].Date) {
			lastIdx = i
		}
	}

	if nextIdx >= 0 {
		plan := &s.DailyPlans[nextIdx]
		return &Selection{
			Plan:     plan,
			DayIndex: plan.Day,
			Guidance: fmt.Sprintf("No plan for %s; showing the next planned day, %s.",
				day.Format(dateLayout), plan.Date.Format(dateLayout)),
		}, nil
	}

	if lastIdx >= 0 {
		plan := &s.DailyPlans[lastIdx]
		return &Selection{
			Plan:     plan,
			DayIndex: plan.Day,
			Guidance: fmt.Sprintf("%s is past this sprint; showing %s, the final planned day.",
				day.Format(dateLayout), plan.Date.Format(dateLayout)),
		}, nil
	}

	// Every plan date failed to parse when loaded.
	return nil, ErrNoValidDates
}
