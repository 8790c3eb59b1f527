package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arowley/prepsprint/internal/domain"
)

func TestAdvanceStreak_FirstCompletion(t *testing.T) {
	p := AdvanceStreak(domain.UserProgress{}, date("2025-03-10"))

	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, 1, p.LongestStreak)
	assert.Equal(t, 1, p.TotalTasksCompleted)
	require.NotNil(t, p.LastActiveDate)
	assert.True(t, domain.SameDay(*p.LastActiveDate, date("2025-03-10")))
}

func TestAdvanceStreak_SameDayCountsTaskNotStreak(t *testing.T) {
	p := AdvanceStreak(domain.UserProgress{}, date("2025-03-10"))
	p = AdvanceStreak(p, date("2025-03-10"))

	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, 2, p.TotalTasksCompleted)
}

func TestAdvanceStreak_ConsecutiveDayExtends(t *testing.T) {
	p := AdvanceStreak(domain.UserProgress{}, date("2025-03-10"))
	p = AdvanceStreak(p, date("2025-03-11"))

	assert.Equal(t, 2, p.CurrentStreak)
	assert.Equal(t, 2, p.LongestStreak)
}

func TestAdvanceStreak_GapResets(t *testing.T) {
	p := AdvanceStreak(domain.UserProgress{}, date("2025-03-10"))
	p = AdvanceStreak(p, date("2025-03-11"))
	p = AdvanceStreak(p, date("2025-03-16"))

	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, 2, p.LongestStreak, "longest streak survives the reset")
	assert.Equal(t, 3, p.TotalTasksCompleted)
}

func TestAdvanceStreak_LongestNeverDecreases(t *testing.T) {
	p := domain.UserProgress{LongestStreak: 9}
	p = AdvanceStreak(p, date("2025-03-10"))
	p = AdvanceStreak(p, date("2025-03-11"))

	assert.Equal(t, 2, p.CurrentStreak)
	assert.Equal(t, 9, p.LongestStreak)
}

func TestAdvanceStreak_IgnoresTimeOfDay(t *testing.T) {
	p := AdvanceStreak(domain.UserProgress{}, date("2025-03-10").Add(23*60*60*1e9))
	p = AdvanceStreak(p, date("2025-03-11"))

	assert.Equal(t, 2, p.CurrentStreak)
}

func TestRetreatCompletion_DecrementsWithFloor(t *testing.T) {
	p := domain.UserProgress{TotalTasksCompleted: 2, CurrentStreak: 3, LongestStreak: 3}

	p = RetreatCompletion(p)
	assert.Equal(t, 1, p.TotalTasksCompleted)
	assert.Equal(t, 3, p.CurrentStreak, "undo never rewinds the streak")

	p = RetreatCompletion(p)
	p = RetreatCompletion(p)
	assert.Equal(t, 0, p.TotalTasksCompleted)
}
