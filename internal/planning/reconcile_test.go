package planning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/arowley/prepsprint/internal/domain"
)

func plainSprint(id string, status domain.SprintStatus, createdAt time.Time) *domain.Sprint {
	return &domain.Sprint{
		ID:        id,
		Status:    status,
		CreatedAt: createdAt,
		DailyPlans: []domain.DailyPlan{{
			Day:  1,
			Date: date("2025-03-10"),
			Blocks: []domain.Block{{
				Type:  domain.BlockMorning,
				Tasks: []domain.Task{{Description: "Study: Arrays"}},
			}},
		}},
	}
}

func withCompletedTask(s *domain.Sprint) *domain.Sprint {
	s.DailyPlans[0].Blocks[0].Tasks[0].Completed = true
	return s
}

func TestDecideReconciliation_NoExistingCreates(t *testing.T) {
	d := DecideReconciliation(nil, false)

	assert.Equal(t, ActionCreate, d.Action)
	assert.Empty(t, d.ExpireIDs)
	assert.False(t, d.Anomaly)
}

func TestDecideReconciliation_ActiveCanonicalNeedsConfirmation(t *testing.T) {
	// Even with zero tasks done, rewriting an active sprint waits for
	// confirmation.
	existing := []*domain.Sprint{plainSprint("s1", domain.SprintActive, date("2025-03-01"))}

	d := DecideReconciliation(existing, false)
	assert.Equal(t, ActionNeedsConfirmation, d.Action)
	assert.Equal(t, "s1", d.CanonicalID)
	assert.Empty(t, d.ExpireIDs)

	d = DecideReconciliation(existing, true)
	assert.Equal(t, ActionReplace, d.Action)
	assert.Equal(t, "s1", d.CanonicalID)
}

func TestDecideReconciliation_CompletedWorkNeedsConfirmation(t *testing.T) {
	existing := []*domain.Sprint{
		withCompletedTask(plainSprint("s1", domain.SprintActive, date("2025-03-01"))),
	}

	d := DecideReconciliation(existing, false)
	assert.Equal(t, ActionNeedsConfirmation, d.Action)
	assert.Equal(t, "s1", d.CanonicalID)

	d = DecideReconciliation(existing, true)
	assert.Equal(t, ActionReplace, d.Action)
}

func TestDecideReconciliation_InactiveCanonicalCreates(t *testing.T) {
	existing := []*domain.Sprint{
		plainSprint("s1", domain.SprintExpired, date("2025-03-01")),
		plainSprint("s2", domain.SprintCompleted, date("2025-03-05")),
	}

	d := DecideReconciliation(existing, false)

	assert.Equal(t, ActionCreate, d.Action)
	assert.Empty(t, d.CanonicalID)
	assert.Empty(t, d.ExpireIDs)
}

func TestDecideReconciliation_DuplicateActivesExpired(t *testing.T) {
	existing := []*domain.Sprint{
		plainSprint("s1", domain.SprintActive, date("2025-03-01")),
		plainSprint("s2", domain.SprintActive, date("2025-03-05")),
		plainSprint("s3", domain.SprintExpired, date("2025-03-06")),
	}

	d := DecideReconciliation(existing, true)

	assert.Equal(t, ActionReplace, d.Action)
	assert.Equal(t, "s2", d.CanonicalID, "newest active sprint is canonical")
	assert.Equal(t, []string{"s1"}, d.ExpireIDs)
	assert.True(t, d.Anomaly)
}

func TestDecideReconciliation_ExpiryAppliesEvenWhenConfirmationPending(t *testing.T) {
	existing := []*domain.Sprint{
		withCompletedTask(plainSprint("s1", domain.SprintActive, date("2025-03-05"))),
		plainSprint("s2", domain.SprintActive, date("2025-03-01")),
	}

	d := DecideReconciliation(existing, false)

	assert.Equal(t, ActionNeedsConfirmation, d.Action)
	assert.Equal(t, "s1", d.CanonicalID)
	assert.Equal(t, []string{"s2"}, d.ExpireIDs)
}

func TestDecideReconciliation_Deterministic(t *testing.T) {
	existing := []*domain.Sprint{
		plainSprint("s2", domain.SprintActive, date("2025-03-01")),
		plainSprint("s1", domain.SprintActive, date("2025-03-01")),
	}

	first := DecideReconciliation(existing, false)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, DecideReconciliation(existing, false))
	}
	assert.Equal(t, "s1", first.CanonicalID, "exact ties break on lexically smaller ID")
}
