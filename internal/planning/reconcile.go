package planning

import (
	"sort"

	"github.com/arowley/prepsprint/internal/domain"
)

// Action tells the caller how to apply a regenerated sprint against the
// sprints already stored for the same application.
type Action string

const (
	// ActionCreate inserts the candidate as a brand new sprint.
	ActionCreate Action = "create"
	// ActionReplace rewrites the canonical sprint's plans in place,
	// keeping its identity.
	ActionReplace Action = "replace"
	// ActionNeedsConfirmation means an active sprint would be rewritten;
	// the caller must confirm before the replace goes through.
	ActionNeedsConfirmation Action = "needs_confirmation"
)

// Decision is the reconciler's verdict. ExpireIDs lists duplicate active
// sprints that must be expired no matter which action is taken; duplicate
// cleanup is invariant repair, not part of the destructive replace.
type Decision struct {
	Action      Action
	CanonicalID string
	ExpireIDs   []string
	Anomaly     bool
}

// DecideReconciliation decides how a freshly generated sprint should land.
//
// Among the existing sprints it picks a canonical: active beats inactive,
// newer CreatedAt beats older, and lexically smaller ID breaks exact ties
// so repeated runs over the same state decide the same way. An active
// canonical is only ever replaced with confirmed=true, whether or not any
// of its tasks are done. More than one active sprint is an anomaly;
// all active sprints other than the canonical are slated for expiry.
func DecideReconciliation(existing []*domain.Sprint, confirmed bool) Decision {
	if len(existing) == 0 {
		return Decision{Action: ActionCreate}
	}

	canonical := pickCanonical(existing)

	var expire []string
	activeCount := 0
	for _, s := range existing {
		if s.Status != domain.SprintActive {
			continue
		}
		activeCount++
		if s.ID != canonical.ID {
			expire = append(expire, s.ID)
		}
	}
	sort.Strings(expire)

	d := Decision{
		CanonicalID: canonical.ID,
		ExpireIDs:   expire,
		Anomaly:     activeCount > 1,
	}

	if canonical.Status != domain.SprintActive {
		d.Action = ActionCreate
		d.CanonicalID = ""
		return d
	}

	if !confirmed {
		d.Action = ActionNeedsConfirmation
		return d
	}

	d.Action = ActionReplace
	return d
}

func pickCanonical(sprints []*domain.Sprint) *domain.Sprint {
	best := sprints[0]
	for _, s := range sprints[1:] {
		if betterCanonical(s, best) {
			best = s
		}
	}
	return best
}

func betterCanonical(a, b *domain.Sprint) bool {
	aActive := a.Status == domain.SprintActive
	bActive := b.Status == domain.SprintActive
	if aActive != bActive {
		return aActive
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID < b.ID
}
