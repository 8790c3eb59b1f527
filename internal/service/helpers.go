package service

import "github.com/arowley/prepsprint/internal/domain"

func activeSprints(sprints []*domain.Sprint) []*domain.Sprint {
	var active []*domain.Sprint
	for _, s := range sprints {
		if s.Status == domain.SprintActive {
			active = append(active, s)
		}
	}
	return active
}

// canonicalSprint picks the sprint to act on when several are active:
// newest CreatedAt wins, lexically smaller ID breaks exact ties.
func canonicalSprint(sprints []*domain.Sprint) *domain.Sprint {
	if len(sprints) == 0 {
		return nil
	}
	best := sprints[0]
	for _, s := range sprints[1:] {
		if s.CreatedAt.After(best.CreatedAt) ||
			(s.CreatedAt.Equal(best.CreatedAt) && s.ID < best.ID) {
			best = s
		}
	}
	return best
}
