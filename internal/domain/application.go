package domain

import "time"

type Application struct {
	ID            string
	Company       string
	Role          string
	RoleType      RoleType
	Status        ApplicationStatus
	InterviewDate *time.Time
	Notes         string
	Rounds        []InterviewRound
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type InterviewRound struct {
	ID            string
	ApplicationID string
	RoundNumber   int
	RoundType     RoundType
	ScheduledDate *time.Time
	Notes         string
	Questions     []string
	Feedback      *Feedback
	CreatedAt     time.Time
}

type Feedback struct {
	Rating          int // 1..5
	Pros            []string
	Cons            []string
	StruggledTopics []string
	Notes           string
}

// NextRoundNumber returns the round number for a newly added round:
// one past the highest existing number, starting at 1.
func (a *Application) NextRoundNumber() int {
	max := 0
	for _, r := range a.Rounds {
		if r.RoundNumber > max {
			max = r.RoundNumber
		}
	}
	return max + 1
}

// StruggledTopics collects the struggled-topic labels recorded across all
// round feedback, deduplicated, in first-seen order.
func (a *Application) StruggledTopics() []string {
	seen := make(map[string]bool)
	var topics []string
	for _, r := range a.Rounds {
		if r.Feedback == nil {
			continue
		}
		for _, topic := range r.Feedback.StruggledTopics {
			if topic == "" || seen[topic] {
				continue
			}
			seen[topic] = true
			topics = append(topics, topic)
		}
	}
	return topics
}
