package generation

import (
	"errors"
	"fmt"
	"time"

	"github.com/arowley/prepsprint/internal/domain"
)

// MaxSprintDays caps generated sprint length. Interviews further out than
// this produce a 30-day sprint anchored at today rather than an unbounded
// plan sequence.
const MaxSprintDays = 30

// ErrUnknownRole marks a role type outside the fixed template set. Callers
// must not default it away.
var ErrUnknownRole = errors.New("unknown role type")

// Generate builds the complete sprint aggregate for an application's
// upcoming interview. Content is a pure function of (interviewDate, role,
// today): identical inputs on the same calendar day produce identical
// (day, date, focus) sequences and task lists. Only IDs vary, and those
// come exclusively from newID so tests can substitute a deterministic
// source.
//
// An interview today or in the past still yields a 1-day sprint; surfacing
// that edge to the user is the caller's job.
func Generate(applicationID string, interviewDate time.Time, role domain.RoleType, today time.Time, newID func() string) (*domain.Sprint, error) {
	tmpl, ok := TemplateFor(role)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	start := domain.DateOnly(today)
	totalDays := domain.DaysBetween(today, interviewDate)
	if totalDays < 1 {
		totalDays = 1
	}
	if totalDays > MaxSprintDays {
		totalDays = MaxSprintDays
	}

	s := &domain.Sprint{
		ID:            newID(),
		ApplicationID: applicationID,
		InterviewDate: domain.DateOnly(interviewDate),
		RoleType:      role,
		TotalDays:     totalDays,
		Status:        domain.SprintActive,
		CreatedAt:     today.UTC(),
		UpdatedAt:     today.UTC(),
	}

	focusSeq := focusSequence(tmpl, totalDays)
	occurrences := make(map[domain.FocusArea]int)
	for offset := 0; offset < totalDays; offset++ {
		focus := focusSeq[offset]
		occ := occurrences[focus]
		occurrences[focus]++

		plan := domain.DailyPlan{
			Day:   offset + 1,
			Date:  start.AddDate(0, 0, offset),
			Focus: focus,
		}
		switch focus {
		case domain.FocusReview:
			plan.Blocks = reviewBlocks(tmpl, occ, newID)
		case domain.FocusMock:
			plan.Blocks = mockBlocks(tmpl, occ, newID)
		default:
			plan.Blocks = studyBlocks(tmpl, focus, occ, newID)
		}
		s.DailyPlans = append(s.DailyPlans, plan)
	}

	return s, nil
}

// focusSequence assigns each day's focus: the role's priority order cycles
// through the early days, the final day is a mock and the day before it a
// review so the sprint ends interview-shaped. Only focuses backed by a
// section are cycled; a study day must always have material behind it.
func focusSequence(tmpl *RoleTemplate, totalDays int) []domain.FocusArea {
	var order []domain.FocusArea
	for _, focus := range tmpl.FocusOrder {
		if tmpl.sectionByFocus(focus) != nil {
			order = append(order, focus)
		}
	}
	if len(order) == 0 {
		order = []domain.FocusArea{domain.FocusBehavioral}
	}

	seq := make([]domain.FocusArea, totalDays)
	for i := range seq {
		seq[i] = order[i%len(order)]
	}
	if totalDays >= 2 {
		seq[totalDays-1] = domain.FocusMock
	}
	if totalDays >= 4 {
		seq[totalDays-2] = domain.FocusReview
	}
	return seq
}

func studyBlocks(tmpl *RoleTemplate, focus domain.FocusArea, occ int, newID func() string) []domain.Block {
	section := tmpl.sectionByFocus(focus)
	if section == nil {
		return nil
	}
	topics := tmpl.orderedTopics(focus)

	morning := domain.Block{
		ID:       newID(),
		Type:     domain.BlockMorning,
		Duration: "90 min",
	}
	for j := 0; j < 2 && j < len(topics); j++ {
		topic := topics[(2*occ+j)%len(topics)]
		morning.Tasks = append(morning.Tasks, domain.Task{
			ID:          newID(),
			Description: "Study: " + topic.Name,
			Category:    topic.Name,
		})
	}

	evening := domain.Block{
		ID:       newID(),
		Type:     domain.BlockEvening,
		Duration: "45 min",
	}
	if len(section.SampleQuestions) > 0 {
		q := section.SampleQuestions[occ%len(section.SampleQuestions)]
		evening.Tasks = append(evening.Tasks, domain.Task{
			ID:          newID(),
			Description: "Practice: " + q,
			Category:    string(focus),
		})
	}

	return []domain.Block{morning, evening, quickBlock(section.Tips, occ, newID)}
}

func reviewBlocks(tmpl *RoleTemplate, occ int, newID func() string) []domain.Block {
	topics := tmpl.highTierTopics()

	morning := domain.Block{
		ID:       newID(),
		Type:     domain.BlockMorning,
		Duration: "90 min",
	}
	for j := 0; j < 3 && j < len(topics); j++ {
		topic := topics[(3*occ+j)%len(topics)]
		morning.Tasks = append(morning.Tasks, domain.Task{
			ID:          newID(),
			Description: "Revisit: " + topic.Name,
			Category:    topic.Name,
		})
	}

	evening := domain.Block{
		ID:       newID(),
		Type:     domain.BlockEvening,
		Duration: "45 min",
		Tasks: []domain.Task{{
			ID:          newID(),
			Description: "Skim your notes and flag anything still shaky",
			Category:    string(domain.FocusReview),
		}},
	}

	tips := []string{
		"Sleep beats cramming; stop early tonight.",
		"Rewrite your weakest answer from memory.",
	}
	return []domain.Block{morning, evening, quickBlock(tips, occ, newID)}
}

func mockBlocks(tmpl *RoleTemplate, occ int, newID func() string) []domain.Block {
	questions := tmpl.allQuestions()

	morning := domain.Block{
		ID:       newID(),
		Type:     domain.BlockMorning,
		Duration: "90 min",
		Tasks: []domain.Task{{
			ID:          newID(),
			Description: "Full timed mock interview, no notes",
			Category:    string(domain.FocusMock),
		}},
	}

	evening := domain.Block{
		ID:       newID(),
		Type:     domain.BlockEvening,
		Duration: "45 min",
	}
	for j := 0; j < 2 && j < len(questions); j++ {
		q := questions[(2*occ+j)%len(questions)]
		evening.Tasks = append(evening.Tasks, domain.Task{
			ID:          newID(),
			Description: "Answer aloud: " + q,
			Category:    string(domain.FocusMock),
		})
	}

	tips := []string{
		"Lay out logistics: link, ID, water, quiet room.",
		"Prepare your two questions for the interviewer.",
	}
	return []domain.Block{morning, evening, quickBlock(tips, occ, newID)}
}

func quickBlock(tips []string, occ int, newID func() string) domain.Block {
	block := domain.Block{
		ID:       newID(),
		Type:     domain.BlockQuick,
		Duration: "15 min",
	}
	if len(tips) > 0 {
		tip := tips[occ%len(tips)]
		block.Tasks = append(block.Tasks, domain.Task{
			ID:          newID(),
			Description: "Quick read: " + tip,
			Category:    "tips",
		})
	}
	return block
}
