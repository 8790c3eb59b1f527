package domain

import "time"

// Sprint is the day-by-day study plan counting down to one application's
// interview. For a given application at most one sprint is active at a time;
// regeneration replaces the active sprint in place and expires duplicates.
type Sprint struct {
	ID            string
	ApplicationID string
	InterviewDate time.Time
	RoleType      RoleType
	TotalDays     int
	DailyPlans    []DailyPlan
	Status        SprintStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DailyPlan is one calendar day within a sprint. Day is 1-indexed and
// contiguous; Date increases monotonically with Day. Plans are created at
// generation time and never restructured afterward: only task completion
// flags mutate.
type DailyPlan struct {
	Day    int
	Date   time.Time
	Focus  FocusArea
	Blocks []Block
}

type Block struct {
	ID       string
	Type     BlockType
	Duration string
	Tasks    []Task
}

type Task struct {
	ID          string
	Description string
	Category    string
	Completed   bool
}

// Completed reports whether every task in every block is completed.
// A plan with no tasks is not considered completed.
func (p *DailyPlan) Completed() bool {
	total := 0
	for _, b := range p.Blocks {
		total += len(b.Tasks)
		for _, t := range b.Tasks {
			if !t.Completed {
				return false
			}
		}
	}
	return total > 0
}

// Completed reports whether every task in the block is completed.
func (b *Block) Completed() bool {
	if len(b.Tasks) == 0 {
		return false
	}
	for _, t := range b.Tasks {
		if !t.Completed {
			return false
		}
	}
	return true
}

// TaskAt resolves a 1-indexed (day, block, task) position against the
// sprint's actual shape. The boolean is false when any index is out of
// range; callers treat that as a not-found condition, never a fault.
func (s *Sprint) TaskAt(dayIndex, blockIndex, taskIndex int) (*Task, bool) {
	if dayIndex < 1 || dayIndex > len(s.DailyPlans) {
		return nil, false
	}
	plan := &s.DailyPlans[dayIndex-1]
	if blockIndex < 1 || blockIndex > len(plan.Blocks) {
		return nil, false
	}
	block := &plan.Blocks[blockIndex-1]
	if taskIndex < 1 || taskIndex > len(block.Tasks) {
		return nil, false
	}
	return &block.Tasks[taskIndex-1], true
}

// TaskCounts returns (completed, total) across the whole sprint.
func (s *Sprint) TaskCounts() (completed, total int) {
	for _, p := range s.DailyPlans {
		for _, b := range p.Blocks {
			for _, t := range b.Tasks {
				total++
				if t.Completed {
					completed++
				}
			}
		}
	}
	return completed, total
}
