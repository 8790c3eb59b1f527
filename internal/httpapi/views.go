package httpapi

import (
	"time"

	"github.com/arowley/prepsprint/internal/contract"
	"github.com/arowley/prepsprint/internal/domain"
)

const dateLayout = "2006-01-02"

type applicationView struct {
	ID            string      `json:"id"`
	Company       string      `json:"company"`
	Role          string      `json:"role"`
	RoleType      string      `json:"role_type,omitempty"`
	Status        string      `json:"status"`
	InterviewDate *string     `json:"interview_date,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	Rounds        []roundView `json:"rounds,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type roundView struct {
	ID            string        `json:"id"`
	RoundNumber   int           `json:"round_number"`
	RoundType     string        `json:"round_type"`
	RoundLabel    string        `json:"round_label"`
	ScheduledDate *string       `json:"scheduled_date,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	Questions     []string      `json:"questions,omitempty"`
	Feedback      *feedbackView `json:"feedback,omitempty"`
}

type feedbackView struct {
	Rating          int      `json:"rating"`
	Pros            []string `json:"pros,omitempty"`
	Cons            []string `json:"cons,omitempty"`
	StruggledTopics []string `json:"struggled_topics,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

type sprintView struct {
	ID            string     `json:"id"`
	ApplicationID string     `json:"application_id"`
	InterviewDate string     `json:"interview_date"`
	RoleType      string     `json:"role_type"`
	TotalDays     int        `json:"total_days"`
	Status        string     `json:"status"`
	DailyPlans    []planView `json:"daily_plans"`
}

type planView struct {
	Day    int         `json:"day"`
	Date   string      `json:"date"`
	Focus  string      `json:"focus"`
	Blocks []blockView `json:"blocks"`
}

type blockView struct {
	ID       string     `json:"id"`
	Type     string     `json:"type"`
	Duration string     `json:"duration"`
	Tasks    []taskView `json:"tasks"`
}

type taskView struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	Completed   bool   `json:"completed"`
}

type dailyPlanResult struct {
	ApplicationID string      `json:"application_id"`
	Company       string      `json:"company"`
	Position      string      `json:"position"`
	SprintID      string      `json:"sprint_id"`
	Day           int         `json:"day"`
	TotalDays     int         `json:"total_days"`
	Date          string      `json:"date"`
	Focus         string      `json:"focus"`
	Guidance      string      `json:"guidance,omitempty"`
	WeakSpots     []string    `json:"weak_spots,omitempty"`
	Blocks        []blockView `json:"blocks"`
}

type planResponseView struct {
	Date     string            `json:"date"`
	Plans    []dailyPlanResult `json:"plans"`
	Warnings []string          `json:"warnings,omitempty"`
}

type progressView struct {
	CurrentStreak       int                  `json:"current_streak"`
	LongestStreak       int                  `json:"longest_streak"`
	LastActiveDate      *string              `json:"last_active_date,omitempty"`
	TotalTasksCompleted int                  `json:"total_tasks_completed"`
	ActiveSprints       []sprintProgressView `json:"active_sprints"`
}

type sprintProgressView struct {
	ApplicationID  string  `json:"application_id"`
	Company        string  `json:"company"`
	Position       string  `json:"position"`
	SprintID       string  `json:"sprint_id"`
	InterviewDate  *string `json:"interview_date,omitempty"`
	TasksCompleted int     `json:"tasks_completed"`
	TasksTotal     int     `json:"tasks_total"`
}

func dateString(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func toApplicationView(a *domain.Application) applicationView {
	v := applicationView{
		ID:            a.ID,
		Company:       a.Company,
		Role:          a.Role,
		RoleType:      string(a.RoleType),
		Status:        string(a.Status),
		InterviewDate: dateString(a.InterviewDate),
		Notes:         a.Notes,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
	for i := range a.Rounds {
		v.Rounds = append(v.Rounds, toRoundView(&a.Rounds[i]))
	}
	return v
}

func toRoundView(r *domain.InterviewRound) roundView {
	v := roundView{
		ID:            r.ID,
		RoundNumber:   r.RoundNumber,
		RoundType:     string(r.RoundType),
		RoundLabel:    r.RoundType.Label(),
		ScheduledDate: dateString(r.ScheduledDate),
		Notes:         r.Notes,
		Questions:     r.Questions,
	}
	if r.Feedback != nil {
		v.Feedback = &feedbackView{
			Rating:          r.Feedback.Rating,
			Pros:            r.Feedback.Pros,
			Cons:            r.Feedback.Cons,
			StruggledTopics: r.Feedback.StruggledTopics,
			Notes:           r.Feedback.Notes,
		}
	}
	return v
}

func toSprintView(s *domain.Sprint) sprintView {
	v := sprintView{
		ID:            s.ID,
		ApplicationID: s.ApplicationID,
		InterviewDate: s.InterviewDate.Format(dateLayout),
		RoleType:      string(s.RoleType),
		TotalDays:     s.TotalDays,
		Status:        string(s.Status),
		DailyPlans:    []planView{},
	}
	for i := range s.DailyPlans {
		p := &s.DailyPlans[i]
		v.DailyPlans = append(v.DailyPlans, planView{
			Day:    p.Day,
			Date:   p.Date.Format(dateLayout),
			Focus:  string(p.Focus),
			Blocks: toBlockViews(p.Blocks),
		})
	}
	return v
}

func toBlockViews(blocks []domain.Block) []blockView {
	out := make([]blockView, 0, len(blocks))
	for _, b := range blocks {
		bv := blockView{ID: b.ID, Type: string(b.Type), Duration: b.Duration, Tasks: []taskView{}}
		for _, t := range b.Tasks {
			bv.Tasks = append(bv.Tasks, taskView{
				ID:          t.ID,
				Description: t.Description,
				Category:    t.Category,
				Completed:   t.Completed,
			})
		}
		out = append(out, bv)
	}
	return out
}

func toPlanResponseView(resp *contract.PlanResponse) planResponseView {
	out := planResponseView{
		Date:     resp.GeneratedFor.Format(dateLayout),
		Plans:    []dailyPlanResult{},
		Warnings: resp.Warnings,
	}
	for _, p := range resp.Plans {
		out.Plans = append(out.Plans, dailyPlanResult{
			ApplicationID: p.ApplicationID,
			Company:       p.Company,
			Position:      p.Position,
			SprintID:      p.SprintID,
			Day:           p.DayIndex,
			TotalDays:     p.TotalDays,
			Date:          p.Date.Format(dateLayout),
			Focus:         string(p.Focus),
			Guidance:      p.Guidance,
			WeakSpots:     p.WeakSpots,
			Blocks:        toBlockViews(p.Blocks),
		})
	}
	return out
}

func toProgressView(resp *contract.ProgressResponse) progressView {
	out := progressView{
		CurrentStreak:       resp.Progress.CurrentStreak,
		LongestStreak:       resp.Progress.LongestStreak,
		LastActiveDate:      dateString(resp.Progress.LastActiveDate),
		TotalTasksCompleted: resp.Progress.TotalTasksCompleted,
		ActiveSprints:       []sprintProgressView{},
	}
	for _, s := range resp.ActiveSprints {
		out.ActiveSprints = append(out.ActiveSprints, sprintProgressView{
			ApplicationID:  s.ApplicationID,
			Company:        s.Company,
			Position:       s.Position,
			SprintID:       s.SprintID,
			InterviewDate:  dateString(s.InterviewDate),
			TasksCompleted: s.TasksCompleted,
			TasksTotal:     s.TasksTotal,
		})
	}
	return out
}
