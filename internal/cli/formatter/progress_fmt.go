package formatter

import (
	"fmt"
	"strings"

	"github.com/arowley/prepsprint/internal/contract"
)

// FormatProgress renders the streak summary followed by a completion bar
// for each active sprint.
func FormatProgress(resp *contract.ProgressResponse) string {
	var b strings.Builder

	p := resp.Progress
	b.WriteString(Header("Progress"))
	b.WriteString("\n")

	streak := fmt.Sprintf("%d day", p.CurrentStreak)
	if p.CurrentStreak != 1 {
		streak += "s"
	}
	fmt.Fprintf(&b, "Current streak:   %s\n", Bold(streak))
	fmt.Fprintf(&b, "Longest streak:   %d\n", p.LongestStreak)
	fmt.Fprintf(&b, "Tasks completed:  %d\n", p.TotalTasksCompleted)
	if p.LastActiveDate != nil {
		fmt.Fprintf(&b, "Last active:      %s\n", p.LastActiveDate.Format("2006-01-02"))
	}

	if len(resp.ActiveSprints) == 0 {
		fmt.Fprintf(&b, "\n%s\n", Dim("No active sprints."))
		return strings.TrimRight(b.String(), "\n")
	}

	b.WriteString("\n")
	b.WriteString(Header("Active sprints"))
	b.WriteString("\n")
	for _, s := range resp.ActiveSprints {
		frac := 0.0
		if s.TasksTotal > 0 {
			frac = float64(s.TasksCompleted) / float64(s.TasksTotal)
		}
		line := fmt.Sprintf("%-24s %s %d/%d tasks",
			truncate(s.Company+" · "+s.Position, 24),
			RenderProgress(frac, 16),
			s.TasksCompleted, s.TasksTotal)
		if s.InterviewDate != nil {
			line += Dim("  interview " + s.InterviewDate.Format("2006-01-02"))
		}
		b.WriteString(line + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
