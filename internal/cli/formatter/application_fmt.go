package formatter

import (
	"fmt"
	"strings"

	"github.com/arowley/prepsprint/internal/domain"
)

// FormatApplicationList renders the application table. activeSprint marks
// which applications currently have a running prep sprint.
func FormatApplicationList(apps []*domain.Application, activeSprint map[string]bool) string {
	headers := []string{"ID", "COMPANY", "ROLE", "STATUS", "INTERVIEW", "SPRINT"}
	rows := make([][]string, 0, len(apps))

	for _, a := range apps {
		interview := Dim("--")
		if a.InterviewDate != nil {
			interview = a.InterviewDate.Format("2006-01-02")
		}
		sprint := Dim("--")
		if activeSprint[a.ID] {
			sprint = StyleGreen.Render("active")
		}
		rows = append(rows, []string{
			TruncID(a.ID),
			Bold(a.Company),
			a.Role,
			StatusPill(a.Status),
			interview,
			sprint,
		})
	}

	return RenderTable(headers, rows)
}

// FormatApplicationInspect renders one application with its rounds.
func FormatApplicationInspect(a *domain.Application) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("%s — %s", a.Company, a.Role)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", Dim("ID:"), a.ID)
	fmt.Fprintf(&b, "%s %s\n", Dim("Status:"), StatusPill(a.Status))
	if a.RoleType != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Role type:"), string(a.RoleType))
	}
	if a.InterviewDate != nil {
		fmt.Fprintf(&b, "%s %s\n", Dim("Interview:"), a.InterviewDate.Format("2006-01-02"))
	}
	if a.Notes != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Notes:"), a.Notes)
	}

	if len(a.Rounds) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Rounds"))
		b.WriteString("\n")
		for _, r := range a.Rounds {
			line := fmt.Sprintf("%d. %s", r.RoundNumber, Bold(r.RoundType.Label()))
			if r.ScheduledDate != nil {
				line += Dim("  " + r.ScheduledDate.Format("2006-01-02"))
			}
			b.WriteString(line + "\n")
			fmt.Fprintf(&b, "   %s %s\n", Dim("id:"), r.ID)
			for _, q := range r.Questions {
				fmt.Fprintf(&b, "   %s %s\n", Dim("q:"), q)
			}
			if r.Feedback != nil {
				fmt.Fprintf(&b, "   %s %s\n", Dim("rating:"), ratingStars(r.Feedback.Rating))
				if len(r.Feedback.StruggledTopics) > 0 {
					fmt.Fprintf(&b, "   %s %s\n", Dim("struggled:"),
						StyleYellow.Render(strings.Join(r.Feedback.StruggledTopics, ", ")))
				}
			}
		}
	}

	topics := a.StruggledTopics()
	if len(topics) > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %s\n", Dim("Weak spots so far:"), strings.Join(topics, ", "))
	}

	return strings.TrimRight(b.String(), "\n")
}

func ratingStars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return StyleYellow.Render(strings.Repeat("★", rating)) + Dim(strings.Repeat("☆", 5-rating))
}
