package formatter

import (
	"fmt"
	"strings"

	"github.com/arowley/prepsprint/internal/contract"
)

// FormatPlanResponse renders the study plans for a date, one section per
// application, with 1-based block and task numbers matching what
// "task done" expects.
func FormatPlanResponse(resp *contract.PlanResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", Dim("Plan for "+resp.GeneratedFor.Format("Monday, Jan 2 2006")))

	for i := range resp.Plans {
		plan := &resp.Plans[i]
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(Header(fmt.Sprintf("%s — Day %d of %d · %s",
			plan.Company, plan.DayIndex, plan.TotalDays, FocusStyled(plan.Focus))))
		b.WriteString("\n")
		if plan.Guidance != "" {
			fmt.Fprintf(&b, "%s\n", StyleYellow.Render(plan.Guidance))
		}

		weak := make(map[string]bool, len(plan.WeakSpots))
		for _, topic := range plan.WeakSpots {
			weak[strings.ToLower(topic)] = true
		}

		done, total := 0, 0
		for bi, block := range plan.Blocks {
			fmt.Fprintf(&b, "%s %s %s\n",
				Dim(fmt.Sprintf("[%d]", bi+1)),
				Bold(BlockLabel(block.Type)),
				Dim("("+block.Duration+")"))
			for ti, task := range block.Tasks {
				total++
				box := "[ ]"
				desc := task.Description
				if task.Completed {
					done++
					box = StyleGreen.Render("[x]")
					desc = Dim(desc)
				}
				if weak[strings.ToLower(task.Category)] {
					desc += " " + StyleYellow.Render("(weak spot)")
				}
				fmt.Fprintf(&b, "  %s %s %s\n", Dim(fmt.Sprintf("%d.", ti+1)), box, desc)
			}
		}
		if total > 0 {
			fmt.Fprintf(&b, "%s\n", RenderProgress(float64(done)/float64(total), 20))
		}
	}

	for _, w := range resp.Warnings {
		fmt.Fprintf(&b, "\n%s\n", Dim("Warning: "+w))
	}

	return strings.TrimRight(b.String(), "\n")
}
