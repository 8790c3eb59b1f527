package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/arowley/prepsprint/internal/domain"
)

// SprintPDF holds everything the schedule export needs about one sprint.
type SprintPDF struct {
	Company  string
	Position string
	Sprint   *domain.Sprint
}

// WriteSchedulePDF renders the full day-by-day sprint schedule as a
// printable A4 document.
func WriteSchedulePDF(w io.Writer, in SprintPDF) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Prep Sprint: %s", in.Company))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("%s interview on %s, %d days of prep",
		in.Position, in.Sprint.InterviewDate.Format("2006-01-02"), in.Sprint.TotalDays))
	pdf.Ln(12)

	for i := range in.Sprint.DailyPlans {
		plan := &in.Sprint.DailyPlans[i]

		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 9, fmt.Sprintf("Day %d  -  %s  (%s)",
			plan.Day, plan.Date.Format("Mon, Jan 2"), focusLabel(plan.Focus)))
		pdf.Ln(8)

		for _, block := range plan.Blocks {
			pdf.SetFont("Arial", "B", 11)
			pdf.Cell(0, 7, fmt.Sprintf("  %s (%s)", blockLabel(block.Type), block.Duration))
			pdf.Ln(6)

			pdf.SetFont("Arial", "", 11)
			for _, task := range block.Tasks {
				box := "[ ]"
				if task.Completed {
					box = "[x]"
				}
				pdf.MultiCell(0, 6, fmt.Sprintf("    %s %s", box, task.Description), "", "", false)
			}
		}
		pdf.Ln(4)
	}

	done, total := in.Sprint.TaskCounts()
	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 9, fmt.Sprintf("Progress: %d of %d tasks completed", done, total))

	return pdf.Output(w)
}

func focusLabel(f domain.FocusArea) string {
	switch f {
	case domain.FocusDSA:
		return "Data Structures & Algorithms"
	case domain.FocusSystemDesign:
		return "System Design"
	case domain.FocusCoreCS:
		return "Core CS"
	case domain.FocusBehavioral:
		return "Behavioral"
	case domain.FocusReview:
		return "Review"
	case domain.FocusMock:
		return "Mock Interview"
	default:
		return string(f)
	}
}

func blockLabel(b domain.BlockType) string {
	switch b {
	case domain.BlockMorning:
		return "Morning"
	case domain.BlockEvening:
		return "Evening"
	case domain.BlockQuick:
		return "Quick"
	default:
		return string(b)
	}
}
