package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arowley/prepsprint/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusPill renders an application status in its pipeline color.
func StatusPill(s domain.ApplicationStatus) string {
	switch s {
	case domain.StatusApplied:
		return StyleBlue.Render("applied")
	case domain.StatusShortlisted:
		return StylePurple.Render("shortlisted")
	case domain.StatusInterview:
		return StyleYellow.Render("interview")
	case domain.StatusOffer:
		return StyleGreen.Render("offer")
	case domain.StatusRejected:
		return StyleRed.Render("rejected")
	default:
		return StyleDim.Render(string(s))
	}
}

// FocusLabel returns the display name for a focus area.
func FocusLabel(f domain.FocusArea) string {
	switch f {
	case domain.FocusDSA:
		return "DSA"
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

// FocusStyled renders the focus label in its area color.
func FocusStyled(f domain.FocusArea) string {
	label := FocusLabel(f)
	switch f {
	case domain.FocusMock:
		return StyleRed.Render(label)
	case domain.FocusReview:
		return StyleYellow.Render(label)
	case domain.FocusBehavioral:
		return StylePurple.Render(label)
	default:
		return StyleBlue.Render(label)
	}
}

// BlockLabel returns the display name for a block type.
func BlockLabel(b domain.BlockType) string {
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

// Header renders a section header with an underline.
func Header(text string) string {
	line := strings.Repeat("─", lipgloss.Width(text))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(text), StyleDim.Render(line))
}

// Dim renders text in the muted color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// TruncID shortens a UUID to its first segment for display.
func TruncID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
