package formatter

import (
	"fmt"
	"strings"
)

const (
	barFilled = "█"
	barEmpty  = "░"
)

// RenderProgress renders a completion bar like [████░░░░]  50%.
// Color shifts with the fraction: red below a third, yellow below
// two thirds, green above.
func RenderProgress(frac float64, width int) string {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat(barFilled, filled) + strings.Repeat(barEmpty, width-filled)

	style := StyleGreen
	switch {
	case frac < 0.33:
		style = StyleRed
	case frac < 0.66:
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), frac*100)
}
