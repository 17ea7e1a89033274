package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a percentage (0-100) as a bar like [████░░░░]  45%.
// The bar is green from 66%, yellow from 33%, red below. The label shows the
// real value even past 100%; the bar itself is clamped.
func RenderProgress(pct float64, width int) string {
	if width < 2 {
		width = 2
	}
	frac := pct / 100
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	filled := int(frac * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case frac < 0.33:
		style = StyleRed
	case frac < 0.66:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct)
}
