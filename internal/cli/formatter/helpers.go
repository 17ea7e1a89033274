package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/codelog/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		inner := StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content
		return boxStyle.Render(inner)
	}
	return boxStyle.Render(content)
}

// RelativeDay describes a calendar date relative to now in whole days.
func RelativeDay(t, now time.Time) string {
	days := int(domain.DateOf(t).Sub(domain.DateOf(now)).Hours() / 24)

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// OptionalDate renders a nullable date as "2006-01-02 (In 3d)", or a dim
// placeholder when unset.
func OptionalDate(t *time.Time, now time.Time) string {
	if t == nil {
		return StyleDim.Render("--")
	}
	return fmt.Sprintf("%s %s", t.Format(domain.DateLayout), Dim("("+RelativeDay(*t, now)+")"))
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatHours renders hours with at most two decimals: 1.5h, 12h, 0.25h.
func FormatHours(h float64) string {
	return strconv.FormatFloat(roundTo(h, 2), 'f', -1, 64) + "h"
}

// FormatPoints renders awarded points with one decimal.
func FormatPoints(p float64) string {
	return fmt.Sprintf("%.1f", p)
}

// FormatStreak renders a day count as "3d", dimming zero.
func FormatStreak(days int) string {
	if days <= 0 {
		return StyleDim.Render("0d")
	}
	return fmt.Sprintf("%dd", days)
}

// Truncate shortens s to max runes, ending with "..." when cut.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max || max < 4 {
		return s
	}
	return string(r[:max-3]) + "..."
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
