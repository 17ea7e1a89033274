package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/codelog/internal/domain"
	"github.com/charmbracelet/lipgloss"
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

// DifficultyStyle colors difficulties from green (Beginner) to red (Expert).
func DifficultyStyle(d domain.Difficulty) lipgloss.Style {
	switch d {
	case domain.DifficultyBeginner:
		return StyleGreen
	case domain.DifficultyIntermediate:
		return StyleBlue
	case domain.DifficultyAdvanced:
		return StyleYellow
	case domain.DifficultyExpert:
		return StyleRed
	default:
		return StyleDim
	}
}

func DifficultyBadge(d domain.Difficulty) string {
	if d == "" {
		return StyleDim.Render("--")
	}
	return DifficultyStyle(d).Render(string(d))
}

// StatusPill returns a colored indicator for a session status.
func StatusPill(status domain.SessionStatus) string {
	switch status {
	case domain.StatusPlanned:
		return StyleBlue.Render("○ Planned")
	case domain.StatusInProgress:
		return StyleYellow.Render("● In Progress")
	case domain.StatusCompleted:
		return StyleGreen.Render("✔ Completed")
	case domain.StatusBlocked:
		return StyleRed.Render("✖ Blocked")
	default:
		return StyleDim.Render(string(status))
	}
}

// LanguageBadge renders a language code in its configured hex color, or
// purple when the language has none.
func LanguageBadge(code, color string) string {
	style := StylePurple
	if strings.HasPrefix(color, "#") {
		style = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	return style.Bold(true).Render(code)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
