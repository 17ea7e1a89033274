package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/codelog/internal/cli/formatter"
	"github.com/alexanderramin/codelog/internal/resolver"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// codelogHuhTheme returns a huh theme using the formatter palette.
func codelogHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// suggestionForm asks which existing item was meant. An empty result means
// "create a new item".
func suggestionForm(name string, candidates []resolver.Candidate, result *string) *huh.Form {
	options := make([]huh.Option[string], 0, len(candidates)+1)
	for _, c := range candidates {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", c.Name, c.Hint), c.ItemID))
	}
	options = append(options, huh.NewOption(fmt.Sprintf("Create new item %q", name), ""))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("%q looks like an existing item", name)).
				Description("Pick the item you meant, or keep it separate.").
				Options(options...).
				Value(result),
		),
	).WithTheme(codelogHuhTheme()).WithShowHelp(false)
}

func pickSuggestion(ctx context.Context, name string, candidates []resolver.Candidate) (string, error) {
	var choice string
	if err := suggestionForm(name, candidates, &choice).RunWithContext(ctx); err != nil {
		return "", fmt.Errorf("choosing item: %w", err)
	}
	return choice, nil
}
