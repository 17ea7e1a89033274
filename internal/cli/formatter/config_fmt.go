package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/codelog/internal/domain"
)

// FormatScoringConfig lists every known factor, marking defaulted ones.
func FormatScoringConfig(cfg domain.ScoringConfig) string {
	var b strings.Builder

	factor := func(set map[string]float64, key string, value float64) []string {
		v := fmt.Sprintf("%g", value)
		if _, ok := set[key]; !ok {
			v += " " + Dim("(default)")
		}
		return []string{key, v}
	}

	rows := make([][]string, 0, len(domain.Difficulties))
	for _, d := range domain.Difficulties {
		rows = append(rows, factor(cfg.DifficultyWeights, string(d), cfg.DifficultyWeight(string(d))))
	}
	b.WriteString(RenderTable([]string{"DIFFICULTY", "WEIGHT"}, rows))
	b.WriteString("\n")

	rows = rows[:0]
	for _, st := range domain.SessionStatuses {
		rows = append(rows, factor(cfg.StatusMultipliers, string(st), cfg.StatusMultiplier(string(st))))
	}
	b.WriteString(RenderTable([]string{"STATUS", "MULTIPLIER"}, rows))
	return b.String()
}

// FormatLanguages renders the language table.
func FormatLanguages(languages []*domain.Language) string {
	if len(languages) == 0 {
		return Dim("No languages configured.") + "\n"
	}
	rows := make([][]string, 0, len(languages))
	for _, l := range languages {
		active := StyleGreen.Render("yes")
		if !l.Active {
			active = Dim("no")
		}
		rows = append(rows, []string{LanguageBadge(l.Code, l.Color), l.DisplayName, l.Color, active})
	}
	return RenderTable([]string{"CODE", "NAME", "COLOR", "ACTIVE"}, rows)
}
