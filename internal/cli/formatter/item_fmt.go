package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/codelog/internal/domain"
	"github.com/alexanderramin/codelog/internal/resolver"
)

// itemProgress is the cumulative percentage of target hours logged.
func itemProgress(w *domain.WorkItem) float64 {
	if w.TargetHours <= 0 {
		return 0
	}
	return w.Stats.TotalHours * 100 / w.TargetHours
}

// FormatItemList renders work items as a table sorted by the caller.
func FormatItemList(items []*domain.WorkItem) string {
	if len(items) == 0 {
		return Dim("No work items found.") + "\n"
	}

	headers := []string{"ID", "LANG", "TYPE", "NAME", "TOPIC", "HOURS", "PROGRESS", "STREAK"}
	rows := make([][]string, 0, len(items))
	for _, w := range items {
		name := Truncate(w.CanonicalName, 32)
		if !w.Active {
			name = Dim(name + " (inactive)")
		}
		rows = append(rows, []string{
			TruncID(w.ID),
			w.LanguageCode,
			string(w.Type),
			name,
			w.DefaultTopic,
			fmt.Sprintf("%s / %s", FormatHours(w.Stats.TotalHours), FormatHours(w.TargetHours)),
			RenderProgress(itemProgress(w), 10),
			FormatStreak(w.Stats.CurrentStreakDays),
		})
	}
	return RenderTable(headers, rows)
}

// FormatItemDetail renders one item with its cached stats and session log.
func FormatItemDetail(w *domain.WorkItem, sessions []*domain.Session, now time.Time) string {
	var b strings.Builder

	field := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", Dim(fmt.Sprintf("%-12s", label)), value)
	}
	field("ID", w.ID)
	field("Language", w.LanguageCode)
	field("Type", string(w.Type))
	field("Slug", w.Slug)
	field("Aliases", strings.Join(w.Aliases.Sorted(), ", "))
	field("Topic", w.DefaultTopic)
	field("Difficulty", DifficultyBadge(w.DefaultDifficulty))
	if !w.Active {
		field("Active", StyleRed.Render("no"))
	}
	b.WriteString("\n")

	field("Progress", fmt.Sprintf("%s  %s of %s",
		RenderProgress(itemProgress(w), 20), FormatHours(w.Stats.TotalHours), FormatHours(w.TargetHours)))
	field("Logs", fmt.Sprintf("%d", w.Stats.TotalLogs))
	field("Last logged", OptionalDate(w.Stats.LastLoggedAt, now))
	field("Streak", fmt.Sprintf("%s current, %s best",
		FormatStreak(w.Stats.CurrentStreakDays), FormatStreak(w.Stats.LongestStreakDays)))
	field("Finish by", OptionalDate(w.Stats.ProjectedFinishDate, now))

	if len(sessions) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Sessions"))
		b.WriteString("\n")
		b.WriteString(FormatSessionTable(sessions))
	}
	return RenderBox(w.CanonicalName, strings.TrimRight(b.String(), "\n"))
}

// FormatResolution describes the item a name resolved to.
func FormatResolution(res resolver.Resolution) string {
	if res.Outcome == resolver.Suggested {
		return FormatSuggestions(res.Suggestions)
	}
	w := res.Item
	verb := "Matched"
	if res.Created {
		verb = "Created"
	}
	line := fmt.Sprintf("%s %s %s [%s/%s]", StyleGreen.Render(verb), Bold(w.CanonicalName),
		TruncID(w.ID), w.LanguageCode, w.Type)
	details := fmt.Sprintf("topic %s, %s, target %s", w.DefaultTopic, DifficultyBadge(w.DefaultDifficulty), FormatHours(w.TargetHours))
	if res.Skill != "" {
		details += ", skill " + res.Skill
	}
	return line + "\n  " + Dim(details) + "\n"
}

// FormatSuggestions lists look-alike items offered instead of creating one.
func FormatSuggestions(candidates []resolver.Candidate) string {
	var b strings.Builder
	b.WriteString(StyleYellow.Render("Did you mean one of these?") + "\n")
	for i, c := range candidates {
		fmt.Fprintf(&b, "  %d. %s %s %s\n", i+1, Bold(c.Name), TruncID(c.ItemID), Dim("("+c.Hint+")"))
	}
	b.WriteString(Dim("Pass --item-id to pick one, or --new to create a separate item.") + "\n")
	return b.String()
}
