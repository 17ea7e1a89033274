package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/codelog/internal/app"
	"github.com/alexanderramin/codelog/internal/domain"
)

// FormatStatus renders the per-language overview.
func FormatStatus(resp *app.StatusResponse) string {
	if len(resp.Languages) == 0 {
		return Dim("Nothing logged yet. Try: codelog session log --lang go --name \"Worker Pool\" --hours 1") + "\n"
	}

	headers := []string{"LANG", "ITEMS", "DONE", "LOGS", "HOURS", "PROGRESS", fmt.Sprintf("LAST %dD", resp.RecentDays), "TOP STREAK"}
	rows := make([][]string, 0, len(resp.Languages))
	for _, l := range resp.Languages {
		pct := 0.0
		if l.TargetHours > 0 {
			pct = l.TotalHours * 100 / l.TargetHours
		}
		top := Dim("--")
		if l.TopItem != "" {
			top = fmt.Sprintf("%s %s", Truncate(l.TopItem, 24), FormatStreak(l.TopItemStreak))
		}
		rows = append(rows, []string{
			LanguageBadge(l.Code, l.Color),
			fmt.Sprintf("%d", l.ActiveItems),
			fmt.Sprintf("%d", l.CompletedItems),
			fmt.Sprintf("%d", l.TotalLogs),
			FormatHours(l.TotalHours),
			RenderProgress(pct, 10),
			FormatHours(l.RecentHours),
			top,
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("Total %s, %s in the last %d days. As of %s.",
		FormatHours(resp.TotalHours), FormatHours(resp.RecentHours), resp.RecentDays,
		resp.GeneratedAt.Format(domain.DateLayout))))
	return RenderBox("Status", b.String()) + "\n"
}
