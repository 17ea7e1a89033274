package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/codelog/internal/domain"
	"github.com/alexanderramin/codelog/internal/repository"
)

// FormatSessionTable renders one item's sessions, oldest first.
func FormatSessionTable(sessions []*domain.Session) string {
	headers := []string{"ID", "DATE", "STATUS", "HOURS", "PROGRESS", "POINTS", "NOTES"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			TruncID(s.ID),
			s.Date.Format(domain.DateLayout),
			StatusPill(s.Status),
			FormatHours(s.HoursSpent),
			fmt.Sprintf("%.0f%%", s.ProgressPct),
			FormatPoints(s.PointsAwarded),
			Dim(Truncate(s.Notes, 40)),
		})
	}
	return RenderTable(headers, rows)
}

// FormatRecentSessions renders sessions across items, newest first.
func FormatRecentSessions(views []repository.SessionView) string {
	if len(views) == 0 {
		return Dim("No sessions found.") + "\n"
	}

	headers := []string{"ID", "DATE", "LANG", "ITEM", "STATUS", "HOURS", "POINTS", "TAGS"}
	rows := make([][]string, 0, len(views))
	var hours, points float64
	for _, v := range views {
		s := v.Session
		hours += s.HoursSpent
		points += s.PointsAwarded
		rows = append(rows, []string{
			TruncID(s.ID),
			s.Date.Format(domain.DateLayout),
			v.LanguageCode,
			Truncate(v.ItemName, 28),
			StatusPill(s.Status),
			FormatHours(s.HoursSpent),
			FormatPoints(s.PointsAwarded),
			Dim(strings.Join(s.Tags, ",")),
		})
	}
	summary := Dim(fmt.Sprintf("%d sessions, %s, %s points", len(views), FormatHours(hours), FormatPoints(points)))
	return RenderTable(headers, rows) + "\n" + summary + "\n"
}

// FormatSessionSaved confirms an upsert with the freshly recomputed item.
func FormatSessionSaved(s *domain.Session, w *domain.WorkItem, updated bool) string {
	verb := "Logged"
	if updated {
		verb = "Updated"
	}
	line := fmt.Sprintf("%s %s on %s for %s %s", StyleGreen.Render(verb), FormatHours(s.HoursSpent),
		s.Date.Format(domain.DateLayout), Bold(w.CanonicalName), TruncID(s.ID))
	details := fmt.Sprintf("%s, %s points, %.0f%% of %s, streak %s",
		s.Status, FormatPoints(s.PointsAwarded), s.ProgressPct, FormatHours(w.TargetHours),
		FormatStreak(w.Stats.CurrentStreakDays))
	return line + "\n  " + Dim(details) + "\n"
}
