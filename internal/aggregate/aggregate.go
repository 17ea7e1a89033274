// Package aggregate derives the cached statistics on a work item from its
// session history.
package aggregate

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/codelog/internal/domain"
	"github.com/alexanderramin/codelog/internal/repository"
)

// projectionWindowDays bounds which session dates feed the daily pace.
const projectionWindowDays = 14

// maxProjectionDays caps the horizon of a projected finish. Slower paces get
// no projection.
const maxProjectionDays = 100 * 365

const day = 24 * time.Hour

// Compute derives stats from the full session set of one item. now supplies
// "today" for the current streak and the projection window. Compute is pure:
// the same inputs always give the same output.
func Compute(sessions []*domain.Session, targetHours float64, now time.Time) domain.ItemStats {
	var stats domain.ItemStats
	if len(sessions) == 0 {
		return stats
	}

	hoursByDate := make(map[time.Time]float64)
	for _, s := range sessions {
		stats.TotalLogs++
		stats.TotalHours += s.HoursSpent
		hoursByDate[domain.DateOf(s.Date)] += s.HoursSpent
	}

	dates := make([]time.Time, 0, len(hoursByDate))
	for d := range hoursByDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	last := dates[len(dates)-1]
	stats.LastLoggedAt = &last

	today := domain.DateOf(now)
	stats.CurrentStreakDays = currentStreak(hoursByDate, today)
	stats.LongestStreakDays = longestStreak(dates)
	stats.ProjectedFinishDate = projectFinish(dates, hoursByDate, stats.TotalHours, targetHours, now)
	return stats
}

// currentStreak counts consecutive logged days ending today. A day without a
// session today yields 0 even when yesterday was logged.
func currentStreak(logged map[time.Time]float64, today time.Time) int {
	streak := 0
	for d := today; ; d = d.AddDate(0, 0, -1) {
		if _, ok := logged[d]; !ok {
			return streak
		}
		streak++
	}
}

func longestStreak(sorted []time.Time) int {
	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Sub(sorted[i-1]) == day {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

// projectFinish extrapolates the average hours per logged day over the last
// projectionWindowDays (future dates excluded) to the remaining target hours,
// rounding up to whole days. dates must be sorted so the float sum is stable
// across calls.
func projectFinish(dates []time.Time, hoursByDate map[time.Time]float64, totalHours, targetHours float64, now time.Time) *time.Time {
	if targetHours <= totalHours || len(dates) < 2 {
		return nil
	}

	today := domain.DateOf(now)
	var windowHours float64
	windowDays := 0
	for _, d := range dates {
		gap := today.Sub(d)
		if gap >= 0 && gap <= projectionWindowDays*day {
			windowHours += hoursByDate[d]
			windowDays++
		}
	}
	if windowDays == 0 {
		return nil
	}
	avg := windowHours / float64(windowDays)
	if avg <= 0 {
		return nil
	}

	days := math.Ceil((targetHours - totalHours) / avg)
	if days > maxProjectionDays {
		return nil
	}
	finish := today.AddDate(0, 0, int(days))
	return &finish
}

// Store is what the Maintainer needs from the repositories.
type Store interface {
	GetByID(ctx context.Context, id string) (*domain.WorkItem, error)
	UpdateStats(ctx context.Context, id string, stats domain.ItemStats) error
	List(ctx context.Context, filter repository.WorkItemFilter) ([]*domain.WorkItem, error)
}

type SessionSource interface {
	ListByItem(ctx context.Context, itemID string) ([]*domain.Session, error)
}

// Maintainer writes recomputed stats back to the store.
type Maintainer struct {
	items    Store
	sessions SessionSource
	now      func() time.Time
}

func NewMaintainer(items Store, sessions SessionSource, now func() time.Time) *Maintainer {
	if now == nil {
		now = time.Now
	}
	return &Maintainer{items: items, sessions: sessions, now: now}
}

// Recompute replays every session of the item and stores the result. An item
// without sessions keeps its current stats untouched. If the sessions cannot
// be read nothing is written.
func (m *Maintainer) Recompute(ctx context.Context, itemID string) (domain.ItemStats, error) {
	item, err := m.items.GetByID(ctx, itemID)
	if err != nil {
		return domain.ItemStats{}, fmt.Errorf("loading work item: %w", err)
	}

	sessions, err := m.sessions.ListByItem(ctx, itemID)
	if err != nil {
		return domain.ItemStats{}, fmt.Errorf("reading sessions for recompute: %w", err)
	}
	if len(sessions) == 0 {
		return item.Stats, nil
	}

	stats := Compute(sessions, item.TargetHours, m.now())
	if err := m.items.UpdateStats(ctx, itemID, stats); err != nil {
		return domain.ItemStats{}, fmt.Errorf("writing work item stats: %w", err)
	}
	return stats, nil
}

// RecomputeAll refreshes every active item and returns how many were
// visited. Streaks depend on today, so this is how stale caches catch up.
func (m *Maintainer) RecomputeAll(ctx context.Context) (int, error) {
	items, err := m.items.List(ctx, repository.WorkItemFilter{})
	if err != nil {
		return 0, fmt.Errorf("listing work items: %w", err)
	}
	for _, w := range items {
		if _, err := m.Recompute(ctx, w.ID); err != nil {
			return 0, fmt.Errorf("recomputing %s: %w", w.CanonicalName, err)
		}
	}
	return len(items), nil
}
