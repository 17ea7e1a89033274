package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/codelog/internal/app"
	"github.com/alexanderramin/codelog/internal/domain"
	"github.com/alexanderramin/codelog/internal/repository"
	"github.com/alexanderramin/codelog/internal/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRelativeDay(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", day(2025, 3, 10), "Today"},
		{"tomorrow", day(2025, 3, 11), "Tomorrow"},
		{"yesterday", day(2025, 3, 9), "Yesterday"},
		{"3 days future", day(2025, 3, 13), "In 3d"},
		{"3 days past", day(2025, 3, 7), "3d ago"},
		{"3 weeks future", day(2025, 3, 31), "In 3w"},
		{"3 months future", day(2025, 6, 10), "In 3mo"},
		{"2 weeks past", day(2025, 2, 24), "2w ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDay(tt.input, now))
		})
	}
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "1.5h", FormatHours(1.5))
	assert.Equal(t, "12h", FormatHours(12))
	assert.Equal(t, "0.25h", FormatHours(0.25))
	assert.Equal(t, "0.33h", FormatHours(1.0/3))
	assert.Equal(t, "0h", FormatHours(0))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ünïcö...", Truncate("ünïcödé-names", 8))
}

func TestRenderProgress(t *testing.T) {
	assert.Contains(t, RenderProgress(50, 10), " 50%")
	assert.Contains(t, RenderProgress(0, 4), strings.Repeat(emptyBlock, 4))
	assert.Contains(t, RenderProgress(100, 4), strings.Repeat(filledBlock, 4))

	over := RenderProgress(150, 4)
	assert.Contains(t, over, strings.Repeat(filledBlock, 4), "bar clamps")
	assert.Contains(t, over, "150%", "label does not")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"A", "B"}, [][]string{{"long-cell", "x"}, {"s"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, strings.Index(lines[0], "B"), strings.Index(lines[2], "x"))
	assert.Empty(t, RenderTable(nil, nil))
}

func testItem() *domain.WorkItem {
	last := day(2025, 3, 10)
	finish := day(2025, 3, 20)
	return &domain.WorkItem{
		ID:                "0f8e3c2a-1111-2222-3333-444455556666",
		LanguageCode:      "go",
		Type:              domain.ItemProject,
		CanonicalName:     "Worker Pool",
		Slug:              "worker-pool",
		Aliases:           domain.NewAliasSet("Worker Pool", "worker-pool"),
		DefaultDifficulty: domain.DifficultyAdvanced,
		DefaultTopic:      "Concurrency",
		TargetHours:       10,
		Stats: domain.ItemStats{
			TotalLogs:           3,
			TotalHours:          4,
			LastLoggedAt:        &last,
			CurrentStreakDays:   2,
			LongestStreakDays:   3,
			ProjectedFinishDate: &finish,
		},
		Active: true,
	}
}

func TestFormatItemDetail(t *testing.T) {
	w := testItem()
	sessions := []*domain.Session{{
		ID: "s1", ItemID: w.ID, Date: day(2025, 3, 10), Status: domain.StatusCompleted,
		HoursSpent: 2, PointsAwarded: 4.8, ProgressPct: 40, Notes: "pool drains on close",
	}}

	out := FormatItemDetail(w, sessions, now)
	assert.Contains(t, out, "WORKER POOL")
	assert.Contains(t, out, "worker-pool")
	assert.Contains(t, out, "Concurrency")
	assert.Contains(t, out, "2025-03-20")
	assert.Contains(t, out, "In 10d")
	assert.Contains(t, out, "4h of 10h")
	assert.Contains(t, out, "pool drains on close")
	assert.Contains(t, out, "4.8")
}

func TestFormatItemList(t *testing.T) {
	inactive := testItem()
	inactive.CanonicalName = "Old Pool"
	inactive.Active = false

	out := FormatItemList([]*domain.WorkItem{testItem(), inactive})
	assert.Contains(t, out, "Worker Pool")
	assert.Contains(t, out, "Old Pool (inactive)")
	assert.Contains(t, out, "4h / 10h")
	assert.Contains(t, FormatItemList(nil), "No work items")
}

func TestFormatResolution(t *testing.T) {
	created := FormatResolution(resolver.Resolution{
		Outcome: resolver.Resolved, Item: testItem(), ItemID: testItem().ID, Created: true, Skill: "Context",
	})
	assert.Contains(t, created, "Created")
	assert.Contains(t, created, "skill Context")

	suggested := FormatResolution(resolver.Resolution{
		Outcome: resolver.Suggested,
		Suggestions: []resolver.Candidate{
			{ItemID: "abc", Name: "Binary Search", Shared: 8, Hint: "8 shared characters"},
		},
	})
	assert.Contains(t, suggested, "Did you mean")
	assert.Contains(t, suggested, "1. Binary Search")
	assert.Contains(t, suggested, "--new")
}

func TestFormatRecentSessions(t *testing.T) {
	views := []repository.SessionView{
		{Session: domain.Session{ID: "a", Date: day(2025, 3, 10), Status: domain.StatusCompleted, HoursSpent: 1.5, PointsAwarded: 3, Tags: []string{"tdd", "go"}}, ItemName: "Worker Pool", LanguageCode: "go"},
		{Session: domain.Session{ID: "b", Date: day(2025, 3, 9), Status: domain.StatusBlocked, HoursSpent: 1, PointsAwarded: 0}, ItemName: "Two Sum", LanguageCode: "python"},
	}
	out := FormatRecentSessions(views)
	assert.Contains(t, out, "Worker Pool")
	assert.Contains(t, out, "tdd,go")
	assert.Contains(t, out, "2 sessions, 2.5h, 3.0 points")
	assert.Contains(t, FormatRecentSessions(nil), "No sessions")
}

func TestFormatStatus(t *testing.T) {
	resp := &app.StatusResponse{
		GeneratedAt: now,
		RecentDays:  7,
		Languages: []app.LanguageStatusView{
			{Code: "go", Color: "#00ADD8", ActiveItems: 2, TotalLogs: 5, TotalHours: 6, TargetHours: 30, RecentHours: 4, TopItem: "Worker Pool", TopItemStreak: 2},
		},
		TotalHours:  6,
		RecentHours: 4,
	}
	out := FormatStatus(resp)
	assert.Contains(t, out, "LAST 7D")
	assert.Contains(t, out, "Worker Pool 2d")
	assert.Contains(t, out, "20%")
	assert.Contains(t, out, "As of 2025-03-10")

	assert.Contains(t, FormatStatus(&app.StatusResponse{RecentDays: 7}), "Nothing logged yet")
}

func TestFormatScoringConfig_MarksDefaults(t *testing.T) {
	cfg := domain.ScoringConfig{
		DifficultyWeights: map[string]float64{"Advanced": 2},
		StatusMultipliers: map[string]float64{},
	}
	out := FormatScoringConfig(cfg)
	var advanced, expert string
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "Advanced"):
			advanced = line
		case strings.HasPrefix(line, "Expert"):
			expert = line
		}
	}
	assert.Contains(t, advanced, "2")
	assert.NotContains(t, advanced, "(default)")
	assert.Contains(t, expert, "1 (default)")
	assert.Contains(t, out, "In Progress")
}
