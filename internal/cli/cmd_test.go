package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/codelog/internal/domain"
	"github.com/alexanderramin/codelog/internal/langpack"
	"github.com/alexanderramin/codelog/internal/repository"
	"github.com/alexanderramin/codelog/internal/resolver"
	"github.com/alexanderramin/codelog/internal/service"
	"github.com/alexanderramin/codelog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

type cliEnv struct {
	app   *App
	items *repository.SQLiteWorkItemRepo
	seed  func(name string, opts ...testutil.WorkItemOption) *domain.WorkItem
}

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) cliEnv {
	t.Helper()
	return testAppAt(t, testNow)
}

func testAppAt(t *testing.T, now time.Time) cliEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	packs := langpack.NewFileProvider("")
	clock := testutil.FixedClock(now)

	items := repository.NewSQLiteWorkItemRepo(database)
	sessions := repository.NewSQLiteSessionRepo(database)
	languages := repository.NewSQLiteLanguageRepo(database)

	app := &App{
		Sessions:      service.NewSessionService(sessions, uow, packs, clock),
		Items:         service.NewItemService(items, uow, packs, clock),
		Languages:     service.NewLanguageService(languages),
		Config:        service.NewConfigService(repository.NewSQLiteScoringConfigRepo(database)),
		Status:        service.NewStatusService(languages, items, sessions, clock),
		Now:           clock,
		IsInteractive: func() bool { return false },
	}
	return cliEnv{
		app:   app,
		items: items,
		seed: func(name string, opts ...testutil.WorkItemOption) *domain.WorkItem {
			return testutil.SeedItem(t, database, testutil.NewTestWorkItem(name, opts...))
		},
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func recentSessions(t *testing.T, app *App) []repository.SessionView {
	t.Helper()
	views, err := app.Sessions.ListRecent(context.Background(), 30)
	require.NoError(t, err)
	return views
}

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	env := testApp(t)

	output, err := executeCmd(t, env.app)
	require.NoError(t, err)
	assert.Contains(t, output, "codelog")
	assert.Contains(t, output, "session")
}

func TestRootCmd_AcceptsGlobalFlags(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "status", "--db", "/ignored.db", "-v")
	require.NoError(t, err)
}

// --- session log ---

func TestSessionLogCmd_RequiresItemAndHours(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "session", "log", "--hours", "1")
	assert.ErrorContains(t, err, "--item-id")

	_, err = executeCmd(t, env.app, "session", "log", "--lang", "go", "--name", "Two Sum")
	assert.ErrorContains(t, err, "--hours")

	_, err = executeCmd(t, env.app, "session", "log", "--name", "Two Sum", "--hours", "1")
	assert.ErrorContains(t, err, "--lang")

	_, err = executeCmd(t, env.app, "session", "log", "-l", "go", "-n", "Two Sum", "--hours", "-1")
	assert.ErrorContains(t, err, ">= 0")
}

func TestSessionLogCmd_ByNameCreatesItem(t *testing.T) {
	env := testApp(t)

	output, err := executeCmd(t, env.app, "session", "log",
		"-l", "go", "-n", "Worker Pool", "-t", "project", "-H", "2", "--tag", "goroutines,channels")
	require.NoError(t, err)
	assert.Contains(t, output, "Logged 2h on 2025-03-10")
	assert.Contains(t, output, "Worker Pool")

	views := recentSessions(t, env.app)
	require.Len(t, views, 1)
	assert.Equal(t, domain.ItemProject, views[0].ItemType)
	assert.Equal(t, []string{"goroutines", "channels"}, views[0].Session.Tags)
	assert.Equal(t, "Concurrency", views[0].Session.Topic)
}

func TestSessionLogCmd_ByItemIDPrefix(t *testing.T) {
	env := testApp(t)
	w := env.seed("Two Sum")

	_, err := executeCmd(t, env.app, "session", "log", "--item-id", w.ID[:8], "-H", "1.5",
		"--date", "yesterday", "--status", "in progress", "--notes", "hash map pass")
	require.NoError(t, err)

	views := recentSessions(t, env.app)
	require.Len(t, views, 1)
	s := views[0].Session
	assert.Equal(t, w.ID, s.ItemID)
	assert.Equal(t, testutil.Day(2025, 3, 9), s.Date)
	assert.Equal(t, domain.StatusInProgress, s.Status)
	assert.Equal(t, "hash map pass", s.Notes)
}

func TestSessionLogCmd_LocalEveningCountsAsToday(t *testing.T) {
	// 20:00 at UTC-7 is already the next day in UTC.
	evening := time.Date(2025, 3, 10, 20, 0, 0, 0, time.FixedZone("UTC-7", -7*3600))
	env := testAppAt(t, evening)
	w := env.seed("Two Sum")

	_, err := executeCmd(t, env.app, "session", "log", "--item-id", w.ID, "-H", "1")
	require.NoError(t, err)

	views := recentSessions(t, env.app)
	require.Len(t, views, 1)
	assert.Equal(t, testutil.Day(2025, 3, 10), views[0].Session.Date)

	item, err := env.app.Items.GetByID(context.Background(), w.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Stats.CurrentStreakDays)
}

func TestSessionLogCmd_SuggestionsFailWhenNotInteractive(t *testing.T) {
	env := testApp(t)
	env.seed("Binary Search")

	output, err := executeCmd(t, env.app, "session", "log", "-l", "go", "-n", "Binary Serch", "-H", "1")
	require.Error(t, err)

	var amb *service.AmbiguousItemError
	assert.ErrorAs(t, err, &amb)
	assert.Contains(t, output, "Did you mean")
	assert.Contains(t, output, "Binary Search")
	assert.Empty(t, recentSessions(t, env.app))
}

func TestSessionLogCmd_InteractivePickUsesExistingItem(t *testing.T) {
	env := testApp(t)
	w := env.seed("Binary Search")

	var offered []resolver.Candidate
	env.app.IsInteractive = func() bool { return true }
	env.app.Pick = func(_ context.Context, name string, c []resolver.Candidate) (string, error) {
		assert.Equal(t, "Binary Serch", name)
		offered = c
		return c[0].ItemID, nil
	}

	_, err := executeCmd(t, env.app, "session", "log", "-l", "go", "-n", "Binary Serch", "-H", "1")
	require.NoError(t, err)

	require.NotEmpty(t, offered)
	views := recentSessions(t, env.app)
	require.Len(t, views, 1)
	assert.Equal(t, w.ID, views[0].Session.ItemID)
}

func TestSessionLogCmd_InteractivePickNewCreatesItem(t *testing.T) {
	env := testApp(t)
	w := env.seed("Binary Search")

	env.app.IsInteractive = func() bool { return true }
	env.app.Pick = func(context.Context, string, []resolver.Candidate) (string, error) { return "", nil }

	_, err := executeCmd(t, env.app, "session", "log", "-l", "go", "-n", "Binary Serch", "-H", "1")
	require.NoError(t, err)

	views := recentSessions(t, env.app)
	require.Len(t, views, 1)
	assert.NotEqual(t, w.ID, views[0].Session.ItemID)
	assert.Equal(t, "Binary Serch", views[0].ItemName)
}

func TestSessionLogCmd_NewFlagSkipsSuggestions(t *testing.T) {
	env := testApp(t)
	env.seed("Binary Search")

	_, err := executeCmd(t, env.app, "session", "log", "-l", "go", "-n", "Binary Serch", "-H", "1", "--new")
	require.NoError(t, err)

	items, err := env.app.Items.List(context.Background(), repository.WorkItemFilter{})
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

// --- session edit / list / remove ---

func TestSessionEditCmd_KeepsUnsetFields(t *testing.T) {
	env := testApp(t)
	w := env.seed("Two Sum")
	_, err := executeCmd(t, env.app, "session", "log", "--item-id", w.ID, "-H", "1", "--notes", "first pass", "--tag", "arrays")
	require.NoError(t, err)
	id := recentSessions(t, env.app)[0].Session.ID

	output, err := executeCmd(t, env.app, "session", "edit", id[:8], "-H", "3")
	require.NoError(t, err)
	assert.Contains(t, output, "Updated 3h")

	s, err := env.app.Sessions.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 3.0, s.HoursSpent)
	assert.Equal(t, "first pass", s.Notes)
	assert.Equal(t, []string{"arrays"}, s.Tags)
	assert.Equal(t, 30.0, s.ProgressPct)

	item, err := env.app.Items.GetByID(context.Background(), w.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, item.Stats.TotalHours)
	assert.Equal(t, 1, item.Stats.TotalLogs)
}

func TestSessionEditCmd_RejectsBothItemSelectors(t *testing.T) {
	env := testApp(t)
	w := env.seed("Two Sum")
	_, err := executeCmd(t, env.app, "session", "log", "--item-id", w.ID, "-H", "1")
	require.NoError(t, err)
	id := recentSessions(t, env.app)[0].Session.ID

	_, err = executeCmd(t, env.app, "session", "edit", id, "--item-id", w.ID, "--name", "Other", "-l", "go")
	assert.ErrorContains(t, err, "not both")
}

func TestSessionListAndRemove(t *testing.T) {
	env := testApp(t)
	w := env.seed("Two Sum")
	_, err := executeCmd(t, env.app, "session", "log", "--item-id", w.ID, "-H", "2")
	require.NoError(t, err)

	output, err := executeCmd(t, env.app, "session", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "Two Sum")
	assert.Contains(t, output, "1 sessions, 2h")

	output, err = executeCmd(t, env.app, "session", "list", "--item-id", w.ID)
	require.NoError(t, err)
	assert.Contains(t, output, "2025-03-10")

	id := recentSessions(t, env.app)[0].Session.ID
	output, err = executeCmd(t, env.app, "session", "rm", id[:8])
	require.NoError(t, err)
	assert.Contains(t, output, "Removed session "+id)

	item, err := env.app.Items.GetByID(context.Background(), w.ID)
	require.NoError(t, err)
	// Removing the last session leaves the cached stats as they were.
	assert.Equal(t, 1, item.Stats.TotalLogs)
	assert.Equal(t, 2.0, item.Stats.TotalHours)
}

func TestSessionRemoveCmd_UnknownID(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "session", "remove", "does-not-exist")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// --- item commands ---

func TestItemResolveCmd(t *testing.T) {
	env := testApp(t)
	env.seed("Binary Search")

	output, err := executeCmd(t, env.app, "item", "resolve", "binary search", "-l", "go")
	require.NoError(t, err)
	assert.Contains(t, output, "Matched")

	output, err = executeCmd(t, env.app, "item", "resolve", "Binary Serch", "-l", "go")
	require.NoError(t, err)
	assert.Contains(t, output, "Did you mean")

	output, err = executeCmd(t, env.app, "item", "resolve", "Binary Serch", "-l", "go", "--new")
	require.NoError(t, err)
	assert.Contains(t, output, "Created")

	_, err = executeCmd(t, env.app, "item", "resolve", "!!!", "-l", "go")
	assert.ErrorIs(t, err, resolver.ErrInvalidName)

	_, err = executeCmd(t, env.app, "item", "resolve", "x")
	assert.Error(t, err, "--lang is required")
}

func TestItemListShowDeactivate(t *testing.T) {
	env := testApp(t)
	w := env.seed("Two Sum")
	env.seed("Todo API", testutil.WithItemType(domain.ItemProject), testutil.WithTargetHours(20))

	output, err := executeCmd(t, env.app, "item", "list", "--type", "project")
	require.NoError(t, err)
	assert.Contains(t, output, "Todo API")
	assert.NotContains(t, output, "Two Sum")

	output, err = executeCmd(t, env.app, "item", "show", w.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, output, "TWO SUM")
	assert.Contains(t, output, "two-sum")

	_, err = executeCmd(t, env.app, "item", "deactivate", w.ID)
	require.NoError(t, err)

	output, err = executeCmd(t, env.app, "item", "list")
	require.NoError(t, err)
	assert.NotContains(t, output, "Two Sum")

	output, err = executeCmd(t, env.app, "item", "list", "--all")
	require.NoError(t, err)
	assert.Contains(t, output, "Two Sum (inactive)")

	_, err = executeCmd(t, env.app, "session", "log", "--item-id", w.ID, "-H", "1")
	assert.ErrorIs(t, err, service.ErrItemInactive)
}

func TestItemRecomputeCmd(t *testing.T) {
	env := testApp(t)
	w := env.seed("Two Sum")
	env.seed("Valid Parentheses")
	_, err := executeCmd(t, env.app, "session", "log", "--item-id", w.ID, "-H", "2")
	require.NoError(t, err)

	output, err := executeCmd(t, env.app, "item", "recompute", w.ID)
	require.NoError(t, err)
	assert.Contains(t, output, "1 logs, 2h, streak 1d")

	output, err = executeCmd(t, env.app, "item", "recompute", "--all")
	require.NoError(t, err)
	assert.Contains(t, output, "Recomputed 2 work items")

	_, err = executeCmd(t, env.app, "item", "recompute")
	assert.Error(t, err)
	_, err = executeCmd(t, env.app, "item", "recompute", w.ID, "--all")
	assert.Error(t, err)
}

// --- language / config / status ---

func TestLanguageCmds(t *testing.T) {
	env := testApp(t)

	output, err := executeCmd(t, env.app, "language", "add", "Zig", "--name", "Zig", "--color", "#f7a41d")
	require.NoError(t, err)
	assert.Contains(t, output, "Added language zig")

	output, err = executeCmd(t, env.app, "lang", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "zig")
	assert.Contains(t, output, "python")

	_, err = executeCmd(t, env.app, "language", "add", "no spaces")
	assert.Error(t, err)
}

func TestConfigCmds(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "config", "set-weight", "expert", "3.5")
	require.NoError(t, err)
	_, err = executeCmd(t, env.app, "config", "set-multiplier", "blocked", "0")
	require.NoError(t, err)

	cfg, err := env.app.Config.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3.5, cfg.DifficultyWeight(string(domain.DifficultyExpert)))
	assert.Equal(t, 0.0, cfg.StatusMultiplier(string(domain.StatusBlocked)))

	output, err := executeCmd(t, env.app, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, output, "3.5")

	_, err = executeCmd(t, env.app, "config", "set-weight", "legendary", "2")
	assert.Error(t, err)
	_, err = executeCmd(t, env.app, "config", "set-weight", "expert", "lots")
	assert.ErrorContains(t, err, "invalid factor")
	_, err = executeCmd(t, env.app, "config", "set-multiplier", "completed", "-1")
	assert.Error(t, err)
}

func TestStatusCmd(t *testing.T) {
	env := testApp(t)

	output, err := executeCmd(t, env.app, "status")
	require.NoError(t, err)
	assert.Contains(t, output, "Nothing logged yet")

	_, err = executeCmd(t, env.app, "session", "log", "-l", "go", "-n", "Worker Pool", "-H", "2")
	require.NoError(t, err)

	output, err = executeCmd(t, env.app, "status", "--days", "3")
	require.NoError(t, err)
	assert.Contains(t, output, "LAST 3D")
	assert.Contains(t, output, "go")
	assert.Contains(t, output, "Worker Pool")
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"", testutil.Day(2025, 3, 10)},
		{"today", testutil.Day(2025, 3, 10)},
		{"Yesterday", testutil.Day(2025, 3, 9)},
		{"-3", testutil.Day(2025, 3, 7)},
		{"2025-02-28", testutil.Day(2025, 2, 28)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDate(tt.in, testNow)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseDate("03/10/2025", testNow)
	assert.Error(t, err)
}

// --- session import ---

func writeImportFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sessions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSessionImportCmd(t *testing.T) {
	env := testApp(t)
	path := writeImportFile(t, `
defaults:
  language: go
sessions:
  - item: Two Sum
    date: 2025-03-09
    hours: 2
  - item: Two Sum
    date: 2025-03-08
    hours: 1
`)

	output, err := executeCmd(t, env.app, "session", "import", path, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, output, "is valid: 2 sessions")
	assert.Empty(t, recentSessions(t, env.app))

	output, err = executeCmd(t, env.app, "session", "import", path)
	require.NoError(t, err)
	assert.Contains(t, output, "Imported 2 of 2 sessions")

	views := recentSessions(t, env.app)
	require.Len(t, views, 2)
	// Newest first; the older session was saved first so its snapshot only
	// counts itself.
	assert.Equal(t, testutil.Day(2025, 3, 9), views[0].Session.Date)
	// New exercises without a matching topic target 5h.
	assert.Equal(t, 60.0, views[0].Session.ProgressPct)
	assert.Equal(t, 20.0, views[1].Session.ProgressPct)
	assert.Equal(t, views[0].Session.ItemID, views[1].Session.ItemID)
}

func TestSessionImportCmd_ValidationWritesNothing(t *testing.T) {
	env := testApp(t)
	path := writeImportFile(t, `
sessions:
  - item: Two Sum
    language: go
    date: 2025-03-09
    hours: 2
  - item: Three Sum
    date: not-a-date
`)

	output, err := executeCmd(t, env.app, "session", "import", path)
	assert.ErrorContains(t, err, "3 validation errors")
	assert.Contains(t, output, "sessions[1].language")
	assert.Empty(t, recentSessions(t, env.app))
}

func TestSessionImportCmd_ReportsAmbiguousRows(t *testing.T) {
	env := testApp(t)
	env.seed("Binary Search")
	path := writeImportFile(t, `
defaults:
  language: go
sessions:
  - item: Binary Serch
    date: 2025-03-09
    hours: 1
  - item: Two Sum
    date: 2025-03-09
    hours: 1
`)

	output, err := executeCmd(t, env.app, "session", "import", path)
	assert.ErrorContains(t, err, "1 sessions were not imported")
	assert.Contains(t, output, "Binary Serch")
	assert.Contains(t, output, "Imported 1 of 2 sessions")
	assert.Len(t, recentSessions(t, env.app), 1)
}
