package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/codelog/internal/domain"
)

// parseDate accepts YYYY-MM-DD, "today", "yesterday" and "-N" (N days ago).
func parseDate(input string, now time.Time) (time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	today := domain.DateOf(now)
	switch s {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}
	if strings.HasPrefix(s, "-") {
		var n int
		if _, err := fmt.Sscanf(s, "-%d", &n); err == nil && n >= 0 {
			return today.AddDate(0, 0, -n), nil
		}
	}
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD, today, yesterday or -N)", input)
	}
	return d, nil
}

// resolveItemArg expands an item id or the short prefix shown in listings.
func resolveItemArg(ctx context.Context, app *App, input string) (string, error) {
	id, err := app.Items.ResolveID(ctx, input)
	if err != nil {
		return "", fmt.Errorf("work item %q: %w", input, err)
	}
	return id, nil
}

func resolveSessionArg(ctx context.Context, app *App, input string) (string, error) {
	id, err := app.Sessions.ResolveID(ctx, input)
	if err != nil {
		return "", fmt.Errorf("session %q: %w", input, err)
	}
	return id, nil
}

func parseTypeFlag(s string) (domain.ItemType, error) {
	if s == "" {
		return domain.ItemExercise, nil
	}
	return domain.ParseItemType(s)
}
