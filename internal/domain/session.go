package domain

import "time"

// DateLayout is the storage and CLI format for calendar dates.
const DateLayout = "2006-01-02"

type Session struct {
	ID            string
	ItemID        string
	Date          time.Time
	Status        SessionStatus
	HoursSpent    float64
	Notes         string
	Tags          []string
	Difficulty    Difficulty
	Topic         string
	PointsAwarded float64
	ProgressPct   float64
	CreatedAt     time.Time
}

// DateOf truncates t to its calendar date in t's own location and returns
// that date as midnight UTC, so dates compare and subtract in whole days.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
