package app

import "time"

type StatusRequest struct {
	Now *time.Time
	// LanguageCode limits the report to one language when set.
	LanguageCode string
	RecentDays   int
}

func NewStatusRequest() StatusRequest {
	return StatusRequest{RecentDays: 7}
}

type LanguageStatusView struct {
	Code           string
	DisplayName    string
	Color          string
	ActiveItems    int
	CompletedItems int
	TotalLogs      int
	TotalHours     float64
	TargetHours    float64
	RecentHours    float64
	BestStreakDays int
	// TopItem is the active item with the longest current streak.
	TopItem       string
	TopItemStreak int
}

type StatusResponse struct {
	GeneratedAt time.Time
	RecentDays  int
	Languages   []LanguageStatusView
	TotalHours  float64
	RecentHours float64
}
