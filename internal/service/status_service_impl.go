package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/codelog/internal/app"
	"github.com/alexanderramin/codelog/internal/domain"
	"github.com/alexanderramin/codelog/internal/repository"
)

type statusService struct {
	languages repository.LanguageRepo
	items     repository.WorkItemRepo
	sessions  repository.SessionRepo
	now       Clock
}

func NewStatusService(
	languages repository.LanguageRepo,
	items repository.WorkItemRepo,
	sessions repository.SessionRepo,
	now Clock,
) StatusService {
	return &statusService{
		languages: languages,
		items:     items,
		sessions:  sessions,
		now:       clockOrSystem(now),
	}
}

// GetStatus summarizes cached item stats per language. Languages without
// items or recent hours are left out unless asked for by code.
func (s *statusService) GetStatus(ctx context.Context, req app.StatusRequest) (*app.StatusResponse, error) {
	now := s.now()
	if req.Now != nil {
		now = *req.Now
	}
	days := req.RecentDays
	if days <= 0 {
		days = 7
	}

	languages, err := s.languages.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("loading languages: %w", err)
	}
	items, err := s.items.List(ctx, repository.WorkItemFilter{LanguageCode: req.LanguageCode})
	if err != nil {
		return nil, fmt.Errorf("loading work items: %w", err)
	}
	since := domain.DateOf(now).AddDate(0, 0, -(days - 1))
	recent, err := s.sessions.ListSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("loading recent sessions: %w", err)
	}

	byLang := make(map[string]*app.LanguageStatusView, len(languages))
	for _, l := range languages {
		byLang[l.Code] = &app.LanguageStatusView{Code: l.Code, DisplayName: l.DisplayName, Color: l.Color}
	}

	for _, w := range items {
		v, ok := byLang[w.LanguageCode]
		if !ok {
			continue
		}
		accumulateItem(v, w)
	}

	resp := &app.StatusResponse{GeneratedAt: now, RecentDays: days}
	for _, sv := range recent {
		if req.LanguageCode != "" && sv.LanguageCode != req.LanguageCode {
			continue
		}
		if v, ok := byLang[sv.LanguageCode]; ok {
			v.RecentHours += sv.Session.HoursSpent
		}
		resp.RecentHours += sv.Session.HoursSpent
	}

	for _, l := range languages {
		v := byLang[l.Code]
		if req.LanguageCode != "" {
			if l.Code != req.LanguageCode {
				continue
			}
		} else if v.ActiveItems == 0 && v.RecentHours == 0 {
			continue
		}
		resp.TotalHours += v.TotalHours
		resp.Languages = append(resp.Languages, *v)
	}
	return resp, nil
}

func accumulateItem(v *app.LanguageStatusView, w *domain.WorkItem) {
	v.ActiveItems++
	v.TotalLogs += w.Stats.TotalLogs
	v.TotalHours += w.Stats.TotalHours
	v.TargetHours += w.TargetHours
	if w.TargetHours > 0 && w.Stats.TotalHours >= w.TargetHours {
		v.CompletedItems++
	}
	v.BestStreakDays = max(v.BestStreakDays, w.Stats.LongestStreakDays)

	streak := w.Stats.CurrentStreakDays
	if streak > 0 && (streak > v.TopItemStreak || (streak == v.TopItemStreak && w.CanonicalName < v.TopItem)) {
		v.TopItem = w.CanonicalName
		v.TopItemStreak = streak
	}
}
