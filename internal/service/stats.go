package service

import (
	"context"
	"golf-coach/internal/analysis"
	"golf-coach/internal/model"
	"golf-coach/internal/store"
	"time"
)

const dashboardRecent = 5

type StatsService struct {
	store store.Store
	now   func() time.Time
}

func NewStatsService(st store.Store) *StatsService {
	return &StatsService{store: st, now: time.Now}
}

type Dashboard struct {
	analysis.DashboardStats
	RecentRounds     []model.Round
	RecentActivities []model.Activity
}

func (s *StatsService) User(ctx context.Context, userID int) (*model.User, error) {
	return s.store.GetUser(ctx, userID)
}

func (s *StatsService) Dashboard(ctx context.Context, userID int) (*Dashboard, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	rounds, err := s.store.ListRounds(ctx, userID)
	if err != nil {
		return nil, err
	}
	activities, err := s.store.ListActivities(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		DashboardStats:   analysis.Dashboard(rounds, activities, user.Handicap, s.now()),
		RecentRounds:     head(rounds, dashboardRecent),
		RecentActivities: head(activities, dashboardRecent),
	}, nil
}

func (s *StatsService) RoundPerformance(ctx context.Context, userID int) (analysis.RoundPerformance, error) {
	rounds, err := s.store.RecentRounds(ctx, userID, analysis.RecentWindow)
	if err != nil {
		return analysis.RoundPerformance{}, err
	}
	return analysis.AnalyzeRounds(rounds), nil
}

func (s *StatsService) ActivityPerformance(ctx context.Context, userID int) (analysis.ActivityPerformance, error) {
	activities, err := s.store.RecentActivities(ctx, userID, analysis.RecentWindow)
	if err != nil {
		return analysis.ActivityPerformance{}, err
	}
	return analysis.AnalyzeActivities(activities), nil
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
