package service

import (
	"context"
	"golf-coach/internal/analysis"
	"golf-coach/internal/model"
	"golf-coach/internal/store"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	st, u := seeded(t)
	svc := NewStatsService(st)
	svc.now = func() time.Time { return time.Date(2024, 12, 16, 12, 0, 0, 0, time.UTC) }

	d, err := svc.Dashboard(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, d.TotalRounds)
	assert.Equal(t, 3, d.TotalActivities)
	require.NotNil(t, d.BestScore)
	assert.Equal(t, 82, *d.BestScore)
	require.NotNil(t, d.CurrentHandicap)
	assert.Equal(t, "12.4", *d.CurrentHandicap)
	assert.Len(t, d.RecentRounds, 3)
	assert.Equal(t, "Pebble Beach Golf Links", d.RecentRounds[0].CourseName)
}

func TestDashboardCountsSeededWeek(t *testing.T) {
	st, u := seeded(t)
	d, err := NewStatsService(st).Dashboard(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, d.ThisWeekActivities)
	require.Len(t, d.RecentActivities, 3)
	assert.Equal(t, model.ActivityPracticeArea, d.RecentActivities[0].ActivityType)
}

func TestDashboardCapsRecentLists(t *testing.T) {
	st, u := seeded(t)
	ctx := context.Background()
	for i := 0; i < 4; i++ {
		require.NoError(t, st.CreateRound(ctx, &model.Round{
			UserID: u.ID, Date: time.Date(2025, 1, i+1, 0, 0, 0, 0, time.UTC), CourseName: "Muni", TotalScore: 95,
		}))
	}

	d, err := NewStatsService(st).Dashboard(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, d.TotalRounds)
	assert.Len(t, d.RecentRounds, 5)
	assert.Equal(t, "2025-01-04", d.RecentRounds[0].Date.Format(model.DateLayout))
}

func TestPerformanceWithoutData(t *testing.T) {
	st := store.NewMemory()
	svc := NewStatsService(st)

	rp, err := svc.RoundPerformance(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, analysis.RatingNoData, rp.Putting.Rating)

	ap, err := svc.ActivityPerformance(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, analysis.RatingNoData, ap.Consistency.Rating)
}
