package analysis

import (
	"golf-coach/internal/model"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats is the aggregate block of GET /api/stats.
type DashboardStats struct {
	TotalRounds         int                        `json:"totalRounds"`
	AverageScore        string                     `json:"averageScore"`
	BestScore           *int                       `json:"bestScore"`
	AverageDifferential string                     `json:"averageDifferential"`
	TotalActivities     int                        `json:"totalActivities"`
	ThisWeekActivities  int                        `json:"thisWeekActivities"`
	TotalHours          float64                    `json:"totalHours"`
	ActivityBreakdown   map[model.ActivityType]int `json:"activityBreakdown"`
	CurrentHandicap     *string                    `json:"currentHandicap"`
}

// Dashboard aggregates every round and activity of a user. Activities dated
// within the seven days before now count toward ThisWeekActivities.
func Dashboard(rounds []model.Round, activities []model.Activity, handicap decimal.NullDecimal, now time.Time) DashboardStats {
	st := DashboardStats{
		TotalRounds:         len(rounds),
		AverageScore:        "0.0",
		AverageDifferential: "0.0",
		TotalActivities:     len(activities),
		ActivityBreakdown:   make(map[model.ActivityType]int, len(model.ActivityTypes)),
	}
	for _, t := range model.ActivityTypes {
		st.ActivityBreakdown[t] = 0
	}
	if handicap.Valid {
		h := Fixed1(handicap.Decimal)
		st.CurrentHandicap = &h
	}

	if len(rounds) > 0 {
		scoreSum := decimal.Zero
		diffSum := decimal.Zero
		best := rounds[0].TotalScore
		for _, r := range rounds {
			scoreSum = scoreSum.Add(decimal.NewFromInt(int64(r.TotalScore)))
			diffSum = diffSum.Add(r.Differential)
			if r.TotalScore < best {
				best = r.TotalScore
			}
		}
		n := decimal.NewFromInt(int64(len(rounds)))
		st.AverageScore = scoreSum.Div(n).StringFixed(1)
		st.AverageDifferential = diffSum.Div(n).StringFixed(1)
		st.BestScore = &best
	}

	weekAgo := now.AddDate(0, 0, -7)
	minutes := 0
	for _, a := range activities {
		if !a.Date.Before(weekAgo) {
			st.ThisWeekActivities++
		}
		if a.Duration != nil {
			minutes += *a.Duration
		}
		st.ActivityBreakdown[a.ActivityType]++
	}
	st.TotalHours = round1(float64(minutes) / 60)
	return st
}

func round1(f float64) float64 { return math.Round(f*10) / 10 }
