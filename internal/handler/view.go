package handler

import (
	"golf-coach/internal/analysis"
	"golf-coach/internal/model"
	"golf-coach/internal/service"
	"time"

	"github.com/shopspring/decimal"
)

// Response shapes. Dates go out as YYYY-MM-DD and decimals as strings with
// one fractional digit.

type RoundView struct {
	ID                 int               `json:"id"`
	UserID             int               `json:"userId"`
	Date               string            `json:"date"`
	CourseName         string            `json:"courseName"`
	TotalScore         int               `json:"totalScore"`
	CourseRating       *string           `json:"courseRating"`
	SlopeRating        *int              `json:"slopeRating"`
	Differential       string            `json:"differential"`
	FairwaysHit        *int              `json:"fairwaysHit"`
	GreensInRegulation *int              `json:"greensInRegulation"`
	TotalPutts         *int              `json:"totalPutts"`
	Penalties          *int              `json:"penalties"`
	ScreenshotURL      *string           `json:"screenshotUrl"`
	Source             model.RoundSource `json:"source"`
	Processed          bool              `json:"processed"`
	CreatedAt          time.Time         `json:"createdAt"`
}

type ActivityView struct {
	ID           int                `json:"id"`
	UserID       int                `json:"userId"`
	Date         string             `json:"date"`
	ActivityType model.ActivityType `json:"activityType"`
	SubType      *string            `json:"subType"`
	StartTime    *time.Time         `json:"startTime"`
	EndTime      *time.Time         `json:"endTime"`
	Duration     *int               `json:"duration"`
	Comment      *string            `json:"comment"`
	Metadata     map[string]any     `json:"metadata"`
	CreatedAt    time.Time          `json:"createdAt"`
}

type UserView struct {
	ID            int        `json:"id"`
	Username      string     `json:"username"`
	Name          string     `json:"name"`
	Handicap      *string    `json:"handicap"`
	GhinNumber    *string    `json:"ghinNumber"`
	GhinConnected bool       `json:"ghinConnected"`
	LastGhinSync  *time.Time `json:"lastGhinSync"`
}

type PlanView struct {
	ID                 int                 `json:"id"`
	UserID             int                 `json:"userId"`
	Name               string              `json:"name"`
	DaysPerWeek        int                 `json:"daysPerWeek"`
	HoursPerSession    string              `json:"hoursPerSession"`
	PreferredTime      string              `json:"preferredTime"`
	FocusAreas         []string            `json:"focusAreas"`
	AvailableResources []string            `json:"availableResources"`
	WeeklySchedule     []model.ScheduleDay `json:"weeklySchedule"`
	AIRecommendations  string              `json:"aiRecommendations"`
	Source             model.PlanSource    `json:"source"`
	Active             bool                `json:"active"`
	CreatedAt          time.Time           `json:"createdAt"`
}

type DashboardView struct {
	analysis.DashboardStats
	RecentRounds     []RoundView    `json:"recentRounds"`
	RecentActivities []ActivityView `json:"recentActivities"`
}

type SyncView struct {
	Imported     int       `json:"imported"`
	Skipped      int       `json:"skipped"`
	Handicap     *string   `json:"handicap"`
	LastGhinSync time.Time `json:"lastGhinSync"`
}

func nullFixed1(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := analysis.Fixed1(d.Decimal)
	return &s
}

func roundView(r model.Round) RoundView {
	return RoundView{
		ID:                 r.ID,
		UserID:             r.UserID,
		Date:               r.Date.Format(model.DateLayout),
		CourseName:         r.CourseName,
		TotalScore:         r.TotalScore,
		CourseRating:       nullFixed1(r.CourseRating),
		SlopeRating:        r.SlopeRating,
		Differential:       analysis.Fixed1(r.Differential),
		FairwaysHit:        r.FairwaysHit,
		GreensInRegulation: r.GreensInRegulation,
		TotalPutts:         r.TotalPutts,
		Penalties:          r.Penalties,
		ScreenshotURL:      r.ScreenshotURL,
		Source:             r.Source,
		Processed:          r.Processed,
		CreatedAt:          r.CreatedAt,
	}
}

func roundViews(rs []model.Round) []RoundView {
	out := make([]RoundView, 0, len(rs))
	for _, r := range rs {
		out = append(out, roundView(r))
	}
	return out
}

func activityView(a model.Activity) ActivityView {
	meta := map[string]any(a.Metadata)
	if meta == nil {
		meta = map[string]any{}
	}
	return ActivityView{
		ID:           a.ID,
		UserID:       a.UserID,
		Date:         a.Date.Format(model.DateLayout),
		ActivityType: a.ActivityType,
		SubType:      a.SubType,
		StartTime:    a.StartTime,
		EndTime:      a.EndTime,
		Duration:     a.Duration,
		Comment:      a.Comment,
		Metadata:     meta,
		CreatedAt:    a.CreatedAt,
	}
}

func activityViews(as []model.Activity) []ActivityView {
	out := make([]ActivityView, 0, len(as))
	for _, a := range as {
		out = append(out, activityView(a))
	}
	return out
}

func userView(u *model.User) UserView {
	return UserView{
		ID:            u.ID,
		Username:      u.Username,
		Name:          u.Name,
		Handicap:      nullFixed1(u.Handicap),
		GhinNumber:    u.GhinNumber,
		GhinConnected: u.GhinConnected,
		LastGhinSync:  u.LastGhinSync,
	}
}

func planView(p *model.PracticePlan) PlanView {
	return PlanView{
		ID:                 p.ID,
		UserID:             p.UserID,
		Name:               p.Name,
		DaysPerWeek:        p.DaysPerWeek,
		HoursPerSession:    analysis.Fixed1(p.HoursPerSession),
		PreferredTime:      p.PreferredTime,
		FocusAreas:         orEmpty(p.FocusAreas),
		AvailableResources: orEmpty(p.AvailableResources),
		WeeklySchedule:     orEmpty(p.WeeklySchedule),
		AIRecommendations:  p.AIRecommendations,
		Source:             p.Source,
		Active:             p.Active,
		CreatedAt:          p.CreatedAt,
	}
}

func dashboardView(d *service.Dashboard) DashboardView {
	return DashboardView{
		DashboardStats:   d.DashboardStats,
		RecentRounds:     roundViews(d.RecentRounds),
		RecentActivities: activityViews(d.RecentActivities),
	}
}

func syncView(r *service.SyncResult) SyncView {
	return SyncView{
		Imported:     r.Imported,
		Skipped:      r.Skipped,
		Handicap:     nullFixed1(r.Handicap),
		LastGhinSync: r.SyncedAt,
	}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
