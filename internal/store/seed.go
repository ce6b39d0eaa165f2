package store

import (
	"context"
	"errors"
	"fmt"
	"golf-coach/internal/analysis"
	"golf-coach/internal/common"
	"golf-coach/internal/logger"
	"golf-coach/internal/model"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const (
	DemoUsername = "mike.johnson"
	demoPassword = "password123"
)

func ptr[T any](v T) *T { return &v }

func date(s string) time.Time {
	t, _ := time.Parse(model.DateLayout, s)
	return t
}

func clock(s string) *time.Time {
	t, _ := time.Parse("2006-01-02T15:04", s)
	return &t
}

// at returns day shifted by the given hour and minute.
func at(day time.Time, hour, minute int) *time.Time {
	t := day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	return &t
}

// Seed loads the demo user together with sample rounds, activities and
// practice resources. It does nothing when the demo user already exists.
// Practice activities are dated relative to today.
func Seed(ctx context.Context, s Store) (*model.User, error) {
	if u, err := s.GetUserByUsername(ctx, DemoUsername); err == nil {
		return u, nil
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &model.User{
		Username: DemoUsername,
		Password: string(hash),
		Name:     "Mike Johnson",
		Handicap: decimal.NewNullDecimal(decimal.RequireFromString("12.4")),
	}
	if err := s.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("seed user: %w", err)
	}

	for _, r := range demoRounds(u.ID) {
		r.Differential = analysis.Differential(r.TotalScore, r.CourseRating, r.SlopeRating)
		if err := s.CreateRound(ctx, &r); err != nil {
			return nil, fmt.Errorf("seed round: %w", err)
		}
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	for _, a := range demoActivities(u.ID, today) {
		if err := s.CreateActivity(ctx, &a); err != nil {
			return nil, fmt.Errorf("seed activity: %w", err)
		}
	}
	for _, r := range demoResources(u.ID) {
		if err := s.CreateResource(ctx, &r); err != nil {
			return nil, fmt.Errorf("seed resource: %w", err)
		}
	}
	logger.Info("store.seed", "uid", u.ID, "username", u.Username)
	return u, nil
}

func rating(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func demoRounds(uid int) []model.Round {
	return []model.Round{
		{
			UserID: uid, Date: date("2024-12-15"), CourseName: "Pebble Beach Golf Links",
			TotalScore: 82, CourseRating: rating("72.1"), SlopeRating: ptr(131),
			FairwaysHit: ptr(10), GreensInRegulation: ptr(12), TotalPutts: ptr(29), Penalties: ptr(1),
		},
		{
			UserID: uid, Date: date("2024-12-08"), CourseName: "Torrey Pines South",
			TotalScore: 88, CourseRating: rating("74.6"), SlopeRating: ptr(136),
			FairwaysHit: ptr(6), GreensInRegulation: ptr(7), TotalPutts: ptr(33), Penalties: ptr(2),
		},
		{
			UserID: uid, Date: date("2024-12-01"), CourseName: "Presidio Golf Course",
			TotalScore: 85, CourseRating: rating("70.2"), SlopeRating: ptr(126),
			FairwaysHit: ptr(8), GreensInRegulation: ptr(8), TotalPutts: ptr(32),
		},
	}
}

func demoActivities(uid int, today time.Time) []model.Activity {
	rangeDay := today.AddDate(0, 0, -1)
	gymDay := today.AddDate(0, 0, -3)
	return []model.Activity{
		{
			UserID: uid, Date: date("2024-12-15"), ActivityType: model.ActivityOnCourse,
			SubType:   ptr("playing-18-holes-walking"),
			StartTime: clock("2024-12-15T08:00"), EndTime: clock("2024-12-15T12:30"), Duration: ptr(270),
			Comment: ptr("Beautiful morning round at Pebble Beach. Shot 82, felt great about my putting today."),
			Metadata: map[string]any{
				"course": "Pebble Beach Golf Links", "score": 82,
				"fairwaysHit": 10, "greensInRegulation": 12, "putts": 29,
			},
		},
		{
			UserID: uid, Date: rangeDay, ActivityType: model.ActivityPracticeArea,
			SubType:   ptr("driving-range"),
			StartTime: at(rangeDay, 17, 0), EndTime: at(rangeDay, 18, 0), Duration: ptr(60),
			Comment:  ptr("Worked on my driver swing. Hit about 80 balls, focusing on tempo."),
			Metadata: map[string]any{"bucketSize": "large", "ballsHit": 80, "focusArea": "driver-swing"},
		},
		{
			UserID: uid, Date: gymDay, ActivityType: model.ActivityOffCourse,
			SubType:   ptr("golf-strength-training"),
			StartTime: at(gymDay, 6, 30), EndTime: at(gymDay, 7, 30), Duration: ptr(60),
			Comment:  ptr("Core and rotational strength workout. Felt really good today."),
			Metadata: map[string]any{"workoutType": "core-and-rotation", "intensity": "moderate"},
		},
	}
}

func demoResources(uid int) []model.Resource {
	return []model.Resource{
		{
			UserID: uid, Type: model.ResourceFacility, Name: "City Driving Range",
			Description: ptr("Covered mats and grass tees"), Location: ptr("2 miles from home"),
			Hours: ptr("6am-10pm"), Cost: ptr("$15 per large bucket"), Available: true,
		},
		{
			UserID: uid, Type: model.ResourceFacility, Name: "Putting Green",
			Description: ptr("Practice green with chipping area"), Location: ptr("Home course"),
			Hours: ptr("Dawn to dusk"), Cost: ptr("Free for members"), Available: true,
		},
		{
			UserID: uid, Type: model.ResourceEquipment, Name: "Indoor Putting Mat",
			Description: ptr("10 ft mat with return"), Available: true,
		},
	}
}
