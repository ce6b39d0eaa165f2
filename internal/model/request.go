package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// POST /api/rounds. The differential is always computed server-side, so the
// request has no field for it.
type CreateRoundRequest struct {
	Date               string           `json:"date" binding:"required"`
	CourseName         string           `json:"courseName" binding:"required,max=128"`
	TotalScore         int              `json:"totalScore" binding:"required,min=18,max=200"`
	CourseRating       *decimal.Decimal `json:"courseRating"`
	SlopeRating        *int             `json:"slopeRating" binding:"omitempty,min=55,max=155"`
	FairwaysHit        *int             `json:"fairwaysHit" binding:"omitempty,min=0,max=14"`
	GreensInRegulation *int             `json:"greensInRegulation" binding:"omitempty,min=0,max=18"`
	TotalPutts         *int             `json:"totalPutts" binding:"omitempty,min=0,max=100"`
	Penalties          *int             `json:"penalties" binding:"omitempty,min=0,max=50"`
	ScreenshotURL      *string          `json:"screenshotUrl" binding:"omitempty,max=512"`
}

type CreateActivityRequest struct {
	Date         string         `json:"date" binding:"required"`
	ActivityType ActivityType   `json:"activityType" binding:"required,oneof=on-course practice-area off-course"`
	SubType      *string        `json:"subType"`
	StartTime    *time.Time     `json:"startTime"`
	EndTime      *time.Time     `json:"endTime"`
	Duration     *int           `json:"duration" binding:"omitempty,min=0,max=1440"`
	Comment      *string        `json:"comment" binding:"omitempty,max=2000"`
	Metadata     map[string]any `json:"metadata"`
}

// PATCH /api/activities/:id. Absent (or null) fields are left untouched.
type UpdateActivityRequest struct {
	Date         *string        `json:"date"`
	ActivityType *ActivityType  `json:"activityType" binding:"omitempty,oneof=on-course practice-area off-course"`
	SubType      *string        `json:"subType"`
	StartTime    *time.Time     `json:"startTime"`
	EndTime      *time.Time     `json:"endTime"`
	Duration     *int           `json:"duration" binding:"omitempty,min=0,max=1440"`
	Comment      *string        `json:"comment" binding:"omitempty,max=2000"`
	Metadata     map[string]any `json:"metadata"`
}

type CreateResourceRequest struct {
	Type        ResourceType `json:"type" binding:"required,oneof=facility equipment"`
	Name        string       `json:"name" binding:"required,max=128"`
	Description *string      `json:"description" binding:"omitempty,max=1000"`
	Location    *string      `json:"location" binding:"omitempty,max=256"`
	Hours       *string      `json:"hours" binding:"omitempty,max=128"`
	Cost        *string      `json:"cost" binding:"omitempty,max=64"`
	Available   *bool        `json:"available"`
}

type UpdateResourceRequest struct {
	Type        *ResourceType `json:"type" binding:"omitempty,oneof=facility equipment"`
	Name        *string       `json:"name" binding:"omitempty,min=1,max=128"`
	Description *string       `json:"description" binding:"omitempty,max=1000"`
	Location    *string       `json:"location" binding:"omitempty,max=256"`
	Hours       *string       `json:"hours" binding:"omitempty,max=128"`
	Cost        *string       `json:"cost" binding:"omitempty,max=64"`
	Available   *bool         `json:"available"`
}

// POST /api/practice-plans/generate
type GeneratePlanRequest struct {
	Name               string          `json:"name" binding:"max=128"`
	DaysPerWeek        int             `json:"daysPerWeek" binding:"required,min=1,max=7"`
	HoursPerSession    decimal.Decimal `json:"hoursPerSession"`
	PreferredTime      string          `json:"preferredTime" binding:"required,oneof=morning afternoon evening flexible"`
	AvailableResources []string        `json:"availableResources" binding:"max=50,dive,max=128"`
	PracticeGoal       string          `json:"practiceGoal" binding:"max=500"`
}

// ExtractedRound holds whatever round fields could be read from a scorecard
// screenshot. Unreadable fields stay nil.
type ExtractedRound struct {
	Date               *string          `json:"date,omitempty"`
	CourseName         *string          `json:"courseName,omitempty"`
	TotalScore         *int             `json:"totalScore,omitempty"`
	CourseRating       *decimal.Decimal `json:"courseRating,omitempty"`
	SlopeRating        *int             `json:"slopeRating,omitempty"`
	FairwaysHit        *int             `json:"fairwaysHit,omitempty"`
	GreensInRegulation *int             `json:"greensInRegulation,omitempty"`
	TotalPutts         *int             `json:"totalPutts,omitempty"`
	Penalties          *int             `json:"penalties,omitempty"`
}

func (e *ExtractedRound) Empty() bool {
	return e.Date == nil && e.CourseName == nil && e.TotalScore == nil &&
		e.CourseRating == nil && e.SlopeRating == nil && e.FairwaysHit == nil &&
		e.GreensInRegulation == nil && e.TotalPutts == nil && e.Penalties == nil
}
