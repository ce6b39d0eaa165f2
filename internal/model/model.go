package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type User struct {
	ID               int                 `gorm:"primaryKey" json:"id"`
	Username         string              `gorm:"uniqueIndex;size:64" json:"username"`
	Password         string              `json:"-"`
	Name             string              `json:"name"`
	Handicap         decimal.NullDecimal `gorm:"type:decimal(4,1)" json:"handicap"`
	GhinNumber       *string             `json:"ghinNumber"`
	GhinConnected    bool                `json:"ghinConnected"`
	GhinAccessToken  *string             `json:"-"`
	GhinRefreshToken *string             `json:"-"`
	GhinTokenExpiry  *time.Time          `json:"-"`
	LastGhinSync     *time.Time          `json:"lastGhinSync"`
	CreatedAt        time.Time           `json:"createdAt"`
}

type Round struct {
	ID                 int                 `gorm:"primaryKey" json:"id"`
	UserID             int                 `gorm:"index" json:"userId"`
	Date               time.Time           `gorm:"index" json:"date"`
	CourseName         string              `json:"courseName"`
	TotalScore         int                 `json:"totalScore"`
	CourseRating       decimal.NullDecimal `gorm:"type:decimal(4,1)" json:"courseRating"`
	SlopeRating        *int                `json:"slopeRating"`
	Differential       decimal.Decimal     `gorm:"type:decimal(4,1)" json:"differential"`
	FairwaysHit        *int                `json:"fairwaysHit"`
	GreensInRegulation *int                `json:"greensInRegulation"`
	TotalPutts         *int                `json:"totalPutts"`
	Penalties          *int                `json:"penalties"`
	ScreenshotURL      *string             `json:"screenshotUrl"`
	Source             RoundSource         `gorm:"size:16" json:"source"`
	Processed          bool                `json:"processed"`
	CreatedAt          time.Time           `json:"createdAt"`
}

type Activity struct {
	ID           int               `gorm:"primaryKey" json:"id"`
	UserID       int               `gorm:"index" json:"userId"`
	Date         time.Time         `gorm:"index" json:"date"`
	ActivityType ActivityType      `gorm:"size:32" json:"activityType"`
	SubType      *string           `gorm:"size:64" json:"subType"`
	StartTime    *time.Time        `json:"startTime"`
	EndTime      *time.Time        `json:"endTime"`
	Duration     *int              `json:"duration"` // minutes
	Comment      *string           `json:"comment"`
	Metadata     datatypes.JSONMap `json:"metadata"`
	CreatedAt    time.Time         `json:"createdAt"`
}

type Resource struct {
	ID          int          `gorm:"primaryKey" json:"id"`
	UserID      int          `gorm:"index" json:"userId"`
	Type        ResourceType `gorm:"size:16" json:"type"`
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	Location    *string      `json:"location"`
	Hours       *string      `json:"hours"`
	Cost        *string      `json:"cost"`
	Available   bool         `json:"available"`
	CreatedAt   time.Time    `json:"createdAt"`
}

type PracticePlan struct {
	ID                 int                              `gorm:"primaryKey" json:"id"`
	UserID             int                              `gorm:"index" json:"userId"`
	Name               string                           `json:"name"`
	DaysPerWeek        int                              `json:"daysPerWeek"`
	HoursPerSession    decimal.Decimal                  `gorm:"type:decimal(3,1)" json:"hoursPerSession"`
	PreferredTime      string                           `gorm:"size:16" json:"preferredTime"`
	FocusAreas         datatypes.JSONSlice[string]      `json:"focusAreas"`
	AvailableResources datatypes.JSONSlice[string]      `json:"availableResources"`
	WeeklySchedule     datatypes.JSONSlice[ScheduleDay] `json:"weeklySchedule"`
	AIRecommendations  string                           `json:"aiRecommendations"`
	Source             PlanSource                       `gorm:"size:16" json:"source"`
	Active             bool                             `gorm:"index" json:"active"`
	CreatedAt          time.Time                        `json:"createdAt"`
}

type ScheduleDay struct {
	Day        string             `json:"day"`
	Title      string             `json:"title"`
	Duration   string             `json:"duration"`
	Activities []ScheduleActivity `json:"activities"`
}

type ScheduleActivity struct {
	Name        string `json:"name"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Focus       string `json:"focus,omitempty"`
}

func (User) TableName() string         { return "users" }
func (Round) TableName() string        { return "rounds" }
func (Activity) TableName() string     { return "activities" }
func (Resource) TableName() string     { return "practice_resources" }
func (PracticePlan) TableName() string { return "practice_plans" }
