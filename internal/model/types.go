package model

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

type ActivityType string

const (
	ActivityOnCourse     ActivityType = "on-course"
	ActivityPracticeArea ActivityType = "practice-area"
	ActivityOffCourse    ActivityType = "off-course"
)

// ActivityTypes lists the categories in display order.
var ActivityTypes = []ActivityType{ActivityOnCourse, ActivityPracticeArea, ActivityOffCourse}

var activitySubTypes = map[ActivityType][]string{
	ActivityOnCourse: {
		"playing-9-holes-walking",
		"playing-9-holes-riding",
		"playing-18-holes-walking",
		"playing-18-holes-riding",
	},
	ActivityPracticeArea: {
		"driving-range",
		"putting-practice",
		"chipping-practice",
		"wedge-work",
		"short-game-all-around",
	},
	ActivityOffCourse: {
		"golf-strength-training",
		"cardio-workout",
		"flexibility-stretching",
		"hitting-balls-at-home",
	},
}

// SubTypes returns the sub-types allowed for t, nil for an unknown category.
func SubTypes(t ActivityType) []string { return activitySubTypes[t] }

func ValidSubType(t ActivityType, sub string) bool {
	for _, s := range activitySubTypes[t] {
		if s == sub {
			return true
		}
	}
	return false
}

type ResourceType string

const (
	ResourceFacility  ResourceType = "facility"
	ResourceEquipment ResourceType = "equipment"
)

type RoundSource string

const (
	RoundManual     RoundSource = "manual"
	RoundGHIN       RoundSource = "ghin"
	RoundScreenshot RoundSource = "screenshot"
)

type PlanSource string

const (
	PlanAI       PlanSource = "ai"
	PlanFallback PlanSource = "fallback"
)

// ParseDate accepts a bare date or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
