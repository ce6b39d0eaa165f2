package store

import (
	"encoding/json"
	"golf-coach/internal/model"
	"maps"
	"slices"

	"gorm.io/datatypes"
)

// normalizeMetadata returns a deep copy of m in the shape encoding/json
// produces for a map[string]any: numbers are float64, nested objects are
// map[string]any. Both stores hand out metadata in this form.
func normalizeMetadata(m datatypes.JSONMap) datatypes.JSONMap {
	if m == nil {
		return nil
	}
	data, err := json.Marshal(map[string]any(m))
	if err != nil {
		return maps.Clone(m)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return maps.Clone(m)
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneUser(u model.User) model.User {
	u.GhinNumber = clonePtr(u.GhinNumber)
	u.GhinAccessToken = clonePtr(u.GhinAccessToken)
	u.GhinRefreshToken = clonePtr(u.GhinRefreshToken)
	u.GhinTokenExpiry = clonePtr(u.GhinTokenExpiry)
	u.LastGhinSync = clonePtr(u.LastGhinSync)
	return u
}

func cloneRound(r model.Round) model.Round {
	r.SlopeRating = clonePtr(r.SlopeRating)
	r.FairwaysHit = clonePtr(r.FairwaysHit)
	r.GreensInRegulation = clonePtr(r.GreensInRegulation)
	r.TotalPutts = clonePtr(r.TotalPutts)
	r.Penalties = clonePtr(r.Penalties)
	r.ScreenshotURL = clonePtr(r.ScreenshotURL)
	return r
}

func cloneActivity(a model.Activity) model.Activity {
	a.SubType = clonePtr(a.SubType)
	a.StartTime = clonePtr(a.StartTime)
	a.EndTime = clonePtr(a.EndTime)
	a.Duration = clonePtr(a.Duration)
	a.Comment = clonePtr(a.Comment)
	a.Metadata = normalizeMetadata(a.Metadata)
	return a
}

func cloneResource(r model.Resource) model.Resource {
	r.Description = clonePtr(r.Description)
	r.Location = clonePtr(r.Location)
	r.Hours = clonePtr(r.Hours)
	r.Cost = clonePtr(r.Cost)
	return r
}

func clonePlan(p model.PracticePlan) model.PracticePlan {
	p.FocusAreas = slices.Clone(p.FocusAreas)
	p.AvailableResources = slices.Clone(p.AvailableResources)
	if p.WeeklySchedule != nil {
		days := make([]model.ScheduleDay, len(p.WeeklySchedule))
		for i, d := range p.WeeklySchedule {
			d.Activities = slices.Clone(d.Activities)
			days[i] = d
		}
		p.WeeklySchedule = days
	}
	return p
}
