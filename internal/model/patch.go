package model

import "time"

// ActivityPatch is a shallow merge: nil fields keep their stored value.
type ActivityPatch struct {
	Date         *time.Time
	ActivityType *ActivityType
	SubType      *string
	StartTime    *time.Time
	EndTime      *time.Time
	Duration     *int
	Comment      *string
	Metadata     map[string]any
}

func (p ActivityPatch) Apply(a *Activity) {
	if p.Date != nil {
		a.Date = *p.Date
	}
	if p.ActivityType != nil {
		a.ActivityType = *p.ActivityType
	}
	if p.SubType != nil {
		a.SubType = p.SubType
	}
	if p.StartTime != nil {
		a.StartTime = p.StartTime
	}
	if p.EndTime != nil {
		a.EndTime = p.EndTime
	}
	if p.Duration != nil {
		a.Duration = p.Duration
	}
	if p.Comment != nil {
		a.Comment = p.Comment
	}
	if p.Metadata != nil {
		a.Metadata = p.Metadata
	}
}

type ResourcePatch struct {
	Type        *ResourceType
	Name        *string
	Description *string
	Location    *string
	Hours       *string
	Cost        *string
	Available   *bool
}

func (p ResourcePatch) Apply(r *Resource) {
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Description != nil {
		r.Description = p.Description
	}
	if p.Location != nil {
		r.Location = p.Location
	}
	if p.Hours != nil {
		r.Hours = p.Hours
	}
	if p.Cost != nil {
		r.Cost = p.Cost
	}
	if p.Available != nil {
		r.Available = *p.Available
	}
}
