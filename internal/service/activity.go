package service

import (
	"context"
	"fmt"
	"golf-coach/internal/common"
	"golf-coach/internal/logger"
	"golf-coach/internal/model"
	"golf-coach/internal/store"
)

type ActivityService struct{ store store.Store }

func NewActivityService(st store.Store) *ActivityService { return &ActivityService{store: st} }

// notOwned hides records of other users behind a plain not-found.
func notOwned(kind string, id int) error {
	return fmt.Errorf("%s %d: %w", kind, id, common.ErrNotFound)
}

func (s *ActivityService) List(ctx context.Context, userID int) ([]model.Activity, error) {
	return s.store.ListActivities(ctx, userID)
}

func (s *ActivityService) Get(ctx context.Context, userID, id int) (*model.Activity, error) {
	a, err := s.store.GetActivity(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, notOwned("activity", id)
	}
	return a, nil
}

func (s *ActivityService) Create(ctx context.Context, userID int, req model.CreateActivityRequest) (*model.Activity, error) {
	date, err := model.ParseDate(req.Date)
	if err != nil {
		return nil, common.Invalid("date", "must be YYYY-MM-DD")
	}
	a := &model.Activity{
		UserID:       userID,
		Date:         date,
		ActivityType: req.ActivityType,
		SubType:      req.SubType,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Duration:     req.Duration,
		Comment:      req.Comment,
		Metadata:     req.Metadata,
	}
	if err := normalizeActivity(a); err != nil {
		return nil, err
	}
	if err := s.store.CreateActivity(ctx, a); err != nil {
		return nil, err
	}
	logger.Ctx(ctx).Info("activity.create", "uid", userID, "activity_id", a.ID, "type", a.ActivityType)
	return a, nil
}

// Update merges the provided fields into the stored activity and re-checks
// the result as a whole.
func (s *ActivityService) Update(ctx context.Context, userID, id int, req model.UpdateActivityRequest) (*model.Activity, error) {
	current, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	patch := model.ActivityPatch{
		ActivityType: req.ActivityType,
		SubType:      req.SubType,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Duration:     req.Duration,
		Comment:      req.Comment,
		Metadata:     req.Metadata,
	}
	if req.Date != nil {
		d, err := model.ParseDate(*req.Date)
		if err != nil {
			return nil, common.Invalid("date", "must be YYYY-MM-DD")
		}
		patch.Date = &d
	}

	merged := *current
	patch.Apply(&merged)
	// A new time window without an explicit duration recomputes it.
	if req.Duration == nil && (req.StartTime != nil || req.EndTime != nil) {
		merged.Duration = nil
	}
	if err := normalizeActivity(&merged); err != nil {
		return nil, err
	}
	patch.Duration = merged.Duration

	updated, err := s.store.UpdateActivity(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	logger.Ctx(ctx).Info("activity.update", "uid", userID, "activity_id", id)
	return updated, nil
}

// normalizeActivity checks the sub-type against its category and derives the
// duration from the time window when it was not given.
func normalizeActivity(a *model.Activity) error {
	if a.SubType != nil && *a.SubType != "" && !model.ValidSubType(a.ActivityType, *a.SubType) {
		return common.Invalid("subType", fmt.Sprintf("%q is not a %s activity", *a.SubType, a.ActivityType))
	}
	if a.StartTime != nil && a.EndTime != nil {
		if a.EndTime.Before(*a.StartTime) {
			return common.Invalid("endTime", "must not be before startTime")
		}
		if a.Duration == nil {
			minutes := int(a.EndTime.Sub(*a.StartTime).Minutes())
			a.Duration = &minutes
		}
	}
	return nil
}
