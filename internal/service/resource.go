package service

import (
	"context"
	"errors"
	"golf-coach/internal/common"
	"golf-coach/internal/logger"
	"golf-coach/internal/model"
	"golf-coach/internal/store"
	"strings"
)

type ResourceService struct{ store store.Store }

func NewResourceService(st store.Store) *ResourceService { return &ResourceService{store: st} }

func (s *ResourceService) List(ctx context.Context, userID int) ([]model.Resource, error) {
	return s.store.ListResources(ctx, userID)
}

func (s *ResourceService) Create(ctx context.Context, userID int, req model.CreateResourceRequest) (*model.Resource, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, common.Invalid("name", "is required")
	}
	r := &model.Resource{
		UserID:      userID,
		Type:        req.Type,
		Name:        name,
		Description: req.Description,
		Location:    req.Location,
		Hours:       req.Hours,
		Cost:        req.Cost,
		Available:   true,
	}
	if req.Available != nil {
		r.Available = *req.Available
	}
	if err := s.store.CreateResource(ctx, r); err != nil {
		return nil, err
	}
	logger.Ctx(ctx).Info("resource.create", "uid", userID, "resource_id", r.ID)
	return r, nil
}

func (s *ResourceService) Update(ctx context.Context, userID, id int, req model.UpdateResourceRequest) (*model.Resource, error) {
	if err := s.owned(ctx, userID, id); err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, common.Invalid("name", "must not be empty")
		}
		req.Name = &name
	}
	return s.store.UpdateResource(ctx, id, model.ResourcePatch{
		Type:        req.Type,
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Hours:       req.Hours,
		Cost:        req.Cost,
		Available:   req.Available,
	})
}

// Delete is idempotent: unknown ids succeed. Resources of other users are
// left alone.
func (s *ResourceService) Delete(ctx context.Context, userID, id int) error {
	r, err := s.store.GetResource(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if r.UserID != userID {
		return nil
	}
	if err := s.store.DeleteResource(ctx, id); err != nil {
		return err
	}
	logger.Ctx(ctx).Info("resource.delete", "uid", userID, "resource_id", id)
	return nil
}

func (s *ResourceService) owned(ctx context.Context, userID, id int) error {
	r, err := s.store.GetResource(ctx, id)
	if err != nil {
		return err
	}
	if r.UserID != userID {
		return notOwned("resource", id)
	}
	return nil
}
