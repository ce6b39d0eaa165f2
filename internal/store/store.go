// Package store persists users, rounds, activities, practice resources and
// practice plans. Memory keeps everything in process; Gorm is backed by a SQL
// database. Both satisfy Store and return common.ErrNotFound for unknown ids.
package store

import (
	"context"
	"golf-coach/internal/model"
)

type Store interface {
	GetUser(ctx context.Context, id int) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, u *model.User) error
	// UpdateUser overwrites the stored user with u.
	UpdateUser(ctx context.Context, u *model.User) error

	// Rounds and activities are listed newest first.
	ListRounds(ctx context.Context, userID int) ([]model.Round, error)
	RecentRounds(ctx context.Context, userID, limit int) ([]model.Round, error)
	GetRound(ctx context.Context, id int) (*model.Round, error)
	CreateRound(ctx context.Context, r *model.Round) error

	ListActivities(ctx context.Context, userID int) ([]model.Activity, error)
	RecentActivities(ctx context.Context, userID, limit int) ([]model.Activity, error)
	GetActivity(ctx context.Context, id int) (*model.Activity, error)
	CreateActivity(ctx context.Context, a *model.Activity) error
	UpdateActivity(ctx context.Context, id int, p model.ActivityPatch) (*model.Activity, error)

	// Resources are listed by name.
	ListResources(ctx context.Context, userID int) ([]model.Resource, error)
	GetResource(ctx context.Context, id int) (*model.Resource, error)
	CreateResource(ctx context.Context, r *model.Resource) error
	UpdateResource(ctx context.Context, id int, p model.ResourcePatch) (*model.Resource, error)
	DeleteResource(ctx context.Context, id int) error

	// Plans are listed newest first.
	ListPracticePlans(ctx context.Context, userID int) ([]model.PracticePlan, error)
	ActivePracticePlan(ctx context.Context, userID int) (*model.PracticePlan, error)
	CreatePracticePlan(ctx context.Context, p *model.PracticePlan) error
	DeactivatePracticePlans(ctx context.Context, userID int) error
}
