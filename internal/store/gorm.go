package store

import (
	"context"
	"errors"
	"fmt"
	"golf-coach/internal/common"
	"golf-coach/internal/model"

	"gorm.io/gorm"
)

// Gorm is the SQL-backed Store used when a database driver is configured.
type Gorm struct{ db *gorm.DB }

func NewGorm(db *gorm.DB) *Gorm { return &Gorm{db: db} }

// Migrate creates or updates every table the store needs.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Round{},
		&model.Activity{},
		&model.Resource{},
		&model.PracticePlan{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func first[T any](ctx context.Context, db *gorm.DB, kind string, id int) (*T, error) {
	var out T
	if err := db.WithContext(ctx).First(&out, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(kind, id)
		}
		return nil, fmt.Errorf("query %s %d: %w", kind, id, err)
	}
	return &out, nil
}

// --- users ---

func (s *Gorm) GetUser(ctx context.Context, id int) (*model.User, error) {
	return first[model.User](ctx, s.db, "user", id)
}

func (s *Gorm) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %q: %w", username, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query user %q: %w", username, err)
	}
	return &u, nil
}

func (s *Gorm) CreateUser(ctx context.Context, u *model.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Gorm) UpdateUser(ctx context.Context, u *model.User) error {
	res := s.db.WithContext(ctx).Model(u).Select("*").Omit("id", "created_at").Updates(u)
	if res.Error != nil {
		return fmt.Errorf("update user %d: %w", u.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := s.GetUser(ctx, u.ID); err != nil {
			return err
		}
	}
	return nil
}

// --- rounds ---

func (s *Gorm) ListRounds(ctx context.Context, userID int) ([]model.Round, error) {
	return s.RecentRounds(ctx, userID, 0)
}

func (s *Gorm) RecentRounds(ctx context.Context, userID, limit int) ([]model.Round, error) {
	rs := make([]model.Round, 0)
	q := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("date DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rs).Error; err != nil {
		return nil, fmt.Errorf("query rounds: %w", err)
	}
	return rs, nil
}

func (s *Gorm) GetRound(ctx context.Context, id int) (*model.Round, error) {
	return first[model.Round](ctx, s.db, "round", id)
}

func (s *Gorm) CreateRound(ctx context.Context, r *model.Round) error {
	if r.Source == "" {
		r.Source = model.RoundManual
	}
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("insert round: %w", err)
	}
	return nil
}

// --- activities ---

func (s *Gorm) ListActivities(ctx context.Context, userID int) ([]model.Activity, error) {
	return s.RecentActivities(ctx, userID, 0)
}

func (s *Gorm) RecentActivities(ctx context.Context, userID, limit int) ([]model.Activity, error) {
	as := make([]model.Activity, 0)
	q := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("date DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&as).Error; err != nil {
		return nil, fmt.Errorf("query activities: %w", err)
	}
	for i := range as {
		as[i].Metadata = normalizeMetadata(as[i].Metadata)
	}
	return as, nil
}

func (s *Gorm) GetActivity(ctx context.Context, id int) (*model.Activity, error) {
	a, err := first[model.Activity](ctx, s.db, "activity", id)
	if err != nil {
		return nil, err
	}
	a.Metadata = normalizeMetadata(a.Metadata)
	return a, nil
}

func (s *Gorm) CreateActivity(ctx context.Context, a *model.Activity) error {
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (s *Gorm) UpdateActivity(ctx context.Context, id int, p model.ActivityPatch) (*model.Activity, error) {
	var out *model.Activity
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := first[model.Activity](ctx, tx, "activity", id)
		if err != nil {
			return err
		}
		p.Apply(a)
		if err := tx.Save(a).Error; err != nil {
			return fmt.Errorf("update activity %d: %w", id, err)
		}
		a.Metadata = normalizeMetadata(a.Metadata)
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// --- resources ---

func (s *Gorm) ListResources(ctx context.Context, userID int) ([]model.Resource, error) {
	rs := make([]model.Resource, 0)
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC").Order("id ASC").Find(&rs).Error
	if err != nil {
		return nil, fmt.Errorf("query resources: %w", err)
	}
	return rs, nil
}

func (s *Gorm) GetResource(ctx context.Context, id int) (*model.Resource, error) {
	return first[model.Resource](ctx, s.db, "resource", id)
}

func (s *Gorm) CreateResource(ctx context.Context, r *model.Resource) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("insert resource: %w", err)
	}
	return nil
}

func (s *Gorm) UpdateResource(ctx context.Context, id int, p model.ResourcePatch) (*model.Resource, error) {
	var out *model.Resource
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := first[model.Resource](ctx, tx, "resource", id)
		if err != nil {
			return err
		}
		p.Apply(r)
		if err := tx.Save(r).Error; err != nil {
			return fmt.Errorf("update resource %d: %w", id, err)
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Gorm) DeleteResource(ctx context.Context, id int) error {
	if err := s.db.WithContext(ctx).Delete(&model.Resource{}, id).Error; err != nil {
		return fmt.Errorf("delete resource %d: %w", id, err)
	}
	return nil
}

// --- practice plans ---

func (s *Gorm) ListPracticePlans(ctx context.Context, userID int) ([]model.PracticePlan, error) {
	ps := make([]model.PracticePlan, 0)
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC").Find(&ps).Error
	if err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}
	return ps, nil
}

func (s *Gorm) ActivePracticePlan(ctx context.Context, userID int) (*model.PracticePlan, error) {
	var p model.PracticePlan
	err := s.db.WithContext(ctx).Where("user_id = ? AND active = ?", userID, true).Order("id DESC").First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("active plan for user %d: %w", userID, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query active plan: %w", err)
	}
	return &p, nil
}

func (s *Gorm) CreatePracticePlan(ctx context.Context, p *model.PracticePlan) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

func (s *Gorm) DeactivatePracticePlans(ctx context.Context, userID int) error {
	err := s.db.WithContext(ctx).Model(&model.PracticePlan{}).
		Where("user_id = ? AND active = ?", userID, true).
		Update("active", false).Error
	if err != nil {
		return fmt.Errorf("deactivate plans: %w", err)
	}
	return nil
}
