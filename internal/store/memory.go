package store

import (
	"context"
	"fmt"
	"golf-coach/internal/common"
	"golf-coach/internal/model"
	"sort"
	"sync"
	"time"
)

// Memory is a map-backed Store. It is safe for concurrent use and hands out
// copies, so callers never alias stored records.
type Memory struct {
	mu sync.RWMutex

	users      map[int]model.User
	rounds     map[int]model.Round
	activities map[int]model.Activity
	resources  map[int]model.Resource
	plans      map[int]model.PracticePlan

	nextUser, nextRound, nextActivity, nextResource, nextPlan int

	now func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		users:      map[int]model.User{},
		rounds:     map[int]model.Round{},
		activities: map[int]model.Activity{},
		resources:  map[int]model.Resource{},
		plans:      map[int]model.PracticePlan{},
		now:        time.Now,
	}
}

func notFound(kind string, id int) error {
	return fmt.Errorf("%s %d: %w", kind, id, common.ErrNotFound)
}

func stamp(t *time.Time, now func() time.Time) {
	if t.IsZero() {
		*t = now()
	}
}

// --- users ---

func (m *Memory) GetUser(_ context.Context, id int) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, notFound("user", id)
	}
	u = cloneUser(u)
	return &u, nil
}

func (m *Memory) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username {
			u = cloneUser(u)
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, common.ErrNotFound)
}

func (m *Memory) CreateUser(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return fmt.Errorf("username %q already taken", u.Username)
		}
	}
	if u.ID == 0 {
		m.nextUser++
		u.ID = m.nextUser
	} else if u.ID > m.nextUser {
		m.nextUser = u.ID
	}
	stamp(&u.CreatedAt, m.now)
	m.users[u.ID] = cloneUser(*u)
	return nil
}

func (m *Memory) UpdateUser(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return notFound("user", u.ID)
	}
	m.users[u.ID] = cloneUser(*u)
	return nil
}

// --- rounds ---

func sortRounds(rs []model.Round) {
	sort.Slice(rs, func(i, j int) bool {
		if !rs[i].Date.Equal(rs[j].Date) {
			return rs[i].Date.After(rs[j].Date)
		}
		return rs[i].ID > rs[j].ID
	})
}

func (m *Memory) ListRounds(_ context.Context, userID int) ([]model.Round, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Round, 0)
	for _, r := range m.rounds {
		if r.UserID == userID {
			out = append(out, cloneRound(r))
		}
	}
	sortRounds(out)
	return out, nil
}

func (m *Memory) RecentRounds(ctx context.Context, userID, limit int) ([]model.Round, error) {
	rs, err := m.ListRounds(ctx, userID)
	if err != nil {
		return nil, err
	}
	return truncate(rs, limit), nil
}

func (m *Memory) GetRound(_ context.Context, id int) (*model.Round, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rounds[id]
	if !ok {
		return nil, notFound("round", id)
	}
	r = cloneRound(r)
	return &r, nil
}

func (m *Memory) CreateRound(_ context.Context, r *model.Round) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextRound++
	r.ID = m.nextRound
	if r.Source == "" {
		r.Source = model.RoundManual
	}
	stamp(&r.CreatedAt, m.now)
	m.rounds[r.ID] = cloneRound(*r)
	return nil
}

// --- activities ---

func sortActivities(as []model.Activity) {
	sort.Slice(as, func(i, j int) bool {
		if !as[i].Date.Equal(as[j].Date) {
			return as[i].Date.After(as[j].Date)
		}
		return as[i].ID > as[j].ID
	})
}

func (m *Memory) ListActivities(_ context.Context, userID int) ([]model.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Activity, 0)
	for _, a := range m.activities {
		if a.UserID == userID {
			out = append(out, cloneActivity(a))
		}
	}
	sortActivities(out)
	return out, nil
}

func (m *Memory) RecentActivities(ctx context.Context, userID, limit int) ([]model.Activity, error) {
	as, err := m.ListActivities(ctx, userID)
	if err != nil {
		return nil, err
	}
	return truncate(as, limit), nil
}

func (m *Memory) GetActivity(_ context.Context, id int) (*model.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.activities[id]
	if !ok {
		return nil, notFound("activity", id)
	}
	a = cloneActivity(a)
	return &a, nil
}

func (m *Memory) CreateActivity(_ context.Context, a *model.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextActivity++
	a.ID = m.nextActivity
	stamp(&a.CreatedAt, m.now)
	m.activities[a.ID] = cloneActivity(*a)
	return nil
}

func (m *Memory) UpdateActivity(_ context.Context, id int, p model.ActivityPatch) (*model.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.activities[id]
	if !ok {
		return nil, notFound("activity", id)
	}
	p.Apply(&a)
	a = cloneActivity(a)
	m.activities[id] = a
	out := cloneActivity(a)
	return &out, nil
}

// --- resources ---

func (m *Memory) ListResources(_ context.Context, userID int) ([]model.Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Resource, 0)
	for _, r := range m.resources {
		if r.UserID == userID {
			out = append(out, cloneResource(r))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) GetResource(_ context.Context, id int) (*model.Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.resources[id]
	if !ok {
		return nil, notFound("resource", id)
	}
	r = cloneResource(r)
	return &r, nil
}

func (m *Memory) CreateResource(_ context.Context, r *model.Resource) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextResource++
	r.ID = m.nextResource
	stamp(&r.CreatedAt, m.now)
	m.resources[r.ID] = cloneResource(*r)
	return nil
}

func (m *Memory) UpdateResource(_ context.Context, id int, p model.ResourcePatch) (*model.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resources[id]
	if !ok {
		return nil, notFound("resource", id)
	}
	p.Apply(&r)
	m.resources[id] = cloneResource(r)
	r = cloneResource(r)
	return &r, nil
}

// DeleteResource removes the resource if present. Deleting an unknown id is
// not an error.
func (m *Memory) DeleteResource(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.resources, id)
	return nil
}

// --- practice plans ---

func (m *Memory) ListPracticePlans(_ context.Context, userID int) ([]model.PracticePlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.PracticePlan, 0)
	for _, p := range m.plans {
		if p.UserID == userID {
			out = append(out, clonePlan(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *Memory) ActivePracticePlan(_ context.Context, userID int) (*model.PracticePlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var found *model.PracticePlan
	for _, p := range m.plans {
		if p.UserID == userID && p.Active && (found == nil || p.ID > found.ID) {
			cp := clonePlan(p)
			found = &cp
		}
	}
	if found == nil {
		return nil, fmt.Errorf("active plan for user %d: %w", userID, common.ErrNotFound)
	}
	return found, nil
}

func (m *Memory) CreatePracticePlan(_ context.Context, p *model.PracticePlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextPlan++
	p.ID = m.nextPlan
	stamp(&p.CreatedAt, m.now)
	m.plans[p.ID] = clonePlan(*p)
	return nil
}

func (m *Memory) DeactivatePracticePlans(_ context.Context, userID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, p := range m.plans {
		if p.UserID == userID && p.Active {
			p.Active = false
			m.plans[id] = p
		}
	}
	return nil
}

func truncate[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
