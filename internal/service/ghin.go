package service

import (
	"context"
	"fmt"
	"golf-coach/internal/common"
	"golf-coach/internal/ghin"
	"golf-coach/internal/logger"
	"golf-coach/internal/model"
	"golf-coach/internal/store"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type GHINClient interface {
	Configured() bool
	Credentials() ghin.Credentials
	AuthorizationURL(redirectURI, state string) (string, error)
	ExchangeCode(ctx context.Context, code, redirectURI string) (ghin.Tokens, error)
	PlayerProfile(ctx context.Context) (*ghin.Player, error)
	SyncLatestScores(ctx context.Context, since *time.Time) ([]ghin.Score, error)
}

// GHINClientFactory builds a client bound to one user's credentials.
type GHINClientFactory func(creds ghin.Credentials, onRefresh func(context.Context, ghin.Credentials)) GHINClient

// NewGHINClientFactory adapts ghin.NewClient to GHINClientFactory.
func NewGHINClientFactory(cfg ghin.Config) GHINClientFactory {
	return func(creds ghin.Credentials, onRefresh func(context.Context, ghin.Credentials)) GHINClient {
		c := cfg
		c.OnRefresh = onRefresh
		return ghin.NewClient(c, creds)
	}
}

type GhinService struct {
	store       store.Store
	signer      *StateSigner
	newClient   GHINClientFactory
	redirectURI string
	now         func() time.Time
}

func NewGhinService(st store.Store, signer *StateSigner, factory GHINClientFactory, redirectURI string) *GhinService {
	return &GhinService{store: st, signer: signer, newClient: factory, redirectURI: redirectURI, now: time.Now}
}

type SyncResult struct {
	Imported int
	Skipped  int
	Handicap decimal.NullDecimal
	SyncedAt time.Time
}

func (s *GhinService) AuthURL(ctx context.Context, userID int) (string, error) {
	client := s.newClient(ghin.Credentials{}, nil)
	if !client.Configured() {
		return "", fmt.Errorf("ghin auth url: %w", common.ErrNotConfigured)
	}
	state, err := s.signer.Sign(userID)
	if err != nil {
		return "", err
	}
	return client.AuthorizationURL(s.redirectURI, state)
}

// Callback completes the authorization-code flow and marks the user
// connected.
func (s *GhinService) Callback(ctx context.Context, code, state string) (*model.User, error) {
	if strings.TrimSpace(code) == "" {
		return nil, common.Invalid("code", "is required")
	}
	userID, err := s.signer.Verify(state)
	if err != nil {
		return nil, err
	}
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	client := s.newClient(ghin.Credentials{}, nil)
	if _, err := client.ExchangeCode(ctx, code, s.redirectURI); err != nil {
		return nil, err
	}
	profile, err := client.PlayerProfile(ctx)
	if err != nil {
		return nil, err
	}

	setCredentials(user, client.Credentials())
	number := profile.GHINNumber
	user.GhinNumber = &number
	user.GhinConnected = true
	if profile.HandicapIndex != nil {
		user.Handicap = decimal.NewNullDecimal(profile.HandicapIndex.Round(1))
	}
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	logger.Ctx(ctx).Info("ghin.connect", "uid", userID, "ghin_number", number)
	return user, nil
}

// Sync imports scores posted since the last sync and refreshes the handicap.
// Scores already stored (same date, course and score) are skipped.
func (s *GhinService) Sync(ctx context.Context, userID int) (*SyncResult, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	client := s.newClient(credentialsOf(user), s.persistRefresh(userID))
	if !client.Configured() {
		return nil, fmt.Errorf("ghin sync: %w", common.ErrNotConfigured)
	}
	if !user.GhinConnected || user.GhinRefreshToken == nil {
		return nil, fmt.Errorf("ghin sync: account not connected: %w", common.ErrAuthFailed)
	}

	scores, err := client.SyncLatestScores(ctx, user.LastGhinSync)
	if err != nil {
		return nil, err
	}
	existing, err := s.store.ListRounds(ctx, userID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		seen[roundKey(r.Date, r.CourseName, r.TotalScore)] = struct{}{}
	}

	res := &SyncResult{}
	for _, sc := range scores {
		date, err := model.ParseDate(sc.ScoreDate)
		if err != nil {
			return nil, fmt.Errorf("ghin score date %q: %v: %w", sc.ScoreDate, err, common.ErrUpstream)
		}
		key := roundKey(date, sc.CourseName, *sc.GrossScore)
		if _, ok := seen[key]; ok {
			res.Skipped++
			continue
		}
		slope := *sc.SlopeRating
		r := &model.Round{
			UserID:       userID,
			Date:         date,
			CourseName:   sc.CourseName,
			TotalScore:   *sc.GrossScore,
			CourseRating: decimal.NewNullDecimal(sc.CourseRating.Round(1)),
			SlopeRating:  &slope,
			Differential: sc.Differential.Round(1),
			Source:       model.RoundGHIN,
			Processed:    true,
		}
		if err := s.store.CreateRound(ctx, r); err != nil {
			return nil, err
		}
		seen[key] = struct{}{}
		res.Imported++
	}

	profile, err := client.PlayerProfile(ctx)
	if err != nil {
		return nil, err
	}

	// Reload: a token refresh during the calls above may have written the user.
	user, err = s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.HandicapIndex != nil {
		user.Handicap = decimal.NewNullDecimal(profile.HandicapIndex.Round(1))
	}
	now := s.now()
	user.LastGhinSync = &now
	setCredentials(user, client.Credentials())
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	res.Handicap = user.Handicap
	res.SyncedAt = now
	logger.Ctx(ctx).Info("ghin.sync.done", "uid", userID, "imported", res.Imported, "skipped", res.Skipped)
	return res, nil
}

func (s *GhinService) Disconnect(ctx context.Context, userID int) error {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	user.GhinConnected = false
	user.GhinNumber = nil
	user.GhinAccessToken = nil
	user.GhinRefreshToken = nil
	user.GhinTokenExpiry = nil
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return err
	}
	logger.Ctx(ctx).Info("ghin.disconnect", "uid", userID)
	return nil
}

func (s *GhinService) persistRefresh(userID int) func(context.Context, ghin.Credentials) {
	return func(ctx context.Context, c ghin.Credentials) {
		user, err := s.store.GetUser(ctx, userID)
		if err != nil {
			logger.Ctx(ctx).Warn("ghin.refresh.persist", "uid", userID, "err", err)
			return
		}
		setCredentials(user, c)
		if err := s.store.UpdateUser(ctx, user); err != nil {
			logger.Ctx(ctx).Warn("ghin.refresh.persist", "uid", userID, "err", err)
		}
	}
}

func credentialsOf(u *model.User) ghin.Credentials {
	var c ghin.Credentials
	if u.GhinAccessToken != nil {
		c.AccessToken = *u.GhinAccessToken
	}
	if u.GhinRefreshToken != nil {
		c.RefreshToken = *u.GhinRefreshToken
	}
	if u.GhinTokenExpiry != nil {
		c.Expiry = *u.GhinTokenExpiry
	}
	return c
}

func setCredentials(u *model.User, c ghin.Credentials) {
	access, refresh := c.AccessToken, c.RefreshToken
	u.GhinAccessToken = &access
	u.GhinRefreshToken = &refresh
	if c.Expiry.IsZero() {
		u.GhinTokenExpiry = nil
	} else {
		expiry := c.Expiry
		u.GhinTokenExpiry = &expiry
	}
}

func roundKey(date time.Time, course string, score int) string {
	return fmt.Sprintf("%s|%s|%d", date.Format(model.DateLayout), strings.ToLower(strings.TrimSpace(course)), score)
}
