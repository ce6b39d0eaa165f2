package service

import (
	"context"
	"fmt"
	"golf-coach/internal/common"
	"golf-coach/internal/ghin"
	"golf-coach/internal/model"
	"golf-coach/internal/store"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	configured bool
	creds      ghin.Credentials
	onRefresh  func(context.Context, ghin.Credentials)

	rotateTo   *ghin.Credentials
	profile    *ghin.Player
	profileErr error
	scores     []ghin.Score
	scoresErr  error
	since      *time.Time
	exchanged  string
}

func (f *fakeClient) Configured() bool { return f.configured }
func (f *fakeClient) Credentials() ghin.Credentials { return f.creds }

func (f *fakeClient) AuthorizationURL(redirectURI, state string) (string, error) {
	return "https://ghin.test/oauth/authorize?" + url.Values{"redirect_uri": {redirectURI}, "state": {state}}.Encode(), nil
}

func (f *fakeClient) ExchangeCode(_ context.Context, code, _ string) (ghin.Tokens, error) {
	if code == "bad" {
		return ghin.Tokens{}, fmt.Errorf("exchange: %w", common.ErrAuthFailed)
	}
	f.exchanged = code
	f.creds = ghin.Credentials{AccessToken: "at-1", RefreshToken: "rt-1", Expiry: time.Now().Add(time.Hour)}
	return ghin.Tokens{AccessToken: "at-1", RefreshToken: "rt-1", ExpiresIn: 3600}, nil
}

func (f *fakeClient) PlayerProfile(context.Context) (*ghin.Player, error) {
	return f.profile, f.profileErr
}

func (f *fakeClient) SyncLatestScores(ctx context.Context, since *time.Time) ([]ghin.Score, error) {
	f.since = since
	if f.rotateTo != nil {
		f.creds = *f.rotateTo
		if f.onRefresh != nil {
			f.onRefresh(ctx, f.creds)
		}
	}
	return f.scores, f.scoresErr
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func score(date, course string, gross int, diff string) ghin.Score {
	return ghin.Score{
		ScoreDate: date, CourseName: course,
		GrossScore: intp(gross), AdjustedGrossScore: intp(gross),
		CourseRating: dec("71.5"), SlopeRating: intp(128), Differential: dec(diff),
	}
}

func newGhin(t *testing.T, fc *fakeClient) (*GhinService, store.Store, *model.User) {
	t.Helper()
	st, u := seeded(t)
	factory := func(creds ghin.Credentials, onRefresh func(context.Context, ghin.Credentials)) GHINClient {
		if fc.creds == (ghin.Credentials{}) {
			fc.creds = creds
		}
		fc.onRefresh = onRefresh
		return fc
	}
	svc := NewGhinService(st, NewStateSigner("state-secret"), factory, "http://localhost:5000/api/ghin/callback")
	return svc, st, u
}

func connect(t *testing.T, st store.Store, u *model.User) {
	t.Helper()
	u.GhinConnected = true
	u.GhinAccessToken = strp("stored-at")
	u.GhinRefreshToken = strp("stored-rt")
	require.NoError(t, st.UpdateUser(context.Background(), u))
}

func TestAuthURLCarriesSignedState(t *testing.T) {
	svc, _, u := newGhin(t, &fakeClient{configured: true})
	raw, err := svc.AuthURL(context.Background(), u.ID)
	require.NoError(t, err)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	uid, err := svc.signer.Verify(parsed.Query().Get("state"))
	require.NoError(t, err)
	assert.Equal(t, u.ID, uid)
	assert.Equal(t, "http://localhost:5000/api/ghin/callback", parsed.Query().Get("redirect_uri"))
}

func TestAuthURLNotConfigured(t *testing.T) {
	svc, _, u := newGhin(t, &fakeClient{})
	_, err := svc.AuthURL(context.Background(), u.ID)
	assert.ErrorIs(t, err, common.ErrNotConfigured)
}

func TestCallbackConnectsUser(t *testing.T) {
	fc := &fakeClient{configured: true, profile: &ghin.Player{
		GHINNumber: "1234567", FirstName: "Mike", LastName: "Johnson", HandicapIndex: dec("11.84"),
	}}
	svc, st, u := newGhin(t, fc)
	state, err := svc.signer.Sign(u.ID)
	require.NoError(t, err)

	_, err = svc.Callback(context.Background(), "the-code", state)
	require.NoError(t, err)
	assert.Equal(t, "the-code", fc.exchanged)

	stored, err := st.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.True(t, stored.GhinConnected)
	assert.Equal(t, "1234567", *stored.GhinNumber)
	assert.Equal(t, "rt-1", *stored.GhinRefreshToken)
	assert.Equal(t, "11.8", stored.Handicap.Decimal.StringFixed(1))
}

func TestCallbackFailures(t *testing.T) {
	fc := &fakeClient{configured: true, profile: &ghin.Player{GHINNumber: "1", FirstName: "a", LastName: "b"}}
	svc, st, u := newGhin(t, fc)
	state, err := svc.signer.Sign(u.ID)
	require.NoError(t, err)

	_, err = svc.Callback(context.Background(), "code", "forged")
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Callback(context.Background(), "bad", state)
	assert.ErrorIs(t, err, common.ErrAuthFailed)

	stored, err := st.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.False(t, stored.GhinConnected)
}

func TestSyncImportsNewScores(t *testing.T) {
	fc := &fakeClient{
		configured: true,
		profile:    &ghin.Player{GHINNumber: "1", FirstName: "a", LastName: "b", HandicapIndex: dec("11.2")},
		scores: []ghin.Score{
			score("2025-02-01", "Harding Park", 81, "7.9"),
			score("2024-12-15", "Pebble Beach Golf Links", 82, "8.5"),
			score("2025-02-01", "Harding Park", 81, "7.9"),
		},
	}
	svc, st, u := newGhin(t, fc)
	connect(t, st, u)
	ctx := context.Background()

	res, err := svc.Sync(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 2, res.Skipped)
	assert.Nil(t, fc.since)

	rounds, err := st.ListRounds(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, rounds, 4)
	assert.Equal(t, "Harding Park", rounds[0].CourseName)
	assert.Equal(t, model.RoundGHIN, rounds[0].Source)
	assert.True(t, rounds[0].Processed)
	assert.Equal(t, "7.9", rounds[0].Differential.StringFixed(1))

	stored, err := st.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "11.2", stored.Handicap.Decimal.StringFixed(1))
	require.NotNil(t, stored.LastGhinSync)

	// second run starts from the last sync
	_, err = svc.Sync(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, fc.since)
	assert.True(t, fc.since.Equal(*stored.LastGhinSync))
}

func TestSyncPersistsRotatedTokens(t *testing.T) {
	fc := &fakeClient{
		configured: true,
		profile:    &ghin.Player{GHINNumber: "1", FirstName: "a", LastName: "b"},
		rotateTo:   &ghin.Credentials{AccessToken: "at-2", RefreshToken: "rt-2"},
	}
	svc, st, u := newGhin(t, fc)
	connect(t, st, u)

	_, err := svc.Sync(context.Background(), u.ID)
	require.NoError(t, err)
	stored, err := st.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "at-2", *stored.GhinAccessToken)
	assert.Equal(t, "rt-2", *stored.GhinRefreshToken)
	assert.Equal(t, "12.4", stored.Handicap.Decimal.StringFixed(1))
}

func TestSyncErrors(t *testing.T) {
	t.Run("not configured before connection check", func(t *testing.T) {
		svc, _, u := newGhin(t, &fakeClient{})
		_, err := svc.Sync(context.Background(), u.ID)
		assert.ErrorIs(t, err, common.ErrNotConfigured)
	})
	t.Run("not connected", func(t *testing.T) {
		svc, _, u := newGhin(t, &fakeClient{configured: true})
		_, err := svc.Sync(context.Background(), u.ID)
		assert.ErrorIs(t, err, common.ErrAuthFailed)
	})
	t.Run("upstream", func(t *testing.T) {
		fc := &fakeClient{configured: true, scoresErr: fmt.Errorf("boom: %w", common.ErrUpstream)}
		svc, st, u := newGhin(t, fc)
		connect(t, st, u)
		_, err := svc.Sync(context.Background(), u.ID)
		assert.ErrorIs(t, err, common.ErrUpstream)
	})
}

func TestDisconnect(t *testing.T) {
	svc, st, u := newGhin(t, &fakeClient{configured: true})
	connect(t, st, u)

	require.NoError(t, svc.Disconnect(context.Background(), u.ID))
	stored, err := st.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.False(t, stored.GhinConnected)
	assert.Nil(t, stored.GhinAccessToken)
	assert.Nil(t, stored.GhinRefreshToken)
}
