// Package ghin is a client for the GHIN handicap service: the OAuth2
// authorization-code flow plus the player profile and score endpoints.
package ghin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"golf-coach/internal/common"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/oauth2"
)

const (
	DefaultLookback = 90 * 24 * time.Hour
	DefaultSyncSize = 50
)

var validate = validator.New()

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client

	// OnRefresh, when set, receives every rotated credential pair so it can
	// be persisted.
	OnRefresh func(ctx context.Context, c Credentials)

	Now func() time.Time
}

type Client struct {
	cfg   Config
	http  *http.Client
	now   func() time.Time
	mu    sync.RWMutex
	creds Credentials
}

func NewClient(cfg Config, creds Credentials) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	c := &Client{cfg: cfg, http: cfg.HTTPClient, now: cfg.Now, creds: creds}
	if c.http == nil {
		c.http = &http.Client{Timeout: 30 * time.Second}
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Credentials returns the current token pair.
func (c *Client) Credentials() Credentials {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.creds
}

func (c *Client) setCredentials(creds Credentials) {
	c.mu.Lock()
	c.creds = creds
	c.mu.Unlock()
}

func (c *Client) configured() error {
	if c.cfg.ClientID == "" || c.cfg.ClientSecret == "" {
		return fmt.Errorf("ghin client credentials missing: %w", common.ErrNotConfigured)
	}
	return nil
}

// Configured reports whether client id and secret are set.
func (c *Client) Configured() bool { return c.configured() == nil }

func (c *Client) oauthConfig(redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		RedirectURL:  redirectURI,
		Scopes:       []string{"profile", "scores"},
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.cfg.BaseURL + "/oauth/authorize",
			TokenURL:  c.cfg.BaseURL + "/oauth/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

func (c *Client) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.http)
}

func (c *Client) AuthorizationURL(redirectURI, state string) (string, error) {
	if err := c.configured(); err != nil {
		return "", err
	}
	return c.oauthConfig(redirectURI).AuthCodeURL(state), nil
}

// ExchangeCode trades an authorization code for tokens and adopts them.
func (c *Client) ExchangeCode(ctx context.Context, code, redirectURI string) (Tokens, error) {
	if err := c.configured(); err != nil {
		return Tokens{}, err
	}
	tok, err := c.oauthConfig(redirectURI).Exchange(c.oauthContext(ctx), code)
	if err != nil {
		return Tokens{}, tokenError("exchange code", err)
	}
	if tok.RefreshToken == "" {
		return Tokens{}, fmt.Errorf("exchange code: no refresh token: %w", common.ErrUpstream)
	}
	c.setCredentials(Credentials{AccessToken: tok.AccessToken, RefreshToken: tok.RefreshToken, Expiry: tok.Expiry})
	return c.tokens(tok), nil
}

// RefreshAccessToken swaps the current credentials for a fresh pair. Any
// failure is reported as common.ErrAuthFailed.
func (c *Client) RefreshAccessToken(ctx context.Context) (Tokens, error) {
	if err := c.configured(); err != nil {
		return Tokens{}, err
	}
	old := c.Credentials()
	if old.RefreshToken == "" {
		return Tokens{}, fmt.Errorf("refresh: no refresh token: %w", common.ErrAuthFailed)
	}
	// An empty access token is never valid, so the source always refreshes.
	src := c.oauthConfig("").TokenSource(c.oauthContext(ctx), &oauth2.Token{RefreshToken: old.RefreshToken})
	tok, err := src.Token()
	if err != nil {
		return Tokens{}, fmt.Errorf("refresh: %v: %w", err, common.ErrAuthFailed)
	}
	creds := Credentials{AccessToken: tok.AccessToken, RefreshToken: tok.RefreshToken, Expiry: tok.Expiry}
	c.setCredentials(creds)
	if c.cfg.OnRefresh != nil {
		c.cfg.OnRefresh(ctx, creds)
	}
	return c.tokens(tok), nil
}

func (c *Client) tokens(tok *oauth2.Token) Tokens {
	t := Tokens{AccessToken: tok.AccessToken, RefreshToken: tok.RefreshToken}
	if !tok.Expiry.IsZero() {
		t.ExpiresIn = int(tok.Expiry.Sub(c.now()).Round(time.Second).Seconds())
	}
	return t
}

func tokenError(op string, err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) && re.Response != nil &&
		(re.Response.StatusCode == http.StatusBadRequest || re.Response.StatusCode == http.StatusUnauthorized) {
		return fmt.Errorf("%s: %v: %w", op, err, common.ErrAuthFailed)
	}
	return fmt.Errorf("%s: %v: %w", op, err, common.ErrUpstream)
}

func (c *Client) PlayerProfile(ctx context.Context) (*Player, error) {
	var p Player
	if err := c.get(ctx, "/player/profile", nil, &p); err != nil {
		return nil, err
	}
	if err := validate.Struct(&p); err != nil {
		return nil, fmt.Errorf("player profile: %v: %w", err, common.ErrUpstream)
	}
	return &p, nil
}

// PlayerScores lists posted scores. Zero start or end times are omitted from
// the query.
func (c *Client) PlayerScores(ctx context.Context, start, end time.Time, limit int) ([]Score, error) {
	if limit <= 0 {
		limit = 20
	}
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	if !start.IsZero() {
		q.Set("start_date", start.Format("2006-01-02"))
	}
	if !end.IsZero() {
		q.Set("end_date", end.Format("2006-01-02"))
	}

	var scores []Score
	if err := c.get(ctx, "/player/scores", q, &scores); err != nil {
		return nil, err
	}
	for i := range scores {
		if err := validate.Struct(&scores[i]); err != nil {
			return nil, fmt.Errorf("score %d: %v: %w", i, err, common.ErrUpstream)
		}
	}
	return scores, nil
}

// SyncLatestScores fetches scores posted since the given time, or over the
// default lookback window when since is nil.
func (c *Client) SyncLatestScores(ctx context.Context, since *time.Time) ([]Score, error) {
	start := c.now().Add(-DefaultLookback)
	if since != nil {
		start = *since
	}
	return c.PlayerScores(ctx, start, time.Time{}, DefaultSyncSize)
}

// get performs an authenticated GET. A 401 triggers one refresh and one
// retry; a second 401 is common.ErrAuthFailed.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	if err := c.configured(); err != nil {
		return err
	}
	token := c.Credentials().AccessToken
	if token == "" {
		return fmt.Errorf("ghin %s: no access token: %w", path, common.ErrAuthFailed)
	}

	resp, err := c.do(ctx, path, q, token)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		if _, err := c.RefreshAccessToken(ctx); err != nil {
			return err
		}
		resp, err = c.do(ctx, path, q, c.Credentials().AccessToken)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			resp.Body.Close()
			return fmt.Errorf("ghin %s: unauthorized after refresh: %w", path, common.ErrAuthFailed)
		}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ghin %s: read body: %v: %w", path, err, common.ErrUpstream)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("ghin %s: status %d: %s: %w", path, resp.StatusCode, truncate(data, 200), common.ErrUpstream)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("ghin %s: decode: %v: %w", path, err, common.ErrUpstream)
	}
	return nil
}

func (c *Client) do(ctx context.Context, path string, q url.Values, token string) (*http.Response, error) {
	u := c.cfg.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ghin %s: %v: %w", path, err, common.ErrUpstream)
	}
	return resp, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
