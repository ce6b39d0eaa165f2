package service

import (
	"errors"
	"fmt"
	"golf-coach/internal/common"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const stateTTL = 10 * time.Minute

type stateClaims struct {
	jwt.RegisteredClaims
	UserID int `json:"uid"`
}

// StateSigner issues and checks the OAuth state parameter. The state is a
// short-lived HS256 token naming the user who started the flow.
type StateSigner struct {
	secret []byte
	now    func() time.Time
}

// NewStateSigner falls back to a random per-process secret when none is
// configured; pending flows then do not survive a restart.
func NewStateSigner(secret string) *StateSigner {
	if secret == "" {
		secret = uuid.NewString() + uuid.NewString()
	}
	return &StateSigner{secret: []byte(secret), now: time.Now}
}

func (s *StateSigner) Sign(userID int) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, stateClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
		},
		UserID: userID,
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign state: %w", err)
	}
	return signed, nil
}

// Verify returns the user id carried by a valid, unexpired state.
func (s *StateSigner) Verify(state string) (int, error) {
	claims := &stateClaims{}
	token, err := jwt.ParseWithClaims(state, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return 0, &common.ValidationError{Message: "invalid oauth state", Fields: map[string]string{"state": err.Error()}}
	}
	return claims.UserID, nil
}
