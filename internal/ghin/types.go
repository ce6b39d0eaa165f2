package ghin

import (
	"time"

	"github.com/shopspring/decimal"
)

// Credentials is the token pair for one connected account. A Client never
// mutates a Credentials value; a refresh swaps in a new one.
type Credentials struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// Tokens is the result of a code exchange or a refresh.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
}

type Player struct {
	GHINNumber    string           `json:"ghin_number" validate:"required"`
	FirstName     string           `json:"first_name" validate:"required"`
	LastName      string           `json:"last_name" validate:"required"`
	HandicapIndex *decimal.Decimal `json:"handicap_index"`
	ClubName      string           `json:"club_name,omitempty"`
	State         string           `json:"state,omitempty"`
}

type Score struct {
	ScoreDate          string           `json:"score_date" validate:"required"`
	CourseName         string           `json:"course_name" validate:"required"`
	GrossScore         *int             `json:"gross_score" validate:"required"`
	AdjustedGrossScore *int             `json:"adjusted_gross_score" validate:"required"`
	CourseRating       *decimal.Decimal `json:"course_rating" validate:"required"`
	SlopeRating        *int             `json:"slope_rating" validate:"required"`
	Differential       *decimal.Decimal `json:"differential" validate:"required"`
	TeeName            string           `json:"tee_name,omitempty"`
}
