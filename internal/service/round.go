package service

import (
	"context"
	"golf-coach/internal/analysis"
	"golf-coach/internal/common"
	"golf-coach/internal/logger"
	"golf-coach/internal/model"
	"golf-coach/internal/store"
	"strings"

	"github.com/shopspring/decimal"
)

type RoundService struct{ store store.Store }

func NewRoundService(st store.Store) *RoundService { return &RoundService{store: st} }

func (s *RoundService) List(ctx context.Context, userID int) ([]model.Round, error) {
	return s.store.ListRounds(ctx, userID)
}

// Get returns the round only if it belongs to userID.
func (s *RoundService) Get(ctx context.Context, userID, id int) (*model.Round, error) {
	r, err := s.store.GetRound(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, notOwned("round", id)
	}
	return r, nil
}

// Create validates the request and stores a manual round. The differential is
// always derived from score, rating and slope.
func (s *RoundService) Create(ctx context.Context, userID int, req model.CreateRoundRequest) (*model.Round, error) {
	date, err := model.ParseDate(req.Date)
	if err != nil {
		return nil, common.Invalid("date", "must be YYYY-MM-DD")
	}
	name := strings.TrimSpace(req.CourseName)
	if name == "" {
		return nil, common.Invalid("courseName", "is required")
	}

	r := &model.Round{
		UserID:             userID,
		Date:               date,
		CourseName:         name,
		TotalScore:         req.TotalScore,
		SlopeRating:        req.SlopeRating,
		FairwaysHit:        req.FairwaysHit,
		GreensInRegulation: req.GreensInRegulation,
		TotalPutts:         req.TotalPutts,
		Penalties:          req.Penalties,
		ScreenshotURL:      req.ScreenshotURL,
		Source:             model.RoundManual,
	}
	if req.CourseRating != nil {
		cr := *req.CourseRating
		if cr.LessThan(decimal.NewFromInt(50)) || cr.GreaterThan(decimal.NewFromInt(90)) {
			return nil, common.Invalid("courseRating", "must be between 50 and 90")
		}
		r.CourseRating = decimal.NewNullDecimal(cr.Round(1))
	}
	r.Differential = analysis.Differential(r.TotalScore, r.CourseRating, r.SlopeRating)

	if err := s.store.CreateRound(ctx, r); err != nil {
		return nil, err
	}
	logger.Ctx(ctx).Info("round.create", "uid", userID, "round_id", r.ID, "differential", analysis.Fixed1(r.Differential))
	return r, nil
}
