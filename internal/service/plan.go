package service

import (
	"context"
	"fmt"
	"golf-coach/internal/analysis"
	"golf-coach/internal/common"
	"golf-coach/internal/logger"
	"golf-coach/internal/model"
	"golf-coach/internal/store"
	"strings"

	"github.com/shopspring/decimal"
)

type PlanGenerator interface {
	GeneratePracticePlan(ctx context.Context, p PlanPrompt) (*PlanDraft, error)
}

type PlanService struct {
	store     store.Store
	generator PlanGenerator
}

func NewPlanService(st store.Store, gen PlanGenerator) *PlanService {
	return &PlanService{store: st, generator: gen}
}

var defaultHoursPerSession = decimal.NewFromInt(2)

// FallbackPlan is served whenever the model cannot produce a usable plan.
func FallbackPlan(hoursPerSession string) PlanDraft {
	return PlanDraft{
		FocusAreas: []string{"putting", "short game", "course management"},
		WeeklySchedule: []model.ScheduleDay{{
			Day:      "Monday",
			Title:    "Putting Focus",
			Duration: hoursPerSession + " hours",
			Activities: []model.ScheduleActivity{
				{
					Name:        "Distance Control Putting",
					Duration:    "45 minutes",
					Description: "Practice lag putting from 20, 30, and 40 feet. Focus on getting within 3 feet of the hole.",
					Location:    "Putting Green",
					Focus:       "putting",
				},
				{
					Name:        "Short Putting Precision",
					Duration:    "30 minutes",
					Description: "Make 50 putts from 3 feet, then 25 from 6 feet. Focus on consistent stroke tempo.",
					Location:    "Putting Green",
					Focus:       "putting",
				},
			},
		}},
		Recommendations: "Focus on putting fundamentals to improve your scoring. Consistent practice should reduce your handicap by 2-3 strokes over 6-8 weeks.",
	}
}

func (s *PlanService) List(ctx context.Context, userID int) ([]model.PracticePlan, error) {
	return s.store.ListPracticePlans(ctx, userID)
}

func (s *PlanService) Active(ctx context.Context, userID int) (*model.PracticePlan, error) {
	return s.store.ActivePracticePlan(ctx, userID)
}

// Generate builds a plan from the user's profile and recent rounds, then makes
// it the user's only active plan. Model failures never reach the caller; the
// fallback plan is stored instead.
func (s *PlanService) Generate(ctx context.Context, userID int, req model.GeneratePlanRequest) (*model.PracticePlan, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	rounds, err := s.store.RecentRounds(ctx, userID, analysis.RecentWindow)
	if err != nil {
		return nil, err
	}

	hours := req.HoursPerSession
	if hours.IsZero() {
		hours = defaultHoursPerSession
	}
	if hours.GreaterThan(decimal.NewFromInt(4)) || hours.LessThan(decimal.RequireFromString("0.5")) {
		return nil, &common.ValidationError{
			Message: "validation failed",
			Fields:  map[string]string{"hoursPerSession": "must be between 0.5 and 4"},
		}
	}
	hours = hours.Round(1)

	handicap := "unknown"
	if user.Handicap.Valid {
		handicap = analysis.Fixed1(user.Handicap.Decimal)
	}
	prompt := PlanPrompt{
		Handicap:           handicap,
		Performance:        analysis.PerformanceSummary(rounds),
		DaysPerWeek:        req.DaysPerWeek,
		HoursPerSession:    analysis.Fixed1(hours),
		PreferredTime:      req.PreferredTime,
		AvailableResources: req.AvailableResources,
		PracticeGoal:       req.PracticeGoal,
	}

	source := model.PlanAI
	var draft *PlanDraft
	if s.generator != nil {
		draft, err = s.generator.GeneratePracticePlan(ctx, prompt)
	} else {
		err = fmt.Errorf("no plan generator")
	}
	if err != nil || !draft.complete() {
		logger.Ctx(ctx).Warn("plan.generate.fallback", "uid", userID, "err", err)
		fb := FallbackPlan(analysis.Fixed1(hours))
		draft = &fb
		source = model.PlanFallback
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = fmt.Sprintf("%d-Day %s Plan", req.DaysPerWeek, titleCase(req.PreferredTime))
	}
	plan := &model.PracticePlan{
		UserID:             userID,
		Name:               name,
		DaysPerWeek:        req.DaysPerWeek,
		HoursPerSession:    hours,
		PreferredTime:      req.PreferredTime,
		FocusAreas:         draft.FocusAreas,
		AvailableResources: req.AvailableResources,
		WeeklySchedule:     draft.WeeklySchedule,
		AIRecommendations:  draft.Recommendations,
		Source:             source,
		Active:             true,
	}
	if plan.AvailableResources == nil {
		plan.AvailableResources = []string{}
	}

	if err := s.store.DeactivatePracticePlans(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.store.CreatePracticePlan(ctx, plan); err != nil {
		return nil, err
	}
	logger.Ctx(ctx).Info("plan.generate", "uid", userID, "plan_id", plan.ID, "source", plan.Source)
	return plan, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
