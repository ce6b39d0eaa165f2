package analysis

import (
	"fmt"
	"golf-coach/internal/model"
	"math"
	"strings"
)

// RecentWindow is how many of the latest rounds or activities feed the
// performance analysis.
const RecentWindow = 10

const (
	RatingNoData = "No Data"

	ColorSuccess = "success"
	ColorWarning = "warning"
	ColorError   = "error"
	ColorGray    = "gray"
)

const (
	fairwaysPerRound = 14
	greensPerRound   = 18
)

type Metric struct {
	Percentage float64 `json:"percentage"`
	Value      string  `json:"value,omitempty"`
	Rating     string  `json:"rating"`
	Color      string  `json:"color"`
	Detail     string  `json:"detail,omitempty"`
}

type RoundPerformance struct {
	FairwayAccuracy    Metric `json:"fairwayAccuracy"`
	GreensInRegulation Metric `json:"greensInRegulation"`
	Putting            Metric `json:"putting"`
	Recommendation     string `json:"recommendation"`
}

type ActivityPerformance struct {
	ActivityFrequency Metric `json:"activityFrequency"`
	PracticeBalance   Metric `json:"practiceBalance"`
	Consistency       Metric `json:"consistency"`
	Recommendation    string `json:"recommendation"`
}

const (
	noRoundsRecommendation     = "Start logging rounds to get performance analysis."
	noActivitiesRecommendation = "Start logging activities to get performance analysis."

	puttingRecommendation  = "Putting is costing you the most strokes. Spend most of your practice on lag putting and makes inside 6 feet."
	approachRecommendation = "Work on approach shots and iron play to hit more greens in regulation."
	drivingRecommendation  = "Improve driving accuracy to find more fairways and set up easier approaches."
	steadyRecommendation   = "Solid all-around game. Keep your current routine and track rounds to spot trends."
)

func noData() Metric { return Metric{Rating: RatingNoData, Color: ColorGray} }

// tier maps v onto the three-step rating scale. higherIsBetter selects
// whether the thresholds are lower bounds or upper bounds.
func tier(v, top, mid float64, higherIsBetter bool, labels [3]string) (string, string) {
	var first, second bool
	if higherIsBetter {
		first, second = v >= top, v >= mid
	} else {
		first, second = v <= top, v <= mid
	}
	switch {
	case first:
		return labels[0], ColorSuccess
	case second:
		return labels[1], ColorWarning
	default:
		return labels[2], ColorError
	}
}

var roundLabels = [3]string{"Strong", "Good", "Needs Work"}

// average returns the mean of the stat over the rounds that recorded it.
func average(rounds []model.Round, stat func(model.Round) *int) (float64, bool) {
	sum, n := 0, 0
	for _, r := range rounds {
		if v := stat(r); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}

// puttsPerGIR divides putts by greens in regulation over the rounds that
// recorded both. ok is false when no such round exists or none of them hit a
// green.
func puttsPerGIR(rounds []model.Round) (ratio float64, paired int, ok bool) {
	puttSum, greenSum := 0, 0
	for _, r := range rounds {
		if r.TotalPutts == nil || r.GreensInRegulation == nil {
			continue
		}
		puttSum += *r.TotalPutts
		greenSum += *r.GreensInRegulation
		paired++
	}
	if paired == 0 || greenSum == 0 {
		return 0, paired, false
	}
	return float64(puttSum) / float64(greenSum), paired, true
}

func fairways(r model.Round) *int { return r.FairwaysHit }
func greens(r model.Round) *int   { return r.GreensInRegulation }
func putts(r model.Round) *int    { return r.TotalPutts }

// AnalyzeRounds rates fairway accuracy, greens in regulation and putting over
// the given rounds and picks one recommendation. Recommendation checks run in
// a fixed order: putting, approach play, driving.
func AnalyzeRounds(rounds []model.Round) RoundPerformance {
	if len(rounds) == 0 {
		return RoundPerformance{
			FairwayAccuracy:    noData(),
			GreensInRegulation: noData(),
			Putting:            noData(),
			Recommendation:     noRoundsRecommendation,
		}
	}

	var out RoundPerformance

	avgFairways, hasFairways := average(rounds, fairways)
	fairwayPct := avgFairways / fairwaysPerRound * 100
	if hasFairways {
		rating, color := tier(fairwayPct, 60, 40, true, roundLabels)
		out.FairwayAccuracy = Metric{
			Percentage: round1(fairwayPct),
			Value:      fmt.Sprintf("%.1f", avgFairways),
			Rating:     rating,
			Color:      color,
			Detail:     fmt.Sprintf("%.1f of %d fairways hit", avgFairways, fairwaysPerRound),
		}
	} else {
		out.FairwayAccuracy = noData()
	}

	avgGreens, hasGreens := average(rounds, greens)
	girPct := avgGreens / greensPerRound * 100
	if hasGreens {
		rating, color := tier(girPct, 50, 33, true, roundLabels)
		out.GreensInRegulation = Metric{
			Percentage: round1(girPct),
			Value:      fmt.Sprintf("%.1f", avgGreens),
			Rating:     rating,
			Color:      color,
			Detail:     fmt.Sprintf("%.1f of %d greens in regulation", avgGreens, greensPerRound),
		}
	} else {
		out.GreensInRegulation = noData()
	}

	avgPutts, hasPutts := average(rounds, putts)
	ppg, paired, hasPPG := puttsPerGIR(rounds)
	switch {
	case !hasPutts:
		out.Putting = noData()
	case paired == 0:
		m := noData()
		m.Detail = fmt.Sprintf("%.1f putts per round, no round recorded greens in regulation as well", avgPutts)
		out.Putting = m
	case !hasPPG:
		m := noData()
		m.Value = "0.0"
		m.Detail = fmt.Sprintf("%.1f putts per round, no greens in regulation recorded", avgPutts)
		out.Putting = m
	default:
		rating, color := tier(ppg, 1.8, 2.0, false, roundLabels)
		out.Putting = Metric{
			Percentage: round1(clamp((2.5-ppg)*100, 0, 100)),
			Value:      fmt.Sprintf("%.1f", ppg),
			Rating:     rating,
			Color:      color,
			Detail:     fmt.Sprintf("%.1f putts per green in regulation", ppg),
		}
	}

	switch {
	case hasPPG && ppg > 1.9:
		out.Recommendation = puttingRecommendation
	case hasGreens && girPct < 50:
		out.Recommendation = approachRecommendation
	case hasFairways && fairwayPct < 50:
		out.Recommendation = drivingRecommendation
	default:
		out.Recommendation = steadyRecommendation
	}
	return out
}

// AnalyzeActivities rates how often, how evenly and how regularly the user
// trains. The activities are assumed to span about two weeks.
func AnalyzeActivities(activities []model.Activity) ActivityPerformance {
	if len(activities) == 0 {
		return ActivityPerformance{
			ActivityFrequency: noData(),
			PracticeBalance:   noData(),
			Consistency:       noData(),
			Recommendation:    noActivitiesRecommendation,
		}
	}

	n := float64(len(activities))
	practice := 0
	days := make(map[string]struct{}, len(activities))
	for _, a := range activities {
		if a.ActivityType == model.ActivityPracticeArea || a.ActivityType == model.ActivityOffCourse {
			practice++
		}
		days[a.Date.Format(model.DateLayout)] = struct{}{}
	}

	weekly := n / 2
	practiceRatio := float64(practice) / n * 100
	consistency := math.Min(100, float64(len(days))/7*100)

	var out ActivityPerformance

	rating, color := tier(weekly, 4, 2, true, [3]string{"Excellent", "Good", "Needs Work"})
	out.ActivityFrequency = Metric{
		Percentage: round1(math.Min(100, weekly*25)),
		Value:      fmt.Sprintf("%.1f", weekly),
		Rating:     rating,
		Color:      color,
		Detail:     fmt.Sprintf("%.1f activities per week", weekly),
	}

	rating, color = tier(practiceRatio, 60, 40, true, [3]string{"Well Balanced", "Good Mix", "More Practice Needed"})
	out.PracticeBalance = Metric{
		Percentage: round1(practiceRatio),
		Value:      fmt.Sprintf("%.0f%%", practiceRatio),
		Rating:     rating,
		Color:      color,
		Detail:     fmt.Sprintf("%.0f%% practice activities", practiceRatio),
	}

	rating, color = tier(consistency, 70, 50, true, [3]string{"Very Consistent", "Consistent", "Sporadic"})
	out.Consistency = Metric{
		Percentage: round1(consistency),
		Value:      fmt.Sprintf("%d", len(days)),
		Rating:     rating,
		Color:      color,
		Detail:     fmt.Sprintf("Active %d days recently", len(days)),
	}

	switch {
	case practiceRatio < 50:
		out.Recommendation = "Add more practice sessions to balance your on-course play."
	case weekly < 2:
		out.Recommendation = "Try to increase activity frequency to 3-4 times per week."
	default:
		out.Recommendation = "Great activity pattern! Keep up the consistent routine."
	}
	return out
}

// PerformanceSummary is the plain-text digest of recent rounds that goes into
// the practice plan prompt.
func PerformanceSummary(rounds []model.Round) string {
	if len(rounds) == 0 {
		return "No recent rounds available for analysis."
	}

	scoreSum := 0
	for _, r := range rounds {
		scoreSum += r.TotalScore
	}
	avgScore := float64(scoreSum) / float64(len(rounds))
	avgFairways, hasFairways := average(rounds, fairways)
	avgGreens, hasGreens := average(rounds, greens)
	avgPutts, hasPutts := average(rounds, putts)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Recent performance (%d rounds):\n", len(rounds))
	fmt.Fprintf(&sb, "- Average score: %.1f\n", avgScore)
	if hasFairways {
		fmt.Fprintf(&sb, "- Average fairways hit: %.1f/%d (%.1f%%)\n", avgFairways, fairwaysPerRound, avgFairways/fairwaysPerRound*100)
	}
	if hasGreens {
		fmt.Fprintf(&sb, "- Average greens in regulation: %.1f/%d (%.1f%%)\n", avgGreens, greensPerRound, avgGreens/greensPerRound*100)
	}
	if hasPutts {
		fmt.Fprintf(&sb, "- Average total putts: %.1f\n", avgPutts)
	}
	ppg, _, hasPPG := puttsPerGIR(rounds)
	if hasPPG {
		fmt.Fprintf(&sb, "- Putts per GIR: %.1f\n", ppg)
	} else {
		sb.WriteString("- Putts per GIR: N/A\n")
	}

	var areas []string
	if hasFairways && avgFairways < fairwaysPerRound/2.0 {
		areas = append(areas, "- Driving accuracy needs work (below 50%)")
	}
	if hasGreens && avgGreens < greensPerRound/2.0 {
		areas = append(areas, "- Iron play and approach shots need attention")
	}
	if hasPPG && ppg > 2.0 {
		areas = append(areas, "- Putting is the biggest weakness, focus here first")
	}
	if hasPutts && avgPutts < 30 {
		areas = append(areas, "- Putting is a strength, maintain with light practice")
	}
	if len(areas) > 0 {
		sb.WriteString("\nKey areas for improvement:\n")
		sb.WriteString(strings.Join(areas, "\n"))
	}
	return strings.TrimSpace(sb.String())
}

func clamp(v, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, v)) }
