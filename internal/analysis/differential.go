// Package analysis turns stored rounds and activities into the derived numbers
// shown on the dashboard: handicap differentials, aggregate stats and the
// qualitative performance ratings.
package analysis

import "github.com/shopspring/decimal"

var (
	standardSlope = decimal.NewFromInt(113)
	ten           = decimal.NewFromInt(10)
	two           = decimal.NewFromInt(2)
)

// Differential computes ((score - courseRating) * 113) / slope rounded to one
// decimal place, half away from zero. The quotient is taken with an exact
// remainder, so .x5 ties are decided on the true value.
// A missing rating or a non-positive slope yields zero.
func Differential(score int, courseRating decimal.NullDecimal, slope *int) decimal.Decimal {
	if !courseRating.Valid || slope == nil || *slope <= 0 {
		return decimal.Zero
	}
	num := decimal.NewFromInt(int64(score)).Sub(courseRating.Decimal).Mul(standardSlope).Mul(ten)
	den := decimal.NewFromInt(int64(*slope))

	q, r := num.QuoRem(den, 0)
	if r.Abs().Mul(two).Cmp(den) >= 0 {
		if num.Sign() < 0 {
			q = q.Sub(decimal.NewFromInt(1))
		} else {
			q = q.Add(decimal.NewFromInt(1))
		}
	}
	return q.Div(ten)
}

// Fixed1 renders d with exactly one fractional digit.
func Fixed1(d decimal.Decimal) string { return d.StringFixed(1) }
