// Package scoring turns submissions into scores and attempt histories into ranked leaderboards.
// Everything here is pure computation over its arguments and safe for concurrent use.
package scoring

import (
	"github.com/shopspring/decimal"

	"quiz-leaderboard-service/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// CalculateScore counts positions whose answer matches the question's correct index.
// Short, long or partially empty submissions are accepted; missing entries score nothing.
func CalculateScore(quiz domain.Quiz, submission domain.Submission) int {
	score := 0
	for i, question := range quiz.Questions {
		if i >= len(submission) {
			break
		}
		if answer := submission[i]; answer != nil && *answer == question.CorrectIndex {
			score++
		}
	}
	return score
}

// CalculatePercentage returns score/total as a percentage rounded half-up to two decimals.
// A quiz without questions is 0%.
func CalculatePercentage(score, total int) float64 {
	if total == 0 {
		return 0
	}
	pct := decimal.NewFromInt(int64(score)).Mul(hundred).Div(decimal.NewFromInt(int64(total)))
	return roundPercent(pct)
}

// roundPercent rounds to hundredths. Percentages are never negative, so decimal's
// half-away-from-zero rounding is round-half-up here.
func roundPercent(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
