// internal/scoring/scoring.go
package scoring

import (
	"strconv"
	"strings"

	"github.com/quizdeck/quizdeck/internal/domain/questionbank"
)

// Point values awarded per answer. Text and number questions earn a
// bonus over mcq, and any correct answer under a tight time budget
// earns a little extra.
const (
	basePoints     = 10
	textBonus      = 5
	numberBonus    = 3
	speedBonus     = 2
	speedThreshold = 10 // seconds
)

// Evaluate reports whether raw is a correct answer to q.
//
// mcq answers must match the expected option exactly (case-sensitive).
// number answers are parsed as integers after trimming; anything that
// fails to parse is simply incorrect. text answers are trimmed and
// compared case-insensitively.
func Evaluate(q questionbank.Question, raw string) bool {
	switch q.Type {
	case questionbank.TypeMCQ:
		return raw == q.Answer
	case questionbank.TypeNumber:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return false
		}
		return n == q.NumericAnswer
	case questionbank.TypeText:
		return strings.EqualFold(strings.TrimSpace(raw), strings.TrimSpace(q.Answer))
	}
	return false
}

// Score computes the points awarded for an answer. Pure and idempotent:
// the caller is responsible for invoking it at most once per answer event.
func Score(q questionbank.Question, correct bool) int {
	if !correct {
		return 0
	}

	points := basePoints
	switch q.Type {
	case questionbank.TypeText:
		points += textBonus
	case questionbank.TypeNumber:
		points += numberBonus
	}
	if q.TimeToAnswer != nil && *q.TimeToAnswer < speedThreshold {
		points += speedBonus
	}
	return points
}
