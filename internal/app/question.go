package service

import (
	"fmt"
	"strconv"
	"strings"
)

// Question identifies one of the four analyses.
type Question int

// Questions in report order.
const (
	QuestionWinRates Question = iota + 1
	QuestionDevelopment
	QuestionPopularity
	QuestionTopPlayers
)

// AllQuestions returns every question in report order.
func AllQuestions() []Question {
	return []Question{QuestionWinRates, QuestionDevelopment, QuestionPopularity, QuestionTopPlayers}
}

// String returns the metric label of q.
func (q Question) String() string {
	switch q {
	case QuestionWinRates:
		return "win_rates"
	case QuestionDevelopment:
		return "development"
	case QuestionPopularity:
		return "popularity"
	case QuestionTopPlayers:
		return "top_players"
	default:
		return "question_" + strconv.Itoa(int(q))
	}
}

// Valid reports whether q is a known question.
func (q Question) Valid() bool {
	return q >= QuestionWinRates && q <= QuestionTopPlayers
}

// ParseQuestion accepts a question number ("1".."4") or its label.
func ParseQuestion(s string) (Question, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		q := Question(n)
		if !q.Valid() {
			return 0, fmt.Errorf("%w: %d", ErrUnknownQuestion, n)
		}
		return q, nil
	}
	for _, q := range AllQuestions() {
		if q.String() == s {
			return q, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownQuestion, s)
}
