// Package scoring grades a finished exam attempt against the answer keys.
package scoring

import (
	"github.com/cloudprep/mockexam-backend/internal/model"
)

// Score counts the questions whose selection matches the answer key. An
// unanswered question counts as incorrect. Pure: neither argument is
// mutated, and repeated calls on the same inputs return the same count.
func Score(questions []model.SessionQuestion, answers map[string]model.Answer) int {
	correct := 0
	for i := range questions {
		if IsCorrect(&questions[i].Question, answers[questions[i].ID]) {
			correct++
		}
	}
	return correct
}

// IsCorrect applies the matching rule for one question. Single-select
// requires the exact key (case-sensitive); multi-select requires set
// equality with no partial credit for subsets.
func IsCorrect(q *model.Question, answer model.Answer) bool {
	if len(answer) == 0 {
		return false
	}
	if q.Answer.Multi {
		return answer.EqualsSet(q.Answer.Keys)
	}
	return len(answer) == 1 && answer[0] == q.Answer.Keys[0]
}
