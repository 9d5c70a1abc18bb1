package scoring

import (
	"testing"

	"github.com/cloudprep/mockexam-backend/internal/model"
)

func singleQ(id, correct string) model.SessionQuestion {
	return model.SessionQuestion{
		Question: model.Question{
			ID:      id,
			Prompt:  "prompt " + id,
			Options: map[string]string{"A": "a", "B": "b", "C": "c"},
			Answer:  model.AnswerKey{Keys: []string{correct}},
		},
		PresentedOrder: []string{"A", "B", "C"},
	}
}

func multiQ(id string, correct ...string) model.SessionQuestion {
	return model.SessionQuestion{
		Question: model.Question{
			ID:      id,
			Prompt:  "prompt " + id,
			Options: map[string]string{"A": "a", "B": "b", "C": "c"},
			Answer:  model.AnswerKey{Keys: correct, Multi: true},
		},
		PresentedOrder: []string{"C", "B", "A"},
	}
}

func TestScore(t *testing.T) {
	questions := []model.SessionQuestion{
		singleQ("q1", "B"),
		multiQ("q2", "A", "C"),
	}

	testCases := []struct {
		name    string
		answers map[string]model.Answer
		want    int
	}{
		{
			name:    "all correct",
			answers: map[string]model.Answer{"q1": {"B"}, "q2": {"C", "A"}},
			want:    2,
		},
		{
			name:    "multi subset gets no partial credit",
			answers: map[string]model.Answer{"q1": {"B"}, "q2": {"A"}},
			want:    1,
		},
		{
			name:    "unanswered counts as incorrect",
			answers: map[string]model.Answer{},
			want:    0,
		},
		{
			name:    "wrong single key",
			answers: map[string]model.Answer{"q1": {"A"}, "q2": {"A", "C"}},
			want:    1,
		},
		{
			name:    "single select is case sensitive",
			answers: map[string]model.Answer{"q1": {"b"}},
			want:    0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(questions, tc.answers); got != tc.want {
				t.Errorf("Score = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestScoreIsOrderInvariantForMultiSelect(t *testing.T) {
	questions := []model.SessionQuestion{multiQ("q1", "A", "C")}

	a := map[string]model.Answer{"q1": {"A", "C"}}
	b := map[string]model.Answer{"q1": {"C", "A"}}

	if Score(questions, a) != Score(questions, b) {
		t.Error("multi-select score depends on selection order")
	}
	if Score(questions, a) != 1 {
		t.Errorf("Score = %d, want 1", Score(questions, a))
	}
}

func TestScoreIsIdempotentAndPure(t *testing.T) {
	questions := []model.SessionQuestion{singleQ("q1", "B"), multiQ("q2", "A", "C")}
	answers := map[string]model.Answer{"q1": {"B"}, "q2": {"C", "A"}}

	first := Score(questions, answers)
	second := Score(questions, answers)
	if first != second {
		t.Errorf("repeated scoring differs: %d then %d", first, second)
	}

	if len(answers["q2"]) != 2 || answers["q2"][0] != "C" {
		t.Errorf("answers mutated by scoring: %v", answers["q2"])
	}
	if questions[1].Answer.Keys[0] != "A" {
		t.Errorf("answer key mutated by scoring: %v", questions[1].Answer.Keys)
	}
}
