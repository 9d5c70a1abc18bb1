package session

import (
	"fmt"
	"testing"

	"github.com/cloudprep/mockexam-backend/internal/model"
)

func makeState(n int) *State {
	questions := make([]model.SessionQuestion, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, model.SessionQuestion{
			Question: model.Question{
				ID:      fmt.Sprintf("q%d", i),
				Prompt:  fmt.Sprintf("prompt %d", i),
				Options: map[string]string{"A": "a", "B": "b", "C": "c"},
				Answer:  model.AnswerKey{Keys: []string{"A"}},
			},
			PresentedOrder: []string{"B", "A", "C"},
		})
	}
	return New(questions, 4200)
}

func TestNavigateClampsToQuestionRange(t *testing.T) {
	testCases := []struct {
		name  string
		start int
		op    model.NavigateOp
		index int
		want  int
	}{
		{"prev at first stays", 0, model.NavigatePrev, 0, 0},
		{"next at last stays", 4, model.NavigateNext, 0, 4},
		{"next moves forward", 1, model.NavigateNext, 0, 2},
		{"prev moves back", 3, model.NavigatePrev, 0, 2},
		{"jump in range", 0, model.NavigateJump, 3, 3},
		{"jump past end clamps", 2, model.NavigateJump, 99, 4},
		{"jump negative clamps", 2, model.NavigateJump, -7, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := makeState(5)
			s.CurrentIndex = tc.start
			s.Navigate(tc.op, tc.index)
			if s.CurrentIndex != tc.want {
				t.Errorf("CurrentIndex = %d, want %d", s.CurrentIndex, tc.want)
			}
		})
	}
}

func TestNavigateMarksLeftQuestionVisited(t *testing.T) {
	s := makeState(3)

	s.Navigate(model.NavigateNext, 0)
	if !s.Visited["q0"] {
		t.Error("q0 should be visited after navigating away")
	}
	if s.Visited["q1"] {
		t.Error("q1 has not been left yet")
	}

	// A boundary no-op still marks the current question visited.
	s.CurrentIndex = 2
	s.Navigate(model.NavigateNext, 0)
	if !s.Visited["q2"] {
		t.Error("q2 should be visited even when next is a boundary no-op")
	}
}

func TestSelectOptionSingleReplaces(t *testing.T) {
	s := makeState(2)

	if !s.SelectOption("q0", "A") {
		t.Fatal("select A rejected")
	}
	if !s.SelectOption("q0", "C") {
		t.Fatal("select C rejected")
	}

	got := s.Answers["q0"]
	if len(got) != 1 || got[0] != "C" {
		t.Errorf("single-select should replace, got %v", got)
	}
}

func TestSelectOptionMultiToggles(t *testing.T) {
	s := makeState(1)
	s.Questions[0].Answer = model.AnswerKey{Keys: []string{"A", "C"}, Multi: true}

	s.SelectOption("q0", "A")
	s.SelectOption("q0", "C")
	if !s.Answers["q0"].Contains("A") || !s.Answers["q0"].Contains("C") {
		t.Fatalf("expected A and C selected, got %v", s.Answers["q0"])
	}

	s.SelectOption("q0", "A")
	if s.Answers["q0"].Contains("A") {
		t.Errorf("A should be deselected, got %v", s.Answers["q0"])
	}

	// Removing the last key returns the question to unanswered.
	s.SelectOption("q0", "C")
	if _, answered := s.Answers["q0"]; answered {
		t.Error("empty multi-select should read as unanswered")
	}
}

func TestSelectOptionRejectsUnknownTargets(t *testing.T) {
	s := makeState(1)

	if s.SelectOption("missing", "A") {
		t.Error("unknown question id accepted")
	}
	if s.SelectOption("q0", "Z") {
		t.Error("key outside the question's options accepted")
	}
}

func TestStatusProgression(t *testing.T) {
	s := makeState(3)

	if s.Status(0) != StatusUnseen {
		t.Errorf("fresh question should be UNSEEN, got %s", s.Status(0))
	}

	s.Navigate(model.NavigateNext, 0)
	if s.Status(0) != StatusVisited {
		t.Errorf("left unanswered question should be VISITED, got %s", s.Status(0))
	}

	s.SelectOption("q0", "A")
	if s.Status(0) != StatusAnswered {
		t.Errorf("answered question should be ANSWERED, got %s", s.Status(0))
	}
}
