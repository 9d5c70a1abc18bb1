// Package session holds the live state of one exam attempt. The state is
// not safe for concurrent use on its own; the exam service serializes all
// access behind its lock.
package session

import (
	"github.com/google/uuid"

	"github.com/cloudprep/mockexam-backend/internal/model"
)

// QuestionStatus is the progress-strip marker for one question.
type QuestionStatus string

const (
	StatusAnswered QuestionStatus = "ANSWERED"
	// StatusVisited means the user navigated away from the question at
	// least once without answering it.
	StatusVisited QuestionStatus = "VISITED"
	StatusUnseen  QuestionStatus = "UNSEEN"
)

// State is one exam attempt from start to submit. The attempt id ties
// timer ticks to the state they were scheduled against, so a tick that
// outlives its attempt can be recognized and dropped.
type State struct {
	AttemptID    uuid.UUID
	Questions    []model.SessionQuestion
	Answers      map[string]model.Answer
	Visited      map[string]bool
	CurrentIndex int
	TimeLeft     int
	Submitted    bool
}

// New creates a fresh attempt over the drawn questions with a full clock.
func New(questions []model.SessionQuestion, durationSeconds int) *State {
	return &State{
		AttemptID: uuid.New(),
		Questions: questions,
		Answers:   make(map[string]model.Answer),
		Visited:   make(map[string]bool),
		TimeLeft:  durationSeconds,
	}
}

// Current returns the question at the cursor.
func (s *State) Current() *model.SessionQuestion {
	return &s.Questions[s.CurrentIndex]
}

// QuestionByID looks a question up by bank id.
func (s *State) QuestionByID(id string) *model.SessionQuestion {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}

// Navigate moves the cursor. The question being left is marked visited.
// The cursor is clamped to the question range: prev at the first question
// and next at the last are no-ops, and a jump outside the range is clamped
// to the nearest boundary. Never wraps around.
func (s *State) Navigate(op model.NavigateOp, index int) {
	s.Visited[s.Current().ID] = true

	target := s.CurrentIndex
	switch op {
	case model.NavigateNext:
		target++
	case model.NavigatePrev:
		target--
	case model.NavigateJump:
		target = index
	}

	s.CurrentIndex = clamp(target, 0, len(s.Questions)-1)
}

// SelectOption records a selection for the question. Single-select replaces
// the stored answer; multi-select toggles the key in the answer set. An
// empty multi-select set counts as unanswered again.
func (s *State) SelectOption(questionID, key string) bool {
	q := s.QuestionByID(questionID)
	if q == nil {
		return false
	}
	if _, ok := q.Options[key]; !ok {
		return false
	}

	if q.MultiSelect() {
		next := s.Answers[questionID].Toggle(key)
		if len(next) == 0 {
			delete(s.Answers, questionID)
		} else {
			s.Answers[questionID] = next
		}
	} else {
		s.Answers[questionID] = model.Answer{key}
	}
	return true
}

// Status returns the progress marker for the question at index i.
func (s *State) Status(i int) QuestionStatus {
	id := s.Questions[i].ID
	if len(s.Answers[id]) > 0 {
		return StatusAnswered
	}
	if s.Visited[id] {
		return StatusVisited
	}
	return StatusUnseen
}

// AnsweredCount returns how many questions currently hold a selection.
func (s *State) AnsweredCount() int {
	return len(s.Answers)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
