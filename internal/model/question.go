package model

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Question is one record of the static question bank. Options maps label
// keys ("A".."F") to option text; the map itself is unordered — the order a
// session presents them in lives on SessionQuestion.
type Question struct {
	ID          string            `json:"id" validate:"required"`
	Prompt      string            `json:"question" validate:"required"`
	Options     map[string]string `json:"options" validate:"required,min=2,max=6"`
	Answer      AnswerKey         `json:"answer"`
	Image       string            `json:"image,omitempty"`
	Explanation string            `json:"explanation,omitempty"`
}

// MultiSelect reports whether the question expects a set of keys.
func (q *Question) MultiSelect() bool {
	return q.Answer.Multi
}

// SessionQuestion is a bank question plus the option order fixed for one
// exam attempt. PresentedOrder is a permutation of the Options keys, set
// once when the attempt is drawn and never mutated afterwards.
type SessionQuestion struct {
	Question
	PresentedOrder []string `json:"presented_order"`
}

// AnswerKey is the correct answer of a question: a single label key, or a
// set of label keys for multi-select questions. The bank encodes it as
// either a JSON string or a JSON array of strings.
type AnswerKey struct {
	Keys  []string
	Multi bool
}

// UnmarshalJSON accepts "B" as well as ["A","C"].
func (k *AnswerKey) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		k.Keys = []string{single}
		k.Multi = false
		return nil
	}

	var multi []string
	if err := json.Unmarshal(data, &multi); err != nil {
		return fmt.Errorf("answer must be a string or an array of strings: %w", err)
	}
	k.Keys = multi
	k.Multi = true
	return nil
}

// MarshalJSON writes the same shape the bank uses.
func (k AnswerKey) MarshalJSON() ([]byte, error) {
	if !k.Multi && len(k.Keys) == 1 {
		return json.Marshal(k.Keys[0])
	}
	return json.Marshal(k.Keys)
}

// Answer is the user's selection for one question: exactly one key for
// single-select, an unordered set of keys for multi-select. A question id
// absent from the answers map means "unanswered".
type Answer []string

// Contains reports whether key is part of the selection.
func (a Answer) Contains(key string) bool {
	for _, k := range a {
		if k == key {
			return true
		}
	}
	return false
}

// Toggle returns the selection with key added if absent or removed if
// present. The receiver is not mutated.
func (a Answer) Toggle(key string) Answer {
	if !a.Contains(key) {
		out := make(Answer, 0, len(a)+1)
		out = append(out, a...)
		return append(out, key)
	}
	out := make(Answer, 0, len(a)-1)
	for _, k := range a {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}

// EqualsSet compares the selection with keys as sets, ignoring order.
func (a Answer) EqualsSet(keys []string) bool {
	if len(a) != len(keys) {
		return false
	}
	x := append([]string(nil), a...)
	y := append([]string(nil), keys...)
	sort.Strings(x)
	sort.Strings(y)
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}
