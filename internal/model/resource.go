package model

import (
	"encoding/json"
	"fmt"
)

// TextOrList holds content the bank encodes either as one text block or as
// an ordered list of bullet strings. Internally it is always a list; a
// plain string becomes a single-element list.
type TextOrList []string

// UnmarshalJSON accepts "text" as well as ["step one", "step two"].
func (t *TextOrList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = TextOrList{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("content must be a string or an array of strings: %w", err)
	}
	*t = list
	return nil
}

// Note is one study-notes record. Notes are reference content only and are
// never scored.
type Note struct {
	ID      string     `json:"id" validate:"required"`
	Title   string     `json:"title" validate:"required"`
	Content TextOrList `json:"content" validate:"required,min=1"`
	Image   string     `json:"image,omitempty"`
}

// Simulation is one simulation-walkthrough record. Every field beyond the
// id is optional: some entries are pure instructions, some carry a scored-
// looking question with an answer key for self-checking.
type Simulation struct {
	ID           string            `json:"id" validate:"required"`
	Label        string            `json:"label,omitempty"`
	Instructions TextOrList        `json:"instructions,omitempty"`
	Question     string            `json:"question,omitempty"`
	Options      map[string]string `json:"options,omitempty"`
	Answer       *AnswerKey        `json:"answer,omitempty"`
	Explanation  string            `json:"explanation,omitempty"`
	Image        string            `json:"image,omitempty"`
}
