package bank

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/cloudprep/mockexam-backend/internal/model"
)

// Bank file names expected under the configured bank directory. Only the
// question file is mandatory; notes and simulations are optional study
// content.
const (
	QuestionsFile   = "questions.json"
	NotesFile       = "notes.json"
	SimulationsFile = "simulations.json"
)

// Banks holds the static content loaded at startup. All three collections
// are immutable after Load returns.
type Banks struct {
	Questions   []model.Question
	Notes       []model.Note
	Simulations []model.Simulation
}

var validate = govalidator.New()

// Load reads and validates the bank files under dir. Malformed records fail
// fast with a descriptive error; the caller is expected to treat any error
// as fatal rather than serve a broken bank.
func Load(dir string, log zerolog.Logger) (*Banks, error) {
	b := &Banks{}

	if err := readJSON(filepath.Join(dir, QuestionsFile), &b.Questions); err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}
	if err := validateQuestions(b.Questions); err != nil {
		return nil, fmt.Errorf("validate question bank: %w", err)
	}

	// Optional banks: a missing file is fine, a malformed one is not.
	if err := readJSON(filepath.Join(dir, NotesFile), &b.Notes); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load note bank: %w", err)
		}
	} else if err := validateNotes(b.Notes); err != nil {
		return nil, fmt.Errorf("validate note bank: %w", err)
	}

	if err := readJSON(filepath.Join(dir, SimulationsFile), &b.Simulations); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load simulation bank: %w", err)
		}
	} else if err := validateSimulations(b.Simulations); err != nil {
		return nil, fmt.Errorf("validate simulation bank: %w", err)
	}

	log.Info().
		Int("questions", len(b.Questions)).
		Int("notes", len(b.Notes)).
		Int("simulations", len(b.Simulations)).
		Str("dir", dir).
		Msg("Banks loaded")

	return b, nil
}

func readJSON(path string, dst interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return nil
}

// validateQuestions enforces the structural invariants of the question
// bank: unique ids, 2–6 options, and every answer key present in the
// options map.
func validateQuestions(questions []model.Question) error {
	if len(questions) == 0 {
		return errors.New("question bank is empty")
	}

	seen := make(map[string]struct{}, len(questions))
	for i := range questions {
		q := &questions[i]

		if err := validate.Struct(q); err != nil {
			return fmt.Errorf("question %d (id %q): %w", i, q.ID, err)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("question %d: duplicate id %q", i, q.ID)
		}
		seen[q.ID] = struct{}{}

		if len(q.Answer.Keys) == 0 {
			return fmt.Errorf("question %q: missing answer", q.ID)
		}
		if q.Answer.Multi && len(q.Answer.Keys) < 2 {
			return fmt.Errorf("question %q: multi-select answer needs at least two keys", q.ID)
		}
		for _, key := range q.Answer.Keys {
			if _, ok := q.Options[key]; !ok {
				return fmt.Errorf("question %q: answer key %q not present in options", q.ID, key)
			}
		}
	}
	return nil
}

func validateNotes(notes []model.Note) error {
	seen := make(map[string]struct{}, len(notes))
	for i := range notes {
		n := &notes[i]
		if err := validate.Struct(n); err != nil {
			return fmt.Errorf("note %d (id %q): %w", i, n.ID, err)
		}
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("note %d: duplicate id %q", i, n.ID)
		}
		seen[n.ID] = struct{}{}
	}
	return nil
}

func validateSimulations(sims []model.Simulation) error {
	seen := make(map[string]struct{}, len(sims))
	for i := range sims {
		s := &sims[i]
		if err := validate.Struct(s); err != nil {
			return fmt.Errorf("simulation %d (id %q): %w", i, s.ID, err)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("simulation %d: duplicate id %q", i, s.ID)
		}
		seen[s.ID] = struct{}{}

		// A simulation answer, when present, must reference its own options.
		if s.Answer != nil {
			for _, key := range s.Answer.Keys {
				if _, ok := s.Options[key]; !ok {
					return fmt.Errorf("simulation %q: answer key %q not present in options", s.ID, key)
				}
			}
		}
	}
	return nil
}
