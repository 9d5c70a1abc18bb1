package service

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/cloudprep/mockexam-backend/internal/bank"
	"github.com/cloudprep/mockexam-backend/internal/config"
)

// PlaceholderImage is served whenever a record references an image that is
// missing from the image directory. Asset errors are non-fatal by design.
const PlaceholderImage = "placeholder.png"

// ImageURLPrefix is the public route static images are mounted on.
const ImageURLPrefix = "/images/"

// ResourceService serves the read-only study content (notes, simulations)
// and resolves image references for every screen.
type ResourceService struct {
	cfg   *config.Config
	banks *bank.Banks
	log   zerolog.Logger
}

// NewResourceService creates a new ResourceService.
func NewResourceService(cfg *config.Config, banks *bank.Banks, log zerolog.Logger) *ResourceService {
	return &ResourceService{
		cfg:   cfg,
		banks: banks,
		log:   log.With().Str("component", "resource_service").Logger(),
	}
}

// NoteView is one note as the notes screen shows it.
type NoteView struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Content []string `json:"content"`
	Image   string   `json:"image,omitempty"`
}

// SimulationView is one simulation walkthrough, answer key included —
// simulations are self-check material, never exam-scored.
type SimulationView struct {
	ID           string            `json:"id"`
	Label        string            `json:"label,omitempty"`
	Instructions []string          `json:"instructions,omitempty"`
	Question     string            `json:"question,omitempty"`
	Options      map[string]string `json:"options,omitempty"`
	Answer       []string          `json:"answer,omitempty"`
	Explanation  string            `json:"explanation,omitempty"`
	Image        string            `json:"image,omitempty"`
}

// Notes returns the note bank for the notes screen.
func (s *ResourceService) Notes() []NoteView {
	notes := make([]NoteView, 0, len(s.banks.Notes))
	for i := range s.banks.Notes {
		n := &s.banks.Notes[i]
		notes = append(notes, NoteView{
			ID:      n.ID,
			Title:   n.Title,
			Content: n.Content,
			Image:   s.ImageURL(n.Image),
		})
	}
	return notes
}

// Simulations returns the simulation bank for the simulation screen.
func (s *ResourceService) Simulations() []SimulationView {
	sims := make([]SimulationView, 0, len(s.banks.Simulations))
	for i := range s.banks.Simulations {
		sim := &s.banks.Simulations[i]

		view := SimulationView{
			ID:           sim.ID,
			Label:        sim.Label,
			Instructions: sim.Instructions,
			Question:     sim.Question,
			Options:      sim.Options,
			Explanation:  sim.Explanation,
			Image:        s.ImageURL(sim.Image),
		}
		if sim.Answer != nil {
			view.Answer = sim.Answer.Keys
		}
		sims = append(sims, view)
	}
	return sims
}

// ImageURL resolves a bank image reference to its public URL. An empty
// reference stays empty; a reference to a missing file resolves to the
// placeholder so a broken asset never breaks a render.
func (s *ResourceService) ImageURL(name string) string {
	if name == "" {
		return ""
	}
	if _, err := os.Stat(filepath.Join(s.cfg.ImageDir, name)); err != nil {
		return ImageURLPrefix + PlaceholderImage
	}
	return ImageURLPrefix + name
}

// ImagePath resolves an image file name to the path the static handler
// serves, falling back to the placeholder for anything missing. The name
// is cleaned to its base so a request can never escape the image dir.
func (s *ResourceService) ImagePath(name string) string {
	name = filepath.Base(name)
	path := filepath.Join(s.cfg.ImageDir, name)
	if _, err := os.Stat(path); err != nil {
		return filepath.Join(s.cfg.ImageDir, PlaceholderImage)
	}
	return path
}
