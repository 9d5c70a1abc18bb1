package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cloudprep/mockexam-backend/internal/bank"
	"github.com/cloudprep/mockexam-backend/internal/config"
	"github.com/cloudprep/mockexam-backend/internal/history"
	"github.com/cloudprep/mockexam-backend/internal/model"
	"github.com/cloudprep/mockexam-backend/internal/random"
	"github.com/cloudprep/mockexam-backend/internal/scoring"
	"github.com/cloudprep/mockexam-backend/internal/session"
)

// Sentinel errors for state-machine violations the HTTP layer maps to
// specific error codes. Boundary navigation and double submits are NOT
// errors — those are absorbed as no-ops.
var (
	ErrNoActiveExam  = errors.New("no exam in progress")
	ErrNotSubmitted  = errors.New("exam not submitted yet")
	ErrExamSubmitted = errors.New("exam already submitted")
	ErrViewConflict  = errors.New("action not available from the current view")
	ErrUnknownOption = errors.New("option does not belong to the question")
)

// EventSink receives timer side effects. The WebSocket hub implements it;
// a nil sink silently drops events so the core stays testable without a
// transport.
type EventSink interface {
	TimerTick(timeLeft int)
	LowTime(timeLeft int)
	AutoSubmitted(score, total int)
}

// ExamService is the view-state machine driving the whole application:
// which screen is active, the live attempt, the countdown, scoring and the
// score history. All state transitions run under one lock; the timer
// goroutine is just another caller of that lock.
type ExamService struct {
	cfg       *config.Config
	banks     *bank.Banks
	drawer    *random.Randomizer
	history   *history.Store
	resources *ResourceService
	events    EventSink
	log       zerolog.Logger

	mu    sync.Mutex
	view  model.View
	state *session.State
	score int
	// timerGen invalidates timer goroutines from earlier exam views. A
	// tick belonging to an older generation must not touch the state,
	// even if its attempt id still matches.
	timerGen     int
	lowTimeFired bool
	closed       bool
}

// NewExamService creates the controller in the Home view.
func NewExamService(
	cfg *config.Config,
	banks *bank.Banks,
	drawer *random.Randomizer,
	historyStore *history.Store,
	resources *ResourceService,
	events EventSink,
	log zerolog.Logger,
) *ExamService {
	return &ExamService{
		cfg:       cfg,
		banks:     banks,
		drawer:    drawer,
		history:   historyStore,
		resources: resources,
		events:    events,
		log:       log.With().Str("component", "exam_service").Logger(),
		view:      model.ViewHome,
	}
}

// View returns the currently active screen.
func (s *ExamService) View() model.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// ─── Home ──────────────────────────────────────────────────────────

// Home returns the home screen payload: the persisted score history.
func (s *ExamService) Home() *HomeScreen {
	scores := s.history.Load()
	attempts := make([]AttemptScore, len(scores))
	for i, sc := range scores {
		attempts[i] = AttemptScore{Attempt: i + 1, Score: sc, Total: s.cfg.QuestionCount}
	}
	return &HomeScreen{History: attempts}
}

// ClearHistory wipes the persisted score log. Clearing an empty history is
// a no-op.
func (s *ExamService) ClearHistory() {
	s.history.Clear()
}

// ─── Exam lifecycle ────────────────────────────────────────────────

// StartExam draws a fresh attempt, resets all session state, switches to
// the exam view and starts the countdown. Any previous attempt is
// discarded.
func (s *ExamService) StartExam() (*ExamScreen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	questions, err := s.drawer.Draw(s.banks.Questions, s.cfg.QuestionCount)
	if err != nil {
		return nil, fmt.Errorf("draw questions: %w", err)
	}

	s.state = session.New(questions, int(s.cfg.ExamDuration.Seconds()))
	s.view = model.ViewExam
	s.score = 0
	s.lowTimeFired = false
	s.startTimerLocked()

	s.log.Info().
		Str("attempt_id", s.state.AttemptID.String()).
		Int("questions", len(questions)).
		Int("time_left", s.state.TimeLeft).
		Msg("Exam started")

	return s.examScreenLocked(), nil
}

// ExamScreen returns the current question and progress strip.
func (s *ExamService) ExamScreen() (*ExamScreen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireExamLocked(); err != nil {
		return nil, err
	}
	return s.examScreenLocked(), nil
}

// Navigate moves between questions. The question being left is marked
// visited; out-of-range targets are clamped, so prev on the first question
// and next on the last are quiet no-ops.
func (s *ExamService) Navigate(op model.NavigateOp, index int) (*ExamScreen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireExamLocked(); err != nil {
		return nil, err
	}
	s.state.Navigate(op, index)
	return s.examScreenLocked(), nil
}

// SelectOption records an answer: replace for single-select, toggle for
// multi-select.
func (s *ExamService) SelectOption(questionID, key string) (*ExamScreen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireExamLocked(); err != nil {
		return nil, err
	}
	if !s.state.SelectOption(questionID, key) {
		return nil, ErrUnknownOption
	}
	return s.examScreenLocked(), nil
}

// Submit finishes the attempt: freezes the session, scores it, appends the
// score to the history and switches to the results view. Submitting an
// already-submitted attempt is a no-op that returns the existing results —
// the history is never appended twice.
func (s *ExamService) Submit() (*ResultsScreen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		return nil, ErrNoActiveExam
	}
	if s.state.Submitted {
		return s.resultsLocked(), nil
	}

	s.submitLocked()
	return s.resultsLocked(), nil
}

// Results returns the post-submit review.
func (s *ExamService) Results() (*ResultsScreen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		return nil, ErrNoActiveExam
	}
	if !s.state.Submitted {
		return nil, ErrNotSubmitted
	}
	return s.resultsLocked(), nil
}

// ─── Side views and returning ──────────────────────────────────────

// OpenResources switches to the notes or simulation view. Allowed from the
// exam and results screens; the attempt is left untouched so the user can
// come back to it.
func (s *ExamService) OpenResources(target model.View) error {
	if target != model.ViewNotes && target != model.ViewSimulation {
		return ErrViewConflict
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != model.ViewExam && s.view != model.ViewResults {
		return ErrViewConflict
	}
	s.view = target
	return nil
}

// BackToExam returns from a side view. An unsubmitted attempt resumes the
// exam screen and its countdown; a submitted one lands back on the frozen
// results screen.
func (s *ExamService) BackToExam() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != model.ViewNotes && s.view != model.ViewSimulation {
		return ErrViewConflict
	}
	if s.state == nil {
		return ErrNoActiveExam
	}

	if s.state.Submitted {
		s.view = model.ViewResults
		return nil
	}
	s.view = model.ViewExam
	s.startTimerLocked()
	return nil
}

// BackToHome discards the attempt and returns to the home screen. The next
// StartExam creates a fresh session.
func (s *ExamService) BackToHome() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view == model.ViewExam || s.view == model.ViewHome {
		return ErrViewConflict
	}
	s.state = nil
	s.view = model.ViewHome
	return nil
}

// Shutdown stops the timer permanently. Called on process exit.
func (s *ExamService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// ─── Timer ─────────────────────────────────────────────────────────

// startTimerLocked launches a countdown goroutine for the current attempt.
// Each start bumps the generation counter so a goroutine from an earlier
// exam view can never race a freshly started one.
func (s *ExamService) startTimerLocked() {
	s.timerGen++
	go s.runTimer(s.state.AttemptID, s.timerGen)
}

func (s *ExamService) runTimer(attemptID uuid.UUID, gen int) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if !s.tick(attemptID, gen) {
			return
		}
	}
}

// tick advances the countdown by one second. Returns false when this timer
// must stop rescheduling itself: attempt gone or replaced, generation
// stale, view left the exam, already submitted, or clock exhausted. The
// guard runs fresh on every firing — cancellation alone is never trusted.
func (s *ExamService) tick(attemptID uuid.UUID, gen int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state == nil || s.state.AttemptID != attemptID || gen != s.timerGen {
		return false
	}
	if s.view != model.ViewExam || s.state.Submitted || s.state.TimeLeft <= 0 {
		return false
	}

	s.state.TimeLeft--
	left := s.state.TimeLeft

	if s.events != nil {
		s.events.TimerTick(left)
	}

	if left == int(s.cfg.LowTimeThreshold.Seconds()) && !s.lowTimeFired {
		s.lowTimeFired = true
		s.log.Info().Int("time_left", left).Msg("Low time warning")
		if s.events != nil {
			s.events.LowTime(left)
		}
	}

	if left == 0 {
		s.log.Info().Str("attempt_id", attemptID.String()).Msg("Time expired, forcing submit")
		s.submitLocked()
		if s.events != nil {
			s.events.AutoSubmitted(s.score, len(s.state.Questions))
		}
		return false
	}

	return true
}

// ─── Internal transitions ──────────────────────────────────────────

// submitLocked performs the one-way submit transition: score, persist,
// freeze, show results. Callers must hold the lock and have checked
// Submitted themselves.
func (s *ExamService) submitLocked() {
	s.state.Submitted = true
	s.score = scoring.Score(s.state.Questions, s.state.Answers)
	s.history.Append(s.score)
	s.view = model.ViewResults

	s.log.Info().
		Str("attempt_id", s.state.AttemptID.String()).
		Int("score", s.score).
		Int("total", len(s.state.Questions)).
		Msg("Exam submitted")
}

func (s *ExamService) requireExamLocked() error {
	if s.state == nil {
		return ErrNoActiveExam
	}
	if s.state.Submitted {
		return ErrExamSubmitted
	}
	if s.view != model.ViewExam {
		return ErrViewConflict
	}
	return nil
}
