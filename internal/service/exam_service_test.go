package service

import (
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cloudprep/mockexam-backend/internal/bank"
	"github.com/cloudprep/mockexam-backend/internal/config"
	"github.com/cloudprep/mockexam-backend/internal/history"
	"github.com/cloudprep/mockexam-backend/internal/model"
	"github.com/cloudprep/mockexam-backend/internal/random"
)

// recordingSink captures timer side effects. Safe for concurrent use since
// the real timer goroutine may fire during a test.
type recordingSink struct {
	mu          sync.Mutex
	ticks       []int
	lowTimes    []int
	autoSubmits [][2]int
}

func (r *recordingSink) TimerTick(timeLeft int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, timeLeft)
}

func (r *recordingSink) LowTime(timeLeft int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lowTimes = append(r.lowTimes, timeLeft)
}

func (r *recordingSink) AutoSubmitted(score, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.autoSubmits = append(r.autoSubmits, [2]int{score, total})
}

func (r *recordingSink) counts() (lowTimes, autoSubmits int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.lowTimes), len(r.autoSubmits)
}

func testBanks() *bank.Banks {
	return &bank.Banks{
		Questions: []model.Question{
			{
				ID:      "q1",
				Prompt:  "Which tier?",
				Options: map[string]string{"A": "Hot", "B": "Cool", "C": "Archive"},
				Answer:  model.AnswerKey{Keys: []string{"B"}},
			},
			{
				ID:          "q2",
				Prompt:      "Pick two.",
				Options:     map[string]string{"A": "One", "B": "Two", "C": "Three"},
				Answer:      model.AnswerKey{Keys: []string{"A", "C"}, Multi: true},
				Explanation: "A and C are the valid pair.",
			},
		},
	}
}

func newTestService(t *testing.T, duration time.Duration) (*ExamService, *recordingSink) {
	t.Helper()

	cfg := &config.Config{
		QuestionCount:    2,
		ExamDuration:     duration,
		LowTimeThreshold: 300 * time.Second,
		ImageDir:         t.TempDir(),
		HistoryDBPath:    t.TempDir() + "/history.db",
	}

	store := history.Open(cfg.HistoryDBPath, zerolog.Nop())
	t.Cleanup(func() { _ = store.Close() })

	banks := testBanks()
	sink := &recordingSink{}
	resources := NewResourceService(cfg, banks, zerolog.Nop())
	drawer := random.New(rand.NewSource(1))
	svc := NewExamService(cfg, banks, drawer, store, resources, sink, zerolog.Nop())
	t.Cleanup(svc.Shutdown)

	return svc, sink
}

// attemptInfo reads the live attempt identity under the service lock so
// tests can drive ticks by hand.
func attemptInfo(s *ExamService) (uuid.UUID, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.AttemptID, s.timerGen
}

func timeLeft(s *ExamService) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return -1
	}
	return s.state.TimeLeft
}

func TestStartExamEntersExamView(t *testing.T) {
	svc, _ := newTestService(t, 70*time.Minute)

	screen, err := svc.StartExam()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if svc.View() != model.ViewExam {
		t.Errorf("view = %s, want EXAM", svc.View())
	}
	if screen.Total != 2 {
		t.Errorf("total = %d, want 2", screen.Total)
	}
	if screen.Number != 1 {
		t.Errorf("number = %d, want 1", screen.Number)
	}
	if screen.TimeLeft != 4200 {
		t.Errorf("time_left = %d, want 4200", screen.TimeLeft)
	}
	if screen.TimeDisplay != "70:00" {
		t.Errorf("time_display = %s, want 70:00", screen.TimeDisplay)
	}
	for _, p := range screen.Progress {
		if p.Status != "UNSEEN" {
			t.Errorf("fresh question %d should be UNSEEN, got %s", p.Index, p.Status)
		}
	}
}

func TestTimerCountdownForcesSubmitExactlyOnce(t *testing.T) {
	svc, sink := newTestService(t, 5400*time.Second)

	if _, err := svc.StartExam(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	attemptID, gen := attemptInfo(svc)

	for i := 0; i < 5400; i++ {
		svc.tick(attemptID, gen)
	}

	if got := timeLeft(svc); got != 0 {
		t.Errorf("time_left = %d, want 0", got)
	}

	lowTimes, autoSubmits := sink.counts()
	if autoSubmits != 1 {
		t.Errorf("forced submit fired %d times, want exactly 1", autoSubmits)
	}
	if lowTimes != 1 {
		t.Errorf("low-time alert fired %d times, want exactly 1", lowTimes)
	}

	// A tick against the finished attempt must not move the clock or
	// double-append the score.
	if svc.tick(attemptID, gen) {
		t.Error("tick against a submitted attempt should report stop")
	}
	if got := timeLeft(svc); got != 0 {
		t.Errorf("time_left changed after submit: %d", got)
	}
	if got := len(svc.history.Load()); got != 1 {
		t.Errorf("history has %d entries after forced submit, want 1", got)
	}
	if svc.View() != model.ViewResults {
		t.Errorf("view = %s, want RESULTS after forced submit", svc.View())
	}
}

func TestLowTimeAlertFiresOnceAtThreshold(t *testing.T) {
	svc, sink := newTestService(t, 305*time.Second)

	if _, err := svc.StartExam(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	attemptID, gen := attemptInfo(svc)

	for i := 0; i < 5; i++ {
		svc.tick(attemptID, gen)
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.lowTimes) != 1 {
		t.Fatalf("low-time alert fired %d times, want 1", len(sink.lowTimes))
	}
	if sink.lowTimes[0] != 300 {
		t.Errorf("low-time alert fired at %d seconds, want 300", sink.lowTimes[0])
	}
}

func TestSubmitIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t, 70*time.Minute)

	if _, err := svc.StartExam(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.SelectOption("q1", "B"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := svc.Submit()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Submit()
	if err != nil {
		t.Fatalf("second submit should be a quiet no-op, got %v", err)
	}

	if first.Score != second.Score {
		t.Errorf("submit not idempotent: %d then %d", first.Score, second.Score)
	}
	if got := len(svc.history.Load()); got != 1 {
		t.Errorf("history has %d entries after double submit, want exactly 1", got)
	}
}

func TestScoringScenario(t *testing.T) {
	svc, _ := newTestService(t, 70*time.Minute)

	// Q1 = "B", Q2 toggled to {C, A}: both correct regardless of order.
	if _, err := svc.StartExam(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc.SelectOption("q1", "B")
	svc.SelectOption("q2", "C")
	svc.SelectOption("q2", "A")

	results, err := svc.Submit()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results.Score != 2 {
		t.Errorf("score = %d, want 2", results.Score)
	}

	// Fresh attempt with Q2 = {A} only: subsets earn nothing.
	if err := svc.BackToHome(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.StartExam(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc.SelectOption("q1", "B")
	svc.SelectOption("q2", "A")

	results, err = svc.Submit()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results.Score != 1 {
		t.Errorf("score = %d, want 1", results.Score)
	}

	for _, entry := range results.Review {
		if entry.Prompt == "Pick two." {
			if entry.Correct {
				t.Error("subset answer marked correct")
			}
			if !entry.Answered {
				t.Error("answered question marked unanswered")
			}
			if entry.Explanation == "" {
				t.Error("explanation missing from review")
			}
		}
	}
}

func TestNavigationClampsAtBoundaries(t *testing.T) {
	svc, _ := newTestService(t, 70*time.Minute)

	if _, err := svc.StartExam(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	screen, err := svc.Navigate(model.NavigatePrev, 0)
	if err != nil {
		t.Fatalf("prev at first question should be absorbed, got %v", err)
	}
	if screen.Number != 1 {
		t.Errorf("prev at first question moved to %d", screen.Number)
	}

	svc.Navigate(model.NavigateJump, 99)
	screen, _ = svc.ExamScreen()
	if screen.Number != screen.Total {
		t.Errorf("jump past the end landed on %d, want %d", screen.Number, screen.Total)
	}

	screen, err = svc.Navigate(model.NavigateNext, 0)
	if err != nil {
		t.Fatalf("next at last question should be absorbed, got %v", err)
	}
	if screen.Number != screen.Total {
		t.Errorf("next at last question moved to %d", screen.Number)
	}
}

func TestViewTransitions(t *testing.T) {
	svc, _ := newTestService(t, 70*time.Minute)

	// Side views are unreachable from home.
	if err := svc.OpenResources(model.ViewNotes); !errors.Is(err, ErrViewConflict) {
		t.Errorf("notes from home: got %v, want ErrViewConflict", err)
	}
	// Results only exist after a submit.
	if _, err := svc.Results(); !errors.Is(err, ErrNoActiveExam) {
		t.Errorf("results with no attempt: got %v, want ErrNoActiveExam", err)
	}

	if _, err := svc.StartExam(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Results(); !errors.Is(err, ErrNotSubmitted) {
		t.Errorf("results before submit: got %v, want ErrNotSubmitted", err)
	}

	// Detour to notes and back preserves the attempt.
	svc.SelectOption("q1", "B")
	if err := svc.OpenResources(model.ViewNotes); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.View() != model.ViewNotes {
		t.Errorf("view = %s, want NOTES", svc.View())
	}
	if err := svc.BackToExam(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	screen, err := svc.ExamScreen()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(screen.Question.Selected) != 1 || screen.Question.Selected[0] != "B" {
		t.Errorf("answer lost across the notes detour: %v", screen.Question.Selected)
	}

	// After submit, returning from a side view lands on results.
	if _, err := svc.Submit(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.OpenResources(model.ViewSimulation); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.BackToExam(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.View() != model.ViewResults {
		t.Errorf("view = %s, want RESULTS for submitted attempt", svc.View())
	}

	// Back home discards the attempt entirely.
	if err := svc.BackToHome(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.ExamScreen(); !errors.Is(err, ErrNoActiveExam) {
		t.Errorf("exam screen after discard: got %v, want ErrNoActiveExam", err)
	}
}

func TestStaleTimerTickIsIgnored(t *testing.T) {
	svc, _ := newTestService(t, 70*time.Minute)

	if _, err := svc.StartExam(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	oldAttempt, oldGen := attemptInfo(svc)

	// Leaving for notes and coming back starts a fresh timer generation —
	// a tick raced from before the detour must not touch the clock.
	if err := svc.OpenResources(model.ViewNotes); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.BackToExam(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before := timeLeft(svc)
	if svc.tick(oldAttempt, oldGen) {
		t.Error("stale-generation tick should report stop")
	}
	if got := timeLeft(svc); got != before {
		t.Errorf("stale tick moved the clock: %d -> %d", before, got)
	}

	// A tick from a discarded attempt is equally dead.
	svc.Submit()
	svc.BackToHome()
	svc.StartExam()
	before = timeLeft(svc)
	if svc.tick(oldAttempt, oldGen) {
		t.Error("tick from a discarded attempt should report stop")
	}
	if got := timeLeft(svc); got != before {
		t.Errorf("discarded-attempt tick moved the clock: %d -> %d", before, got)
	}
}

func TestTickWhileInSideViewStops(t *testing.T) {
	svc, _ := newTestService(t, 70*time.Minute)

	if _, err := svc.StartExam(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	attemptID, gen := attemptInfo(svc)

	if err := svc.OpenResources(model.ViewNotes); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before := timeLeft(svc)
	if svc.tick(attemptID, gen) {
		t.Error("tick outside the exam view should report stop")
	}
	if got := timeLeft(svc); got != before {
		t.Errorf("clock moved while in a side view: %d -> %d", before, got)
	}
}
