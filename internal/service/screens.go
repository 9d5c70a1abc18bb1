package service

import (
	"fmt"

	"github.com/cloudprep/mockexam-backend/internal/scoring"
	"github.com/cloudprep/mockexam-backend/internal/session"
)

// Screen payloads returned to the HTTP layer. These are read-only
// projections of the session state; mutating them never touches the
// attempt.

// AttemptScore is one line of the home-screen history list.
type AttemptScore struct {
	Attempt int `json:"attempt"`
	Score   int `json:"score"`
	Total   int `json:"total"`
}

// HomeScreen is the data behind the home view.
type HomeScreen struct {
	History []AttemptScore `json:"history"`
}

// OptionView is one selectable option in presented order.
type OptionView struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// QuestionView is the current question as the exam screen shows it.
type QuestionView struct {
	ID          string       `json:"id"`
	Prompt      string       `json:"prompt"`
	Image       string       `json:"image,omitempty"`
	Options     []OptionView `json:"options"`
	MultiSelect bool         `json:"multi_select"`
	Selected    []string     `json:"selected"`
}

// ProgressEntry is one cell of the progress strip.
type ProgressEntry struct {
	Index  int                    `json:"index"`
	Status session.QuestionStatus `json:"status"`
}

// ExamScreen is the data behind the exam view.
type ExamScreen struct {
	AttemptID   string          `json:"attempt_id"`
	Number      int             `json:"number"`
	Total       int             `json:"total"`
	Question    QuestionView    `json:"question"`
	Progress    []ProgressEntry `json:"progress"`
	TimeLeft    int             `json:"time_left"`
	TimeDisplay string          `json:"time_display"`
	// CanSubmit mirrors the original surface: the submit control only
	// appears on the last question.
	CanSubmit bool `json:"can_submit"`
}

// ReviewEntry is one graded question on the results screen. Answers are
// shown as option text, resolved through the question's own options map.
type ReviewEntry struct {
	Number        int      `json:"number"`
	Prompt        string   `json:"prompt"`
	Image         string   `json:"image,omitempty"`
	Answered      bool     `json:"answered"`
	Correct       bool     `json:"correct"`
	YourAnswer    []string `json:"your_answer"`
	CorrectAnswer []string `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// ResultsScreen is the data behind the results view.
type ResultsScreen struct {
	Score  int           `json:"score"`
	Total  int           `json:"total"`
	Review []ReviewEntry `json:"review"`
}

// ─── Builders (callers hold the service lock) ──────────────────────

func (s *ExamService) examScreenLocked() *ExamScreen {
	st := s.state
	q := st.Current()

	options := make([]OptionView, 0, len(q.PresentedOrder))
	for _, key := range q.PresentedOrder {
		options = append(options, OptionView{Key: key, Text: q.Options[key]})
	}

	progress := make([]ProgressEntry, len(st.Questions))
	for i := range st.Questions {
		progress[i] = ProgressEntry{Index: i, Status: st.Status(i)}
	}

	return &ExamScreen{
		AttemptID: st.AttemptID.String(),
		Number:    st.CurrentIndex + 1,
		Total:     len(st.Questions),
		Question: QuestionView{
			ID:          q.ID,
			Prompt:      q.Prompt,
			Image:       s.resources.ImageURL(q.Image),
			Options:     options,
			MultiSelect: q.MultiSelect(),
			Selected:    append([]string{}, st.Answers[q.ID]...),
		},
		Progress:    progress,
		TimeLeft:    st.TimeLeft,
		TimeDisplay: formatTime(st.TimeLeft),
		CanSubmit:   st.CurrentIndex == len(st.Questions)-1,
	}
}

func (s *ExamService) resultsLocked() *ResultsScreen {
	st := s.state

	review := make([]ReviewEntry, 0, len(st.Questions))
	for i := range st.Questions {
		q := &st.Questions[i]
		answer := st.Answers[q.ID]

		entry := ReviewEntry{
			Number:        i + 1,
			Prompt:        q.Prompt,
			Image:         s.resources.ImageURL(q.Image),
			Answered:      len(answer) > 0,
			Correct:       scoring.IsCorrect(&q.Question, answer),
			YourAnswer:    optionTexts(q.Options, answer),
			CorrectAnswer: optionTexts(q.Options, q.Answer.Keys),
			Explanation:   q.Explanation,
		}
		review = append(review, entry)
	}

	return &ResultsScreen{
		Score:  s.score,
		Total:  len(st.Questions),
		Review: review,
	}
}

// optionTexts maps selected keys to their option text via the original,
// unshuffled options map.
func optionTexts(options map[string]string, keys []string) []string {
	texts := make([]string, 0, len(keys))
	for _, key := range keys {
		if text, ok := options[key]; ok {
			texts = append(texts, fmt.Sprintf("%s. %s", key, text))
		}
	}
	return texts
}

// formatTime renders seconds as MM:SS. Minutes may exceed two digits for
// long exams; they are never truncated.
func formatTime(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
