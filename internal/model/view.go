package model

// View enumerates the screens of the application. Exactly one view is
// active at a time; transitions between them are owned by the exam service.
type View string

const (
	ViewHome       View = "HOME"
	ViewExam       View = "EXAM"
	ViewResults    View = "RESULTS"
	ViewNotes      View = "NOTES"
	ViewSimulation View = "SIMULATION"
)

// NavigateOp enumerates the navigation operations within the exam view.
type NavigateOp string

const (
	NavigateNext NavigateOp = "next"
	NavigatePrev NavigateOp = "prev"
	NavigateJump NavigateOp = "jump"
)

// NavigateRequest is the payload for moving between questions. Index is
// only consulted for the "jump" operation.
type NavigateRequest struct {
	Op    NavigateOp `json:"op" binding:"required,oneof=next prev jump"`
	Index int        `json:"index" binding:"min=0"`
}

// SelectOptionRequest is the payload for answering the current question.
// Single-select questions replace the stored answer; multi-select questions
// toggle the key's membership.
type SelectOptionRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
	Key        string `json:"key" binding:"required,max=2"`
}
