package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cloudprep/mockexam-backend/internal/model"
	"github.com/cloudprep/mockexam-backend/internal/response"
	"github.com/cloudprep/mockexam-backend/internal/service"
	"github.com/cloudprep/mockexam-backend/internal/validator"
)

// ExamHandler exposes the exam state machine over HTTP: starting an
// attempt, navigating, answering, submitting and switching views.
type ExamHandler struct {
	examService     *service.ExamService
	resourceService *service.ResourceService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService, resourceService *service.ResourceService) *ExamHandler {
	return &ExamHandler{examService: examService, resourceService: resourceService}
}

// GetView godoc
// GET /api/v1/view
// Returns the active view plus the data needed to render it, mirroring the
// original conditional-render surface.
func (h *ExamHandler) GetView(c *gin.Context) {
	view := h.examService.View()
	payload := gin.H{"view": view}

	switch view {
	case model.ViewHome:
		payload["home"] = h.examService.Home()
	case model.ViewExam:
		if screen, err := h.examService.ExamScreen(); err == nil {
			payload["exam"] = screen
		}
	case model.ViewResults:
		if results, err := h.examService.Results(); err == nil {
			payload["results"] = results
		}
	case model.ViewNotes:
		payload["notes"] = h.resourceService.Notes()
	case model.ViewSimulation:
		payload["simulations"] = h.resourceService.Simulations()
	}

	response.Success(c, http.StatusOK, payload)
}

// StartExam godoc
// POST /api/v1/exam/start
// Draws a fresh randomized attempt and starts the countdown.
func (h *ExamHandler) StartExam(c *gin.Context) {
	screen, err := h.examService.StartExam()
	if err != nil {
		// A draw can only fail through misconfiguration (requested count
		// exceeding the bank); surface it as a server-side fault.
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exam": screen})
}

// GetExam godoc
// GET /api/v1/exam
// Returns the current question, progress strip, and remaining time.
func (h *ExamHandler) GetExam(c *gin.Context) {
	screen, err := h.examService.ExamScreen()
	if err != nil {
		failExamState(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exam": screen})
}

// Navigate godoc
// POST /api/v1/exam/navigate
// Moves between questions; boundary moves are quiet no-ops.
func (h *ExamHandler) Navigate(c *gin.Context) {
	var req model.NavigateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	screen, err := h.examService.Navigate(req.Op, req.Index)
	if err != nil {
		failExamState(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exam": screen})
}

// SelectOption godoc
// POST /api/v1/exam/answer
// Records a selection for a question of the running attempt.
func (h *ExamHandler) SelectOption(c *gin.Context) {
	var req model.SelectOptionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	screen, err := h.examService.SelectOption(req.QuestionID, req.Key)
	if err != nil {
		failExamState(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exam": screen})
}

// Submit godoc
// POST /api/v1/exam/submit
// Finishes the attempt. Idempotent: repeating the call returns the same
// results without appending to the history again.
func (h *ExamHandler) Submit(c *gin.Context) {
	results, err := h.examService.Submit()
	if err != nil {
		failExamState(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": results})
}

// GetResults godoc
// GET /api/v1/results
// Returns the post-submit review.
func (h *ExamHandler) GetResults(c *gin.Context) {
	results, err := h.examService.Results()
	if err != nil {
		failExamState(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": results})
}

// ─── View switching ────────────────────────────────────────────────

// OpenNotes godoc
// POST /api/v1/view/notes
func (h *ExamHandler) OpenNotes(c *gin.Context) {
	h.switchView(c, func() error { return h.examService.OpenResources(model.ViewNotes) })
}

// OpenSimulation godoc
// POST /api/v1/view/simulation
func (h *ExamHandler) OpenSimulation(c *gin.Context) {
	h.switchView(c, func() error { return h.examService.OpenResources(model.ViewSimulation) })
}

// BackToExam godoc
// POST /api/v1/view/exam
func (h *ExamHandler) BackToExam(c *gin.Context) {
	h.switchView(c, h.examService.BackToExam)
}

// BackToHome godoc
// POST /api/v1/view/home
func (h *ExamHandler) BackToHome(c *gin.Context) {
	h.switchView(c, h.examService.BackToHome)
}

func (h *ExamHandler) switchView(c *gin.Context, transition func() error) {
	if err := transition(); err != nil {
		failExamState(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"view": h.examService.View()})
}

// failExamState maps state-machine errors to API error codes.
func failExamState(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoActiveExam):
		response.Fail(c, http.StatusConflict, response.ErrNoActiveExam)
	case errors.Is(err, service.ErrNotSubmitted):
		response.Fail(c, http.StatusConflict, response.ErrNotSubmitted)
	case errors.Is(err, service.ErrExamSubmitted):
		response.Fail(c, http.StatusConflict, response.ErrExamSubmitted)
	case errors.Is(err, service.ErrViewConflict):
		response.Fail(c, http.StatusConflict, response.ErrViewConflict)
	case errors.Is(err, service.ErrUnknownOption):
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownOption)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
