package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cloudprep/mockexam-backend/internal/response"
	"github.com/cloudprep/mockexam-backend/internal/service"
)

// HistoryHandler exposes the persisted score log.
type HistoryHandler struct {
	examService *service.ExamService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(examService *service.ExamService) *HistoryHandler {
	return &HistoryHandler{examService: examService}
}

// GetHistory godoc
// GET /api/v1/history
// Returns every past attempt in order.
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	response.Success(c, http.StatusOK, h.examService.Home())
}

// ClearHistory godoc
// DELETE /api/v1/history
// Removes all persisted scores. A no-op when the history is already empty.
func (h *HistoryHandler) ClearHistory(c *gin.Context) {
	h.examService.ClearHistory()
	response.Success(c, http.StatusOK, gin.H{"cleared": true})
}
