package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cloudprep/mockexam-backend/internal/response"
	"github.com/cloudprep/mockexam-backend/internal/service"
)

// ResourceHandler serves the study content and bank images.
type ResourceHandler struct {
	resourceService *service.ResourceService
}

// NewResourceHandler creates a new ResourceHandler.
func NewResourceHandler(resourceService *service.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

// ListNotes godoc
// GET /api/v1/notes
func (h *ResourceHandler) ListNotes(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"notes": h.resourceService.Notes()})
}

// ListSimulations godoc
// GET /api/v1/simulations
func (h *ResourceHandler) ListSimulations(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"simulations": h.resourceService.Simulations()})
}

// GetImage godoc
// GET /images/:name
// Serves a bank image, substituting the placeholder for anything missing —
// a broken asset reference must never fail a render.
func (h *ResourceHandler) GetImage(c *gin.Context) {
	c.File(h.resourceService.ImagePath(c.Param("name")))
}
