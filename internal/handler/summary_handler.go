package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusgrid/registrar/internal/response"
	"github.com/campusgrid/registrar/internal/service"
)

// SummaryHandler serves the registrar dashboard counters.
type SummaryHandler struct {
	summaryService *service.SummaryService
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryService *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// GetCounts godoc
// GET /api/v1/admin/summary
func (h *SummaryHandler) GetCounts(c *gin.Context) {
	counts, err := h.summaryService.Counts(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"counts": counts})
}
