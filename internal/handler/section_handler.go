package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusgrid/registrar/internal/model"
	"github.com/campusgrid/registrar/internal/response"
	"github.com/campusgrid/registrar/internal/service"
	"github.com/campusgrid/registrar/internal/validator"
)

// SectionHandler handles registrar-side section management.
type SectionHandler struct {
	sectionService    *service.SectionService
	enrollmentService *service.EnrollmentService
}

// NewSectionHandler creates a new SectionHandler.
func NewSectionHandler(sectionService *service.SectionService, enrollmentService *service.EnrollmentService) *SectionHandler {
	return &SectionHandler{
		sectionService:    sectionService,
		enrollmentService: enrollmentService,
	}
}

// GetAll godoc
// GET /api/v1/admin/sections
// Returns the full catalog view including live seat counts.
func (h *SectionHandler) GetAll(c *gin.Context) {
	sections, err := h.sectionService.ListCatalog(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}

	if sections == nil {
		sections = []model.SectionSeats{}
	}

	response.Success(c, http.StatusOK, gin.H{"sections": sections})
}

// GetByID godoc
// GET /api/v1/admin/sections/:id
func (h *SectionHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	section, err := h.sectionService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"section": section})
}

// Create godoc
// POST /api/v1/admin/sections
func (h *SectionHandler) Create(c *gin.Context) {
	var req model.SectionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	section := &model.Section{
		CourseID:     req.CourseID,
		InstructorID: req.InstructorID,
		Name:         req.Name,
		Capacity:     req.Capacity,
		Room:         req.Room,
		Timetable:    req.Timetable,
	}
	if err := h.sectionService.Create(c.Request.Context(), section); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"section": section})
}

// Update godoc
// PUT /api/v1/admin/sections/:id
func (h *SectionHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req model.SectionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	section := &model.Section{
		ID:           id,
		CourseID:     req.CourseID,
		InstructorID: req.InstructorID,
		Name:         req.Name,
		Capacity:     req.Capacity,
		Room:         req.Room,
		Timetable:    req.Timetable,
	}
	if err := h.sectionService.Update(c.Request.Context(), section); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "section updated successfully"})
}

// Delete godoc
// DELETE /api/v1/admin/sections/:id
// Rejected while the section still has enrollments.
func (h *SectionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.sectionService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "section deleted successfully"})
}

// GetRoster godoc
// GET /api/v1/admin/sections/:id/roster
func (h *SectionHandler) GetRoster(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	roster, err := h.enrollmentService.Roster(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	if roster == nil {
		roster = []model.RosterEntry{}
	}

	response.Success(c, http.StatusOK, gin.H{"roster": roster})
}
