package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusgrid/registrar/internal/model"
	"github.com/campusgrid/registrar/internal/response"
	"github.com/campusgrid/registrar/internal/service"
	"github.com/campusgrid/registrar/internal/validator"
)

// InstructorHandler handles registrar-side instructor management.
type InstructorHandler struct {
	instructorService *service.InstructorService
}

// NewInstructorHandler creates a new InstructorHandler.
func NewInstructorHandler(instructorService *service.InstructorService) *InstructorHandler {
	return &InstructorHandler{instructorService: instructorService}
}

// GetAll godoc
// GET /api/v1/admin/instructors
func (h *InstructorHandler) GetAll(c *gin.Context) {
	instructors, err := h.instructorService.List(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}

	if instructors == nil {
		instructors = []model.Instructor{}
	}

	response.Success(c, http.StatusOK, gin.H{"instructors": instructors})
}

// GetByID godoc
// GET /api/v1/admin/instructors/:id
func (h *InstructorHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	instructor, err := h.instructorService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"instructor": instructor})
}

// Create godoc
// POST /api/v1/admin/instructors
func (h *InstructorHandler) Create(c *gin.Context) {
	var req model.CreateInstructorRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	instructor := &model.Instructor{
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
	}
	if err := h.instructorService.Create(c.Request.Context(), instructor, req.Password); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"instructor": instructor})
}

// Update godoc
// PUT /api/v1/admin/instructors/:id
func (h *InstructorHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateInstructorRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	instructor := &model.Instructor{
		ID:         id,
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
	}
	if err := h.instructorService.Update(c.Request.Context(), instructor); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "instructor updated successfully"})
}

// Delete godoc
// DELETE /api/v1/admin/instructors/:id
// Rejected while any section still references the instructor.
func (h *InstructorHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.instructorService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "instructor deleted successfully"})
}
