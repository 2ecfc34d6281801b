package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusgrid/registrar/internal/model"
	"github.com/campusgrid/registrar/internal/response"
	"github.com/campusgrid/registrar/internal/service"
	"github.com/campusgrid/registrar/internal/validator"
)

// StudentHandler handles registrar-side student management.
type StudentHandler struct {
	studentService *service.StudentService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService *service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// GetAll godoc
// GET /api/v1/admin/students
func (h *StudentHandler) GetAll(c *gin.Context) {
	students, err := h.studentService.List(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}

	if students == nil {
		students = []model.Student{}
	}

	response.Success(c, http.StatusOK, gin.H{"students": students})
}

// GetByID godoc
// GET /api/v1/admin/students/:id
func (h *StudentHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// Create godoc
// POST /api/v1/admin/students
// Creates the login credential first, then the profile; the credential is
// removed again if the profile insert fails.
func (h *StudentHandler) Create(c *gin.Context) {
	var req model.CreateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student := &model.Student{
		Name:    req.Name,
		Email:   req.Email,
		Program: req.Program,
	}
	if err := h.studentService.Create(c.Request.Context(), student, req.Password); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"student": student})
}

// Update godoc
// PUT /api/v1/admin/students/:id
func (h *StudentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student := &model.Student{
		ID:      id,
		Name:    req.Name,
		Email:   req.Email,
		Program: req.Program,
	}
	if err := h.studentService.Update(c.Request.Context(), student); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "student updated successfully"})
}

// Delete godoc
// DELETE /api/v1/admin/students/:id
// Rejected while the student still has enrollments.
func (h *StudentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "student deleted successfully"})
}
