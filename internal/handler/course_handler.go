package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusgrid/registrar/internal/model"
	"github.com/campusgrid/registrar/internal/response"
	"github.com/campusgrid/registrar/internal/service"
	"github.com/campusgrid/registrar/internal/validator"
)

// CourseHandler handles registrar-side course catalog management.
type CourseHandler struct {
	courseService *service.CourseService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// GetAll godoc
// GET /api/v1/admin/courses
func (h *CourseHandler) GetAll(c *gin.Context) {
	courses, err := h.courseService.List(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}

	if courses == nil {
		courses = []model.Course{}
	}

	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// GetByID godoc
// GET /api/v1/admin/courses/:id
func (h *CourseHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	course, err := h.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"course": course})
}

// Create godoc
// POST /api/v1/admin/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req model.CourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course := &model.Course{
		Code:    req.Code,
		Title:   req.Title,
		Credits: req.Credits,
	}
	if err := h.courseService.Create(c.Request.Context(), course); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"course": course})
}

// Update godoc
// PUT /api/v1/admin/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req model.CourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course := &model.Course{
		ID:      id,
		Code:    req.Code,
		Title:   req.Title,
		Credits: req.Credits,
	}
	if err := h.courseService.Update(c.Request.Context(), course); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "course updated successfully"})
}

// Delete godoc
// DELETE /api/v1/admin/courses/:id
// Rejected while the course still has sections.
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "course deleted successfully"})
}
