package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusgrid/registrar/internal/response"
	"github.com/campusgrid/registrar/internal/service"
	"github.com/campusgrid/registrar/internal/validator"
)

// EnrollmentHandler handles registrar-side enrollment overrides. The
// registrar goes through the same admission path as students, so capacity
// and duplicate rules still apply.
type EnrollmentHandler struct {
	enrollmentService *service.EnrollmentService
}

// NewEnrollmentHandler creates a new EnrollmentHandler.
func NewEnrollmentHandler(enrollmentService *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

type adminAdmitRequest struct {
	StudentID int64 `json:"student_id" binding:"required"`
	SectionID int64 `json:"section_id" binding:"required"`
}

// Create godoc
// POST /api/v1/admin/enrollments
func (h *EnrollmentHandler) Create(c *gin.Context) {
	var req adminAdmitRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	enrollment, err := h.enrollmentService.Admit(c.Request.Context(), req.StudentID, req.SectionID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"enrollment": enrollment})
}

// Delete godoc
// DELETE /api/v1/admin/enrollments/:id
// Registrars may withdraw any enrollment.
func (h *EnrollmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.enrollmentService.Withdraw(c.Request.Context(), id, 0); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "enrollment withdrawn successfully"})
}
