package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusgrid/registrar/internal/middleware"
	"github.com/campusgrid/registrar/internal/model"
	"github.com/campusgrid/registrar/internal/response"
	"github.com/campusgrid/registrar/internal/service"
	"github.com/campusgrid/registrar/internal/validator"
)

// StudentPortalHandler serves the student-facing enrollment surface.
type StudentPortalHandler struct {
	studentService    *service.StudentService
	sectionService    *service.SectionService
	enrollmentService *service.EnrollmentService
	summaryService    *service.SummaryService
}

// NewStudentPortalHandler creates a new StudentPortalHandler.
func NewStudentPortalHandler(
	studentService *service.StudentService,
	sectionService *service.SectionService,
	enrollmentService *service.EnrollmentService,
	summaryService *service.SummaryService,
) *StudentPortalHandler {
	return &StudentPortalHandler{
		studentService:    studentService,
		sectionService:    sectionService,
		enrollmentService: enrollmentService,
		summaryService:    summaryService,
	}
}

// profile resolves the authenticated student's profile from the token
// subject. A nil return means the error response has been written.
func (h *StudentPortalHandler) profile(c *gin.Context) *model.Student {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return nil
	}

	student, err := h.studentService.GetByEmail(c.Request.Context(), claims.Subject)
	if err != nil {
		failFromError(c, err)
		return nil
	}
	return student
}

// GetCatalog godoc
// GET /api/v1/student/catalog
// Lists every section with course info and live seat counts.
func (h *StudentPortalHandler) GetCatalog(c *gin.Context) {
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

// Admit godoc
// POST /api/v1/student/enrollments
// Attempts to take a seat in a section. Admission is atomic against the
// section's capacity: two students racing for the last seat cannot both win.
func (h *StudentPortalHandler) Admit(c *gin.Context) {
	student := h.profile(c)
	if student == nil {
		return
	}

	var req model.AdmitRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	enrollment, err := h.enrollmentService.Admit(c.Request.Context(), student.ID, req.SectionID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"enrollment": enrollment})
}

// Withdraw godoc
// DELETE /api/v1/student/enrollments/:id
// Students may only drop their own enrollments.
func (h *StudentPortalHandler) Withdraw(c *gin.Context) {
	student := h.profile(c)
	if student == nil {
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.enrollmentService.Withdraw(c.Request.Context(), id, student.ID); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "enrollment withdrawn successfully"})
}

// GetTranscript godoc
// GET /api/v1/student/transcript
// Lists the student's enrollments with raw scores and letter grades.
func (h *StudentPortalHandler) GetTranscript(c *gin.Context) {
	student := h.profile(c)
	if student == nil {
		return
	}

	transcript, err := h.enrollmentService.Transcript(c.Request.Context(), student.ID)
	if err != nil {
		failFromError(c, err)
		return
	}

	if transcript == nil {
		transcript = []model.TranscriptEntry{}
	}

	response.Success(c, http.StatusOK, gin.H{"transcript": transcript})
}

// GetOverview godoc
// GET /api/v1/student/overview
// Returns the student's profile with the course codes they are taking.
func (h *StudentPortalHandler) GetOverview(c *gin.Context) {
	student := h.profile(c)
	if student == nil {
		return
	}

	codes, err := h.summaryService.StudentCourseCodes(c.Request.Context(), student.ID)
	if err != nil {
		failFromError(c, err)
		return
	}

	if codes == nil {
		codes = []string{}
	}

	response.Success(c, http.StatusOK, gin.H{
		"student":      student,
		"course_codes": codes,
	})
}
