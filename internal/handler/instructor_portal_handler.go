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

// InstructorPortalHandler serves the instructor-facing teaching surface.
type InstructorPortalHandler struct {
	instructorService *service.InstructorService
	sectionService    *service.SectionService
	enrollmentService *service.EnrollmentService
	gradeService      *service.GradeService
	summaryService    *service.SummaryService
}

// NewInstructorPortalHandler creates a new InstructorPortalHandler.
func NewInstructorPortalHandler(
	instructorService *service.InstructorService,
	sectionService *service.SectionService,
	enrollmentService *service.EnrollmentService,
	gradeService *service.GradeService,
	summaryService *service.SummaryService,
) *InstructorPortalHandler {
	return &InstructorPortalHandler{
		instructorService: instructorService,
		sectionService:    sectionService,
		enrollmentService: enrollmentService,
		gradeService:      gradeService,
		summaryService:    summaryService,
	}
}

func (h *InstructorPortalHandler) profile(c *gin.Context) *model.Instructor {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return nil
	}

	instructor, err := h.instructorService.GetByEmail(c.Request.Context(), claims.Subject)
	if err != nil {
		failFromError(c, err)
		return nil
	}
	return instructor
}

// GetSections godoc
// GET /api/v1/instructor/sections
// Lists the sections assigned to the authenticated instructor.
func (h *InstructorPortalHandler) GetSections(c *gin.Context) {
	instructor := h.profile(c)
	if instructor == nil {
		return
	}

	sections, err := h.sectionService.ListByInstructor(c.Request.Context(), instructor.ID)
	if err != nil {
		failFromError(c, err)
		return
	}

	if sections == nil {
		sections = []model.Section{}
	}

	response.Success(c, http.StatusOK, gin.H{"sections": sections})
}

// GetRoster godoc
// GET /api/v1/instructor/sections/:id/roster
// Instructors may only view rosters of their own sections.
func (h *InstructorPortalHandler) GetRoster(c *gin.Context) {
	instructor := h.profile(c)
	if instructor == nil {
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	section, err := h.sectionService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	if section.InstructorID == nil || *section.InstructorID != instructor.ID {
		response.Fail(c, http.StatusForbidden, response.ErrPermissionDenied)
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

// RecordGrade godoc
// PUT /api/v1/instructor/enrollments/:id/grade
// Records or replaces the score for one enrollment. The enrollment must
// belong to a section the instructor teaches.
func (h *InstructorPortalHandler) RecordGrade(c *gin.Context) {
	instructor := h.profile(c)
	if instructor == nil {
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req model.RecordGradeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	grade, err := h.gradeService.Record(c.Request.Context(), id, instructor.ID, req.RawScore)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"grade": grade})
}

// GetOverview godoc
// GET /api/v1/instructor/overview
// Returns the instructor's profile with the course codes they teach.
func (h *InstructorPortalHandler) GetOverview(c *gin.Context) {
	instructor := h.profile(c)
	if instructor == nil {
		return
	}

	codes, err := h.summaryService.InstructorCourseCodes(c.Request.Context(), instructor.ID)
	if err != nil {
		failFromError(c, err)
		return
	}

	if codes == nil {
		codes = []string{}
	}

	response.Success(c, http.StatusOK, gin.H{
		"instructor":   instructor,
		"course_codes": codes,
	})
}
