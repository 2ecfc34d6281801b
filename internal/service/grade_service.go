package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/campusgrid/registrar/internal/apperrors"
	"github.com/campusgrid/registrar/internal/model"
	"github.com/campusgrid/registrar/internal/repository"
)

// GradeService handles score recording.
type GradeService struct {
	gradeRepo      *repository.GradeRepository
	enrollmentRepo *repository.EnrollmentRepository
	sectionRepo    *repository.SectionRepository
	log            zerolog.Logger
}

// NewGradeService creates a new GradeService.
func NewGradeService(
	gradeRepo *repository.GradeRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	sectionRepo *repository.SectionRepository,
	log zerolog.Logger,
) *GradeService {
	return &GradeService{
		gradeRepo:      gradeRepo,
		enrollmentRepo: enrollmentRepo,
		sectionRepo:    sectionRepo,
		log:            log.With().Str("component", "grade_service").Logger(),
	}
}

// Record stores the raw score for an enrollment. When instructorID is
// non-zero, the enrollment's section must be assigned to that instructor.
// The score text must parse as a decimal before it reaches storage.
func (s *GradeService) Record(ctx context.Context, enrollmentID, instructorID int64, rawScore string) (*model.Grade, error) {
	if _, err := strconv.ParseFloat(rawScore, 64); err != nil {
		return nil, fmt.Errorf("%w: score %q is not a decimal", apperrors.ErrValidation, rawScore)
	}

	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	if instructorID != 0 {
		section, err := s.sectionRepo.GetByID(ctx, enrollment.SectionID)
		if err != nil {
			return nil, err
		}
		if section.InstructorID == nil || *section.InstructorID != instructorID {
			return nil, apperrors.ErrPermissionDenied
		}
	}

	grade, err := s.gradeRepo.Record(ctx, enrollmentID, rawScore)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("enrollment_id", enrollmentID).
		Str("raw_score", rawScore).
		Msg("grade recorded")
	return grade, nil
}

// GetByEnrollment retrieves the grade for an enrollment.
func (s *GradeService) GetByEnrollment(ctx context.Context, enrollmentID int64) (*model.Grade, error) {
	return s.gradeRepo.GetByEnrollment(ctx, enrollmentID)
}
