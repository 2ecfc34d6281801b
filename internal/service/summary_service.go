package service

import (
	"context"

	"github.com/campusgrid/registrar/internal/repository"
)

// SummaryService exposes the registrar dashboard aggregates.
type SummaryService struct {
	summaryRepo *repository.SummaryRepository
}

// NewSummaryService creates a new SummaryService.
func NewSummaryService(summaryRepo *repository.SummaryRepository) *SummaryService {
	return &SummaryService{summaryRepo: summaryRepo}
}

// Counts retrieves the per-entity row counts.
func (s *SummaryService) Counts(ctx context.Context) (*repository.Counts, error) {
	return s.summaryRepo.GetCounts(ctx)
}

// StudentCourseCodes lists the course codes a student is enrolled in.
func (s *SummaryService) StudentCourseCodes(ctx context.Context, studentID int64) ([]string, error) {
	return s.summaryRepo.StudentCourseCodes(ctx, studentID)
}

// InstructorCourseCodes lists the course codes an instructor teaches.
func (s *SummaryService) InstructorCourseCodes(ctx context.Context, instructorID int64) ([]string, error) {
	return s.summaryRepo.InstructorCourseCodes(ctx, instructorID)
}
