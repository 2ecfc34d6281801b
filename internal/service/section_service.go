package service

import (
	"context"

	"github.com/campusgrid/registrar/internal/model"
	"github.com/campusgrid/registrar/internal/repository"
)

// SectionService handles section business logic.
type SectionService struct {
	sectionRepo *repository.SectionRepository
}

// NewSectionService creates a new SectionService.
func NewSectionService(sectionRepo *repository.SectionRepository) *SectionService {
	return &SectionService{sectionRepo: sectionRepo}
}

// GetByID retrieves a section by ID.
func (s *SectionService) GetByID(ctx context.Context, id int64) (*model.Section, error) {
	return s.sectionRepo.GetByID(ctx, id)
}

// List retrieves all sections ordered by name.
func (s *SectionService) List(ctx context.Context) ([]model.Section, error) {
	return s.sectionRepo.List(ctx)
}

// ListCatalog retrieves the section catalog with live seat counts.
func (s *SectionService) ListCatalog(ctx context.Context) ([]model.SectionSeats, error) {
	return s.sectionRepo.ListCatalog(ctx)
}

// ListByInstructor retrieves an instructor's assigned sections.
func (s *SectionService) ListByInstructor(ctx context.Context, instructorID int64) ([]model.Section, error) {
	return s.sectionRepo.ListByInstructor(ctx, instructorID)
}

// Create inserts a new section.
func (s *SectionService) Create(ctx context.Context, section *model.Section) error {
	return s.sectionRepo.Create(ctx, section)
}

// Update modifies a section.
func (s *SectionService) Update(ctx context.Context, section *model.Section) error {
	return s.sectionRepo.Update(ctx, section)
}

// Delete removes a section. The RESTRICT foreign key rejects deletion
// while enrollments still reference it.
func (s *SectionService) Delete(ctx context.Context, id int64) error {
	return s.sectionRepo.Delete(ctx, id)
}
