package service

import (
	"context"

	"github.com/campusgrid/registrar/internal/model"
	"github.com/campusgrid/registrar/internal/repository"
)

// CourseService handles course catalog business logic.
type CourseService struct {
	courseRepo *repository.CourseRepository
}

// NewCourseService creates a new CourseService.
func NewCourseService(courseRepo *repository.CourseRepository) *CourseService {
	return &CourseService{courseRepo: courseRepo}
}

// GetByID retrieves a course by ID.
func (s *CourseService) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// List retrieves all courses ordered by code.
func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	return s.courseRepo.List(ctx)
}

// Create inserts a new course.
func (s *CourseService) Create(ctx context.Context, course *model.Course) error {
	return s.courseRepo.Create(ctx, course)
}

// Update modifies a course.
func (s *CourseService) Update(ctx context.Context, course *model.Course) error {
	return s.courseRepo.Update(ctx, course)
}

// Delete removes a course. The RESTRICT foreign key rejects deletion while
// sections still reference it; orphaned sections are never left behind.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	return s.courseRepo.Delete(ctx, id)
}
