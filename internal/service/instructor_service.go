package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campusgrid/registrar/internal/model"
	"github.com/campusgrid/registrar/internal/repository"
)

// InstructorService handles instructor profile business logic.
type InstructorService struct {
	instructorRepo *repository.InstructorRepository
	auth           AuthBridge
	log            zerolog.Logger
}

// NewInstructorService creates a new InstructorService.
func NewInstructorService(instructorRepo *repository.InstructorRepository, auth AuthBridge, log zerolog.Logger) *InstructorService {
	return &InstructorService{
		instructorRepo: instructorRepo,
		auth:           auth,
		log:            log.With().Str("component", "instructor_service").Logger(),
	}
}

// GetByID retrieves an instructor by ID.
func (s *InstructorService) GetByID(ctx context.Context, id int64) (*model.Instructor, error) {
	return s.instructorRepo.GetByID(ctx, id)
}

// GetByEmail retrieves an instructor by email.
func (s *InstructorService) GetByEmail(ctx context.Context, email string) (*model.Instructor, error) {
	return s.instructorRepo.GetByEmail(ctx, email)
}

// List retrieves all instructors ordered by name.
func (s *InstructorService) List(ctx context.Context) ([]model.Instructor, error) {
	return s.instructorRepo.List(ctx)
}

// Create registers the login credential, then the profile, compensating
// with a credential delete if the profile insert fails.
func (s *InstructorService) Create(ctx context.Context, instructor *model.Instructor, password string) error {
	if err := s.auth.Register(ctx, instructor.Email, password, model.RoleInstructor); err != nil {
		return err
	}

	sg := newSaga(s.log)
	sg.onFailure("delete credential", func(ctx context.Context) error {
		return s.auth.DeleteUser(ctx, instructor.Email)
	})

	if err := s.instructorRepo.Create(ctx, instructor); err != nil {
		sg.compensate(ctx)
		return err
	}
	return nil
}

// Update modifies an instructor profile.
func (s *InstructorService) Update(ctx context.Context, instructor *model.Instructor) error {
	return s.instructorRepo.Update(ctx, instructor)
}

// Delete removes an instructor profile and its credential.
func (s *InstructorService) Delete(ctx context.Context, id int64) error {
	instructor, err := s.instructorRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.instructorRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.auth.DeleteUser(ctx, instructor.Email); err != nil {
		s.log.Error().Err(err).Str("username", instructor.Email).Msg("credential delete failed")
	}
	return nil
}
