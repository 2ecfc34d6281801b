package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campusgrid/registrar/internal/model"
	"github.com/campusgrid/registrar/internal/repository"
)

// StudentService handles student profile business logic.
type StudentService struct {
	studentRepo *repository.StudentRepository
	auth        AuthBridge
	log         zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(studentRepo *repository.StudentRepository, auth AuthBridge, log zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		auth:        auth,
		log:         log.With().Str("component", "student_service").Logger(),
	}
}

// GetByID retrieves a student by ID.
func (s *StudentService) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// GetByEmail retrieves a student by email.
func (s *StudentService) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	return s.studentRepo.GetByEmail(ctx, email)
}

// List retrieves all students ordered by name.
func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	return s.studentRepo.List(ctx)
}

// Create registers the login credential and then the profile. If the
// profile insert fails the credential is deleted again, so the two stores
// never drift apart.
func (s *StudentService) Create(ctx context.Context, student *model.Student, password string) error {
	if err := s.auth.Register(ctx, student.Email, password, model.RoleStudent); err != nil {
		return err
	}

	sg := newSaga(s.log)
	sg.onFailure("delete credential", func(ctx context.Context) error {
		return s.auth.DeleteUser(ctx, student.Email)
	})

	if err := s.studentRepo.Create(ctx, student); err != nil {
		sg.compensate(ctx)
		return err
	}
	return nil
}

// Update modifies a student profile.
func (s *StudentService) Update(ctx context.Context, student *model.Student) error {
	return s.studentRepo.Update(ctx, student)
}

// Delete removes a student profile and its credential. The credential goes
// second so a profile protected by enrollments is never left without one.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.auth.DeleteUser(ctx, student.Email); err != nil {
		// Profile already gone; an orphaned credential is recoverable.
		s.log.Error().Err(err).Str("username", student.Email).Msg("credential delete failed")
	}
	return nil
}
