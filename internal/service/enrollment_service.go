package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campusgrid/registrar/internal/apperrors"
	"github.com/campusgrid/registrar/internal/grading"
	"github.com/campusgrid/registrar/internal/model"
)

// AdmissionStore is the storage contract the admission controller runs on.
// Admit must check preconditions and insert in one storage transaction;
// *repository.EnrollmentRepository satisfies it with a FOR UPDATE row lock
// on the section.
type AdmissionStore interface {
	Admit(ctx context.Context, studentID, sectionID int64) (*model.Enrollment, error)
	GetByID(ctx context.Context, id int64) (*model.Enrollment, error)
	Delete(ctx context.Context, id int64) error
	Seats(ctx context.Context, sectionID int64) (capacity, enrolled int, err error)
	Transcript(ctx context.Context, studentID int64) ([]model.TranscriptEntry, error)
	Roster(ctx context.Context, sectionID int64) ([]model.RosterEntry, error)
}

// SeatFeed receives seat-count updates after every admission or withdrawal.
type SeatFeed interface {
	Publish(sectionID int64, capacity, enrolled int)
}

// EnrollmentService is the admission controller. It serializes the
// check-then-insert sequence per section: a per-section mutex in process,
// plus whatever locking the store itself provides. Two concurrent
// admissions against one remaining seat can never both succeed.
type EnrollmentService struct {
	store AdmissionStore
	feed  SeatFeed // optional
	locks *sectionLocks
	log   zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService. feed may be nil.
func NewEnrollmentService(store AdmissionStore, feed SeatFeed, log zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{
		store: store,
		feed:  feed,
		locks: newSectionLocks(),
		log:   log.With().Str("component", "enrollment_service").Logger(),
	}
}

// Admit enrolls a student into a section, subject to the admission
// preconditions: section exists, student not already enrolled, seats left.
func (s *EnrollmentService) Admit(ctx context.Context, studentID, sectionID int64) (*model.Enrollment, error) {
	s.locks.acquire(sectionID)
	defer s.locks.release(sectionID)

	enrollment, err := s.store.Admit(ctx, studentID, sectionID)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("student_id", studentID).
		Int64("section_id", sectionID).
		Msg("student admitted")

	s.publishSeats(ctx, sectionID)
	return enrollment, nil
}

// Withdraw deletes an enrollment. Existence is the only precondition; the
// count only decreases, so no section lock is taken. When ownerID is
// non-zero the enrollment must belong to that student.
func (s *EnrollmentService) Withdraw(ctx context.Context, enrollmentID, ownerID int64) error {
	enrollment, err := s.store.GetByID(ctx, enrollmentID)
	if err != nil {
		return err
	}
	if ownerID != 0 && enrollment.StudentID != ownerID {
		return apperrors.ErrPermissionDenied
	}

	if err := s.store.Delete(ctx, enrollmentID); err != nil {
		return err
	}

	s.log.Info().
		Int64("enrollment_id", enrollmentID).
		Int64("section_id", enrollment.SectionID).
		Msg("enrollment withdrawn")

	s.publishSeats(ctx, enrollment.SectionID)
	return nil
}

// Transcript returns a student's enrollments with derived letter grades.
func (s *EnrollmentService) Transcript(ctx context.Context, studentID int64) ([]model.TranscriptEntry, error) {
	entries, err := s.store.Transcript(ctx, studentID)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Letter = grading.Letter(entries[i].RawScore)
	}
	return entries, nil
}

// Roster returns a section's enrolled students with derived letter grades.
func (s *EnrollmentService) Roster(ctx context.Context, sectionID int64) ([]model.RosterEntry, error) {
	entries, err := s.store.Roster(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Letter = grading.Letter(entries[i].RawScore)
	}
	return entries, nil
}

// Seats returns a section's capacity and current enrollment count.
func (s *EnrollmentService) Seats(ctx context.Context, sectionID int64) (int, int, error) {
	return s.store.Seats(ctx, sectionID)
}

func (s *EnrollmentService) publishSeats(ctx context.Context, sectionID int64) {
	if s.feed == nil {
		return
	}
	capacity, enrolled, err := s.store.Seats(ctx, sectionID)
	if err != nil {
		s.log.Warn().Err(err).Int64("section_id", sectionID).Msg("seat feed lookup failed")
		return
	}
	s.feed.Publish(sectionID, capacity, enrolled)
}
