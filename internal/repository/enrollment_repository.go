package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusgrid/registrar/internal/apperrors"
	"github.com/campusgrid/registrar/internal/model"
)

// EnrollmentRepository handles enrollment data access, including the
// capacity-guarded admission transaction.
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// Admit checks all admission preconditions and inserts the enrollment in a
// single transaction. The section row is locked FOR UPDATE for the duration,
// so no other admission against the same section can interleave between the
// count check and the insert: enrollment count never exceeds capacity.
func (r *EnrollmentRepository) Admit(ctx context.Context, studentID, sectionID int64) (*model.Enrollment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	defer tx.Rollback(ctx)

	var capacity int
	err = tx.QueryRow(ctx,
		`SELECT capacity FROM sections WHERE id = $1 FOR UPDATE`, sectionID,
	).Scan(&capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: section %d", apperrors.ErrNotFound, sectionID)
		}
		return nil, apperrors.Classify(err)
	}

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM enrollments WHERE student_id = $1 AND section_id = $2)`,
		studentID, sectionID,
	).Scan(&exists)
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyEnrolled
	}

	var enrolled int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE section_id = $1`, sectionID,
	).Scan(&enrolled)
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	if enrolled >= capacity {
		return nil, apperrors.ErrSectionFull
	}

	e := &model.Enrollment{StudentID: studentID, SectionID: sectionID}
	err = tx.QueryRow(ctx,
		`INSERT INTO enrollments (student_id, section_id)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		studentID, sectionID,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return nil, apperrors.Classify(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperrors.Classify(err)
	}
	return e, nil
}

// GetByID retrieves an enrollment by ID.
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*model.Enrollment, error) {
	e := &model.Enrollment{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, student_id, section_id, grade_id, created_at
		 FROM enrollments WHERE id = $1`, id,
	).Scan(&e.ID, &e.StudentID, &e.SectionID, &e.GradeID, &e.CreatedAt)
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	return e, nil
}

// Delete removes an enrollment. Withdrawal only decreases a section's count,
// so it needs no section lock.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return apperrors.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Seats returns a section's capacity and current enrollment count.
func (r *EnrollmentRepository) Seats(ctx context.Context, sectionID int64) (capacity, enrolled int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT s.capacity, COUNT(e.id)
		 FROM sections s
		 LEFT JOIN enrollments e ON e.section_id = s.id
		 WHERE s.id = $1
		 GROUP BY s.capacity`, sectionID,
	).Scan(&capacity, &enrolled)
	if err != nil {
		return 0, 0, apperrors.Classify(err)
	}
	return capacity, enrolled, nil
}

// Transcript retrieves a student's enrollments joined with course and grade
// details, ordered by course code.
func (r *EnrollmentRepository) Transcript(ctx context.Context, studentID int64) ([]model.TranscriptEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT e.id, s.id, s.name, c.code, c.title, c.credits, g.grade
		 FROM enrollments e
		 JOIN sections s ON s.id = e.section_id
		 JOIN courses c ON c.id = s.course_id
		 LEFT JOIN grades g ON g.enrollment_id = e.id
		 WHERE e.student_id = $1
		 ORDER BY c.code, s.name`, studentID)
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	defer rows.Close()

	var entries []model.TranscriptEntry
	for rows.Next() {
		var t model.TranscriptEntry
		if err := rows.Scan(&t.EnrollmentID, &t.SectionID, &t.SectionName, &t.CourseCode, &t.CourseTitle, &t.Credits, &t.RawScore); err != nil {
			return nil, apperrors.Classify(err)
		}
		entries = append(entries, t)
	}
	return entries, apperrors.Classify(rows.Err())
}

// Roster retrieves the students enrolled in a section with their scores,
// ordered by student name.
func (r *EnrollmentRepository) Roster(ctx context.Context, sectionID int64) ([]model.RosterEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT e.id, st.id, st.name, st.email, g.grade
		 FROM enrollments e
		 JOIN students st ON st.id = e.student_id
		 LEFT JOIN grades g ON g.enrollment_id = e.id
		 WHERE e.section_id = $1
		 ORDER BY st.name`, sectionID)
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	defer rows.Close()

	var entries []model.RosterEntry
	for rows.Next() {
		var re model.RosterEntry
		if err := rows.Scan(&re.EnrollmentID, &re.StudentID, &re.StudentName, &re.StudentEmail, &re.RawScore); err != nil {
			return nil, apperrors.Classify(err)
		}
		entries = append(entries, re)
	}
	return entries, apperrors.Classify(rows.Err())
}
