package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusgrid/registrar/internal/apperrors"
)

// SummaryRepository exposes read-only aggregate projections for the
// registrar dashboard. Every call computes fresh counts, no caching.
type SummaryRepository struct {
	pool *pgxpool.Pool
}

// NewSummaryRepository creates a new SummaryRepository.
func NewSummaryRepository(pool *pgxpool.Pool) *SummaryRepository {
	return &SummaryRepository{pool: pool}
}

// Counts holds the per-entity row counts.
type Counts struct {
	Students    int `json:"students"`
	Instructors int `json:"instructors"`
	Courses     int `json:"courses"`
	Sections    int `json:"sections"`
	Enrollments int `json:"enrollments"`
}

// GetCounts retrieves the high-level entity counts in one round trip.
func (r *SummaryRepository) GetCounts(ctx context.Context) (*Counts, error) {
	c := &Counts{}
	err := r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM students),
			(SELECT COUNT(*) FROM instructors),
			(SELECT COUNT(*) FROM courses),
			(SELECT COUNT(*) FROM sections),
			(SELECT COUNT(*) FROM enrollments)`,
	).Scan(&c.Students, &c.Instructors, &c.Courses, &c.Sections, &c.Enrollments)
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	return c, nil
}

// StudentCourseCodes returns the course codes a student is enrolled in,
// ordered alphabetically.
func (r *SummaryRepository) StudentCourseCodes(ctx context.Context, studentID int64) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT c.code
		 FROM enrollments e
		 JOIN sections s ON s.id = e.section_id
		 JOIN courses c ON c.id = s.course_id
		 WHERE e.student_id = $1
		 ORDER BY c.code`, studentID)
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, apperrors.Classify(err)
		}
		codes = append(codes, code)
	}
	return codes, apperrors.Classify(rows.Err())
}

// InstructorCourseCodes returns the course codes an instructor teaches,
// ordered alphabetically.
func (r *SummaryRepository) InstructorCourseCodes(ctx context.Context, instructorID int64) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT c.code
		 FROM sections s
		 JOIN courses c ON c.id = s.course_id
		 WHERE s.instructor_id = $1
		 ORDER BY c.code`, instructorID)
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, apperrors.Classify(err)
		}
		codes = append(codes, code)
	}
	return codes, apperrors.Classify(rows.Err())
}
