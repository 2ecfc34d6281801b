package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusgrid/registrar/internal/apperrors"
	"github.com/campusgrid/registrar/internal/model"
)

// SectionRepository handles section data access.
type SectionRepository struct {
	pool *pgxpool.Pool
}

// NewSectionRepository creates a new SectionRepository.
func NewSectionRepository(pool *pgxpool.Pool) *SectionRepository {
	return &SectionRepository{pool: pool}
}

// GetByID retrieves a section by ID.
func (r *SectionRepository) GetByID(ctx context.Context, id int64) (*model.Section, error) {
	s := &model.Section{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, course_id, instructor_id, name, capacity, room, timetable, created_at, updated_at
		 FROM sections WHERE id = $1`, id,
	).Scan(&s.ID, &s.CourseID, &s.InstructorID, &s.Name, &s.Capacity, &s.Room, &s.Timetable, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	return s, nil
}

// List retrieves all sections ordered by name.
func (r *SectionRepository) List(ctx context.Context) ([]model.Section, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, course_id, instructor_id, name, capacity, room, timetable, created_at, updated_at
		 FROM sections ORDER BY name`)
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	defer rows.Close()

	var sections []model.Section
	for rows.Next() {
		var s model.Section
		if err := rows.Scan(&s.ID, &s.CourseID, &s.InstructorID, &s.Name, &s.Capacity, &s.Room, &s.Timetable, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, apperrors.Classify(err)
		}
		sections = append(sections, s)
	}
	return sections, apperrors.Classify(rows.Err())
}

// ListCatalog retrieves sections joined with their course and live seat
// count, ordered by course code then section name. Computed fresh per call.
func (r *SectionRepository) ListCatalog(ctx context.Context) ([]model.SectionSeats, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.course_id, s.instructor_id, s.name, s.capacity, s.room, s.timetable,
		        s.created_at, s.updated_at,
		        c.code, c.title,
		        COUNT(e.id) AS enrolled
		 FROM sections s
		 JOIN courses c ON c.id = s.course_id
		 LEFT JOIN enrollments e ON e.section_id = s.id
		 GROUP BY s.id, c.code, c.title
		 ORDER BY c.code, s.name`)
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	defer rows.Close()

	var catalog []model.SectionSeats
	for rows.Next() {
		var s model.SectionSeats
		if err := rows.Scan(&s.ID, &s.CourseID, &s.InstructorID, &s.Name, &s.Capacity, &s.Room, &s.Timetable,
			&s.CreatedAt, &s.UpdatedAt, &s.CourseCode, &s.CourseTitle, &s.Enrolled); err != nil {
			return nil, apperrors.Classify(err)
		}
		catalog = append(catalog, s)
	}
	return catalog, apperrors.Classify(rows.Err())
}

// ListByInstructor retrieves the sections assigned to an instructor.
func (r *SectionRepository) ListByInstructor(ctx context.Context, instructorID int64) ([]model.Section, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, course_id, instructor_id, name, capacity, room, timetable, created_at, updated_at
		 FROM sections WHERE instructor_id = $1 ORDER BY name`, instructorID)
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	defer rows.Close()

	var sections []model.Section
	for rows.Next() {
		var s model.Section
		if err := rows.Scan(&s.ID, &s.CourseID, &s.InstructorID, &s.Name, &s.Capacity, &s.Room, &s.Timetable, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, apperrors.Classify(err)
		}
		sections = append(sections, s)
	}
	return sections, apperrors.Classify(rows.Err())
}

// Create inserts a new section. Missing course or instructor references
// surface as dependency errors via the foreign keys.
func (r *SectionRepository) Create(ctx context.Context, s *model.Section) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO sections (course_id, instructor_id, name, capacity, room, timetable)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		s.CourseID, s.InstructorID, s.Name, s.Capacity, s.Room, s.Timetable,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return apperrors.Classify(err)
}

// Update modifies a section.
func (r *SectionRepository) Update(ctx context.Context, s *model.Section) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE sections
		 SET course_id = $1, instructor_id = $2, name = $3, capacity = $4, room = $5, timetable = $6, updated_at = NOW()
		 WHERE id = $7`,
		s.CourseID, s.InstructorID, s.Name, s.Capacity, s.Room, s.Timetable, s.ID,
	)
	if err != nil {
		return apperrors.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a section by ID. Sections with enrollments are protected
// by the RESTRICT foreign key.
func (r *SectionRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sections WHERE id = $1`, id)
	if err != nil {
		return apperrors.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
