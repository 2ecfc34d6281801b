package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusgrid/registrar/internal/apperrors"
	"github.com/campusgrid/registrar/internal/model"
)

// CourseRepository handles course catalog data access.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

// GetByID retrieves a course by ID.
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	c := &model.Course{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, code, title, credits, created_at, updated_at
		 FROM courses WHERE id = $1`, id,
	).Scan(&c.ID, &c.Code, &c.Title, &c.Credits, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	return c, nil
}

// List retrieves all courses ordered by code.
func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, code, title, credits, created_at, updated_at
		 FROM courses ORDER BY code`)
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Code, &c.Title, &c.Credits, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, apperrors.Classify(err)
		}
		courses = append(courses, c)
	}
	return courses, apperrors.Classify(rows.Err())
}

// Create inserts a new course. A duplicate code surfaces as a conflict.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO courses (code, title, credits)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		c.Code, c.Title, c.Credits,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return apperrors.Classify(err)
}

// Update modifies a course.
func (r *CourseRepository) Update(ctx context.Context, c *model.Course) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE courses SET code = $1, title = $2, credits = $3, updated_at = NOW()
		 WHERE id = $4`,
		c.Code, c.Title, c.Credits, c.ID,
	)
	if err != nil {
		return apperrors.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a course by ID. Courses with sections are protected by the
// RESTRICT foreign key and surface as a dependency error.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return apperrors.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
