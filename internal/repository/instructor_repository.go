package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusgrid/registrar/internal/apperrors"
	"github.com/campusgrid/registrar/internal/model"
)

// InstructorRepository handles instructor data access.
type InstructorRepository struct {
	pool *pgxpool.Pool
}

// NewInstructorRepository creates a new InstructorRepository.
func NewInstructorRepository(pool *pgxpool.Pool) *InstructorRepository {
	return &InstructorRepository{pool: pool}
}

// GetByID retrieves an instructor by ID.
func (r *InstructorRepository) GetByID(ctx context.Context, id int64) (*model.Instructor, error) {
	i := &model.Instructor{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, department, created_at, updated_at
		 FROM instructors WHERE id = $1`, id,
	).Scan(&i.ID, &i.Name, &i.Email, &i.Department, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	return i, nil
}

// GetByEmail retrieves an instructor by their unique email.
func (r *InstructorRepository) GetByEmail(ctx context.Context, email string) (*model.Instructor, error) {
	i := &model.Instructor{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, department, created_at, updated_at
		 FROM instructors WHERE email = $1`, email,
	).Scan(&i.ID, &i.Name, &i.Email, &i.Department, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	return i, nil
}

// List retrieves all instructors ordered by name.
func (r *InstructorRepository) List(ctx context.Context) ([]model.Instructor, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, department, created_at, updated_at
		 FROM instructors ORDER BY name`)
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	defer rows.Close()

	var instructors []model.Instructor
	for rows.Next() {
		var i model.Instructor
		if err := rows.Scan(&i.ID, &i.Name, &i.Email, &i.Department, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, apperrors.Classify(err)
		}
		instructors = append(instructors, i)
	}
	return instructors, apperrors.Classify(rows.Err())
}

// Create inserts a new instructor.
func (r *InstructorRepository) Create(ctx context.Context, i *model.Instructor) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO instructors (name, email, department)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		i.Name, i.Email, i.Department,
	).Scan(&i.ID, &i.CreatedAt, &i.UpdatedAt)
	return apperrors.Classify(err)
}

// Update modifies an instructor.
func (r *InstructorRepository) Update(ctx context.Context, i *model.Instructor) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE instructors SET name = $1, email = $2, department = $3, updated_at = NOW()
		 WHERE id = $4`,
		i.Name, i.Email, i.Department, i.ID,
	)
	if err != nil {
		return apperrors.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes an instructor by ID.
func (r *InstructorRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM instructors WHERE id = $1`, id)
	if err != nil {
		return apperrors.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
