package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusgrid/registrar/internal/apperrors"
	"github.com/campusgrid/registrar/internal/model"
)

// StudentRepository handles student data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// GetByID retrieves a student by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	s := &model.Student{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, program, created_at, updated_at
		 FROM students WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Email, &s.Program, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	return s, nil
}

// GetByEmail retrieves a student by their unique email.
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	s := &model.Student{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, program, created_at, updated_at
		 FROM students WHERE email = $1`, email,
	).Scan(&s.ID, &s.Name, &s.Email, &s.Program, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	return s, nil
}

// List retrieves all students ordered by name.
func (r *StudentRepository) List(ctx context.Context) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, program, created_at, updated_at
		 FROM students ORDER BY name`)
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Program, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, apperrors.Classify(err)
		}
		students = append(students, s)
	}
	return students, apperrors.Classify(rows.Err())
}

// Create inserts a new student. A duplicate email surfaces as a conflict.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO students (name, email, program)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		s.Name, s.Email, s.Program,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return apperrors.Classify(err)
}

// Update modifies a student. Updating a missing id is not found, never a
// silent success.
func (r *StudentRepository) Update(ctx context.Context, s *model.Student) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE students SET name = $1, email = $2, program = $3, updated_at = NOW()
		 WHERE id = $4`,
		s.Name, s.Email, s.Program, s.ID,
	)
	if err != nil {
		return apperrors.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a student by ID.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return apperrors.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
