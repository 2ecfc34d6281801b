package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusgrid/registrar/internal/apperrors"
	"github.com/campusgrid/registrar/internal/model"
)

// GradeRepository handles grade data access.
type GradeRepository struct {
	pool *pgxpool.Pool
}

// NewGradeRepository creates a new GradeRepository.
func NewGradeRepository(pool *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{pool: pool}
}

// GetByEnrollment retrieves the grade belonging to an enrollment.
func (r *GradeRepository) GetByEnrollment(ctx context.Context, enrollmentID int64) (*model.Grade, error) {
	g := &model.Grade{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, enrollment_id, grade, created_at, updated_at
		 FROM grades WHERE enrollment_id = $1`, enrollmentID,
	).Scan(&g.ID, &g.EnrollmentID, &g.RawScore, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	return g, nil
}

// Record upserts the score for an enrollment and points the enrollment back
// at its grade row. A grade belongs to exactly one enrollment, enforced by
// the unique constraint the upsert targets.
func (r *GradeRepository) Record(ctx context.Context, enrollmentID int64, rawScore string) (*model.Grade, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	defer tx.Rollback(ctx)

	g := &model.Grade{EnrollmentID: enrollmentID, RawScore: rawScore}
	err = tx.QueryRow(ctx,
		`INSERT INTO grades (enrollment_id, grade)
		 VALUES ($1, $2)
		 ON CONFLICT (enrollment_id) DO UPDATE SET grade = EXCLUDED.grade, updated_at = NOW()
		 RETURNING id, created_at, updated_at`,
		enrollmentID, rawScore,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, apperrors.Classify(err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE enrollments SET grade_id = $1 WHERE id = $2`, g.ID, enrollmentID)
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperrors.Classify(err)
	}
	return g, nil
}

// Delete removes a grade by ID after detaching it from its enrollment.
func (r *GradeRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apperrors.Classify(err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE enrollments SET grade_id = NULL WHERE grade_id = $1`, id); err != nil {
		return apperrors.Classify(err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM grades WHERE id = $1`, id)
	if err != nil {
		return apperrors.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return apperrors.Classify(tx.Commit(ctx))
}
