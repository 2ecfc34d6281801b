package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil stays nil", nil, nil},
		{"no rows is not found", pgx.ErrNoRows, ErrNotFound},
		{"wrapped no rows is not found", fmt.Errorf("scan: %w", pgx.ErrNoRows), ErrNotFound},
		{"unique violation is conflict", &pgconn.PgError{Code: "23505", ConstraintName: "students_email_key"}, ErrConflict},
		{"fk violation is dependency", &pgconn.PgError{Code: "23503", ConstraintName: "sections_course_id_fkey"}, ErrDependencyExists},
		{"anything else is storage", errors.New("connection reset"), ErrStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestClassifyKeepsConstraintName(t *testing.T) {
	err := Classify(&pgconn.PgError{Code: "23505", ConstraintName: "courses_code_key"})
	assert.Contains(t, err.Error(), "courses_code_key")
}

func TestIsDuplicateColumn(t *testing.T) {
	assert.True(t, IsDuplicateColumn(&pgconn.PgError{Code: "42701"}))
	assert.False(t, IsDuplicateColumn(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsDuplicateColumn(errors.New("boom")))
	assert.False(t, IsDuplicateColumn(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "students_email_key"}
	assert.True(t, IsUniqueViolation(err, ""))
	assert.True(t, IsUniqueViolation(err, "students_email_key"))
	assert.False(t, IsUniqueViolation(err, "courses_code_key"))
	assert.False(t, IsUniqueViolation(errors.New("boom"), ""))
}
