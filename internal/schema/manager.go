// Package schema brings the database to the target shape on startup.
// EnsureSchema is idempotent: safe against a fresh database, a database
// already in target shape, and the known legacy section layout.
package schema

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/campusgrid/registrar/internal/apperrors"
)

// Manager performs table creation and the one-time section rebuild.
type Manager struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewManager creates a schema Manager.
func NewManager(pool *pgxpool.Pool, log zerolog.Logger) *Manager {
	return &Manager{
		pool: pool,
		log:  log.With().Str("component", "schema").Logger(),
	}
}

// createTables is every table in creation order. FKs are RESTRICT: deleting
// a course with sections, or a section with enrollments, is rejected rather
// than cascaded.
var createTables = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS students (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		program TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS instructors (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		department TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS courses (
		id BIGSERIAL PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		credits INT NOT NULL CHECK (credits BETWEEN 1 AND 6),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS sections (
		id BIGSERIAL PRIMARY KEY,
		course_id BIGINT NOT NULL REFERENCES courses(id) ON DELETE RESTRICT,
		instructor_id BIGINT REFERENCES instructors(id) ON DELETE RESTRICT,
		name TEXT NOT NULL,
		capacity INT NOT NULL CHECK (capacity >= 1),
		room TEXT,
		timetable TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS enrollments (
		id BIGSERIAL PRIMARY KEY,
		student_id BIGINT NOT NULL REFERENCES students(id) ON DELETE RESTRICT,
		section_id BIGINT NOT NULL REFERENCES sections(id) ON DELETE RESTRICT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (student_id, section_id)
	)`,
	`CREATE TABLE IF NOT EXISTS grades (
		id BIGSERIAL PRIMARY KEY,
		enrollment_id BIGINT NOT NULL UNIQUE REFERENCES enrollments(id) ON DELETE RESTRICT,
		grade TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// EnsureSchema creates missing tables, performs the one-time section rebuild
// when the legacy layout is detected, and applies additive column evolution.
// Running it twice in a row produces no observable change on the second run.
// Any failure is a migration error; the caller must abort startup rather
// than continue on an ambiguous schema.
func (m *Manager) EnsureSchema(ctx context.Context) error {
	// Upgrade sections before table creation so the legacy table is never
	// half-adopted: CREATE IF NOT EXISTS would skip it and leave the old
	// shape in place under the new code.
	columns, err := m.tableColumns(ctx, "sections")
	if err != nil {
		return fmt.Errorf("%w: introspect sections: %v", apperrors.ErrMigration, err)
	}

	switch planSectionUpgrade(columns) {
	case sectionPlanRebuild:
		m.log.Info().Msg("legacy section layout detected, rebuilding")
		if err := m.rebuildSections(ctx, columns); err != nil {
			return fmt.Errorf("%w: rebuild sections: %v", apperrors.ErrMigration, err)
		}
	case sectionPlanAddRoom:
		if err := m.AddColumnIfMissing(ctx, "sections", "room", "TEXT"); err != nil {
			return fmt.Errorf("%w: add sections.room: %v", apperrors.ErrMigration, err)
		}
	}

	for _, stmt := range createTables {
		if _, err := m.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("%w: create tables: %v", apperrors.ErrMigration, err)
		}
	}

	// grades and enrollments reference each other; the back-reference is
	// added after both tables exist.
	if err := m.AddColumnIfMissing(ctx, "enrollments", "grade_id", "BIGINT REFERENCES grades(id)"); err != nil {
		return fmt.Errorf("%w: add enrollments.grade_id: %v", apperrors.ErrMigration, err)
	}

	m.log.Info().Msg("schema up to date")
	return nil
}

// AddColumnIfMissing attempts an additive column change. A pre-existing
// column makes the ALTER fail with duplicate_column, which is success: the
// desired end-state is reached either way. Identifiers are compile-time
// constants, never caller input.
func (m *Manager) AddColumnIfMissing(ctx context.Context, table, column, typ string) error {
	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, typ)
	if _, err := m.pool.Exec(ctx, stmt); err != nil {
		if apperrors.IsDuplicateColumn(err) {
			return nil
		}
		return err
	}
	m.log.Info().Str("table", table).Str("column", column).Msg("column added")
	return nil
}

// tableColumns returns the column set of a table, or an empty map when the
// table does not exist.
func (m *Manager) tableColumns(ctx context.Context, table string) (map[string]bool, error) {
	rows, err := m.pool.Query(ctx,
		`SELECT column_name FROM information_schema.columns
		 WHERE table_schema = 'public' AND table_name = $1`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		columns[name] = true
	}
	return columns, rows.Err()
}

// rebuildSections performs the one-time shape migration: build a shadow
// table in the target shape, copy every legacy row across with defaults,
// then swap it in. The whole sequence runs in one transaction so a failed
// copy rolls back and leaves the original table completely untouched.
func (m *Manager) rebuildSections(ctx context.Context, columns map[string]bool) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `CREATE TABLE sections_new (
		id BIGSERIAL PRIMARY KEY,
		course_id BIGINT NOT NULL REFERENCES courses(id) ON DELETE RESTRICT,
		instructor_id BIGINT REFERENCES instructors(id) ON DELETE RESTRICT,
		name TEXT NOT NULL,
		capacity INT NOT NULL CHECK (capacity >= 1),
		room TEXT,
		timetable TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	if err != nil {
		return fmt.Errorf("create shadow table: %w", err)
	}

	copySQL := fmt.Sprintf(
		`INSERT INTO sections_new (id, course_id, instructor_id, name, capacity, room, timetable)
		 SELECT id, course_id, %s, %s, %s, %s, %s FROM sections`,
		copyExpr(columns, "instructor_id", "NULL"),
		copyExpr(columns, "name", "'"+defaultSectionName+"'"),
		copyExpr(columns, "capacity", fmt.Sprintf("%d", defaultSectionCapacity)),
		roomExpr(columns),
		copyExpr(columns, "timetable", "''"),
	)
	if _, err := tx.Exec(ctx, copySQL); err != nil {
		return fmt.Errorf("copy rows: %w", err)
	}

	// Advance the shadow table's sequence past the copied ids.
	_, err = tx.Exec(ctx,
		`SELECT setval(pg_get_serial_sequence('sections_new', 'id'),
		        COALESCE((SELECT MAX(id) FROM sections_new), 0) + 1, false)`)
	if err != nil {
		return fmt.Errorf("advance sequence: %w", err)
	}

	// CASCADE drops the enrollments FK along with the old table; it is
	// re-pointed at the renamed shadow table below.
	if _, err := tx.Exec(ctx, `DROP TABLE sections CASCADE`); err != nil {
		return fmt.Errorf("drop legacy table: %w", err)
	}
	if _, err := tx.Exec(ctx, `ALTER TABLE sections_new RENAME TO sections`); err != nil {
		return fmt.Errorf("rename shadow table: %w", err)
	}

	_, err = tx.Exec(ctx, `DO $$ BEGIN
		IF to_regclass('enrollments') IS NOT NULL THEN
			ALTER TABLE enrollments DROP CONSTRAINT IF EXISTS enrollments_section_id_fkey;
			ALTER TABLE enrollments ADD CONSTRAINT enrollments_section_id_fkey
				FOREIGN KEY (section_id) REFERENCES sections(id) ON DELETE RESTRICT;
		END IF;
	END $$`)
	if err != nil {
		return fmt.Errorf("restore enrollment FK: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	m.log.Info().Msg("section table rebuilt to target shape")
	return nil
}
