//go:build e2e
// +build e2e

package e2e

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgrid/registrar/internal/apperrors"
	"github.com/campusgrid/registrar/internal/schema"
)

// sectionRow mirrors the target-shape columns the rebuild must fill in.
type sectionRow struct {
	Name      string
	Capacity  int
	Room      *string
	Timetable string
}

func rebuildPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := pgxpool.New(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

// installLegacySections replaces the sections table with the old layout:
// a semester marker, a location column instead of room, nullable capacity,
// and no name, timetable, or instructor columns. Returns the course the
// fixture rows hang off.
func installLegacySections(t *testing.T, ctx context.Context, pool *pgxpool.Pool, code string) int64 {
	t.Helper()

	// Enrollments and grades reference sections; clear them before the drop.
	for _, table := range []string{"grades", "enrollments"} {
		_, err := pool.Exec(ctx, "DELETE FROM "+table)
		require.NoError(t, err)
	}
	_, err := pool.Exec(ctx, "DROP TABLE IF EXISTS sections CASCADE")
	require.NoError(t, err)

	var courseID int64
	err = pool.QueryRow(ctx,
		`INSERT INTO courses (code, title, credits) VALUES ($1, 'History of Science', 3)
		 ON CONFLICT (code) DO UPDATE SET title = EXCLUDED.title
		 RETURNING id`, code).Scan(&courseID)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, `CREATE TABLE sections (
		id BIGSERIAL PRIMARY KEY,
		course_id BIGINT NOT NULL REFERENCES courses(id),
		semester TEXT NOT NULL DEFAULT 'FALL',
		location TEXT,
		capacity INT
	)`)
	require.NoError(t, err)
	return courseID
}

func sectionColumnExists(t *testing.T, ctx context.Context, pool *pgxpool.Pool, column string) bool {
	t.Helper()
	var n int
	err := pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM information_schema.columns
		 WHERE table_schema = 'public' AND table_name = 'sections' AND column_name = $1`,
		column).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func fetchSectionRow(t *testing.T, ctx context.Context, pool *pgxpool.Pool, id int64) sectionRow {
	t.Helper()
	var row sectionRow
	err := pool.QueryRow(ctx,
		"SELECT name, capacity, room, timetable FROM sections WHERE id = $1", id).
		Scan(&row.Name, &row.Capacity, &row.Room, &row.Timetable)
	require.NoError(t, err)
	return row
}

func TestLegacySectionRebuild(t *testing.T) {
	ctx := context.Background()
	pool := rebuildPool(t)
	courseID := installLegacySections(t, ctx, pool, "HI150")

	_, err := pool.Exec(ctx,
		`INSERT INTO sections (id, course_id, semester, location, capacity) VALUES
		 (101, $1, 'FALL-2018', 'Old Hall', 25),
		 (102, $1, 'SPRING-2019', NULL, NULL)`, courseID)
	require.NoError(t, err)

	mgr := schema.NewManager(pool, zerolog.Nop())
	require.NoError(t, mgr.EnsureSchema(ctx))

	// Legacy columns are gone, target columns exist.
	assert.False(t, sectionColumnExists(t, ctx, pool, "semester"))
	assert.False(t, sectionColumnExists(t, ctx, pool, "location"))
	assert.True(t, sectionColumnExists(t, ctx, pool, "room"))
	assert.True(t, sectionColumnExists(t, ctx, pool, "timetable"))

	// Row 101 keeps its own values; location carried over into room.
	got := fetchSectionRow(t, ctx, pool, 101)
	assert.Equal(t, "Main", got.Name)
	assert.Equal(t, 25, got.Capacity)
	require.NotNil(t, got.Room)
	assert.Equal(t, "Old Hall", *got.Room)
	assert.Equal(t, "", got.Timetable)

	// Row 102 had nothing usable and gets the defaults.
	got = fetchSectionRow(t, ctx, pool, 102)
	assert.Equal(t, "Main", got.Name)
	assert.Equal(t, 50, got.Capacity)
	assert.Nil(t, got.Room)

	// A second run sees the target shape and changes nothing.
	require.NoError(t, mgr.EnsureSchema(ctx))
	var count int
	require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM sections").Scan(&count))
	assert.Equal(t, 2, count)
	again := fetchSectionRow(t, ctx, pool, 101)
	assert.Equal(t, 25, again.Capacity)
	require.NotNil(t, again.Room)
	assert.Equal(t, "Old Hall", *again.Room)

	// The id sequence was advanced past the copied rows.
	var newID int64
	err = pool.QueryRow(ctx,
		`INSERT INTO sections (course_id, name, capacity) VALUES ($1, 'Evening', 10) RETURNING id`,
		courseID).Scan(&newID)
	require.NoError(t, err)
	assert.Greater(t, newID, int64(102))
}

func TestLegacySectionRebuildRollsBackOnBadRow(t *testing.T) {
	ctx := context.Background()
	pool := rebuildPool(t)
	courseID := installLegacySections(t, ctx, pool, "HI151")

	// capacity 0 cannot satisfy the rebuilt table's capacity check.
	_, err := pool.Exec(ctx,
		`INSERT INTO sections (id, course_id, semester, location, capacity) VALUES
		 (201, $1, 'FALL-2018', 'Annex', 25),
		 (202, $1, 'FALL-2018', 'Annex', 0)`, courseID)
	require.NoError(t, err)

	mgr := schema.NewManager(pool, zerolog.Nop())
	err = mgr.EnsureSchema(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrMigration))

	// The failed copy rolled back: the legacy table is still there, intact.
	assert.True(t, sectionColumnExists(t, ctx, pool, "semester"))
	assert.True(t, sectionColumnExists(t, ctx, pool, "location"))
	assert.False(t, sectionColumnExists(t, ctx, pool, "room"))

	var count int
	require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM sections").Scan(&count))
	assert.Equal(t, 2, count)
	var capacity int
	require.NoError(t, pool.QueryRow(ctx, "SELECT capacity FROM sections WHERE id = 202").Scan(&capacity))
	assert.Equal(t, 0, capacity)

	// After repairing the bad row the rebuild goes through.
	_, err = pool.Exec(ctx, "UPDATE sections SET capacity = 15 WHERE id = 202")
	require.NoError(t, err)
	require.NoError(t, mgr.EnsureSchema(ctx))
	assert.False(t, sectionColumnExists(t, ctx, pool, "semester"))

	got := fetchSectionRow(t, ctx, pool, 202)
	assert.Equal(t, 15, got.Capacity)
}
