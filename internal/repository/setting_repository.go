package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusgrid/registrar/internal/apperrors"
	"github.com/campusgrid/registrar/internal/model"
)

// SettingRepository handles the key-value settings store.
type SettingRepository struct {
	pool *pgxpool.Pool
}

// NewSettingRepository creates a new SettingRepository.
func NewSettingRepository(pool *pgxpool.Pool) *SettingRepository {
	return &SettingRepository{pool: pool}
}

// GetAll retrieves every setting ordered by key.
func (r *SettingRepository) GetAll(ctx context.Context) ([]model.Setting, error) {
	rows, err := r.pool.Query(ctx, `SELECT key, value, updated_at FROM settings ORDER BY key ASC`)
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	defer rows.Close()

	var settings []model.Setting
	for rows.Next() {
		var s model.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, apperrors.Classify(err)
		}
		settings = append(settings, s)
	}
	return settings, apperrors.Classify(rows.Err())
}

// Upsert creates the key or overwrites its value.
func (r *SettingRepository) Upsert(ctx context.Context, key, value string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, value)
	return apperrors.Classify(err)
}

// GetByKey retrieves a single setting; a missing key is not found.
func (r *SettingRepository) GetByKey(ctx context.Context, key string) (*model.Setting, error) {
	s := &model.Setting{}
	err := r.pool.QueryRow(ctx, `SELECT key, value, updated_at FROM settings WHERE key = $1`, key).
		Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	return s, nil
}
