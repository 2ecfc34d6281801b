package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/campusgrid/registrar/internal/apperrors"
	"github.com/campusgrid/registrar/internal/repository"
)

// SettingService handles the key-value configuration store.
type SettingService struct {
	settingRepo *repository.SettingRepository
	log         zerolog.Logger
}

// NewSettingService creates a new SettingService.
func NewSettingService(settingRepo *repository.SettingRepository, log zerolog.Logger) *SettingService {
	return &SettingService{
		settingRepo: settingRepo,
		log:         log.With().Str("component", "setting_service").Logger(),
	}
}

// GetAll returns every setting as a key-value map.
func (s *SettingService) GetAll(ctx context.Context) (map[string]string, error) {
	list, err := s.settingRepo.GetAll(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to get all settings")
		return nil, err
	}

	settings := make(map[string]string, len(list))
	for _, setting := range list {
		settings[setting.Key] = setting.Value
	}
	return settings, nil
}

// Update upserts each key in the map. Settings are low volume; iterative
// upserts are fine.
func (s *SettingService) Update(ctx context.Context, settings map[string]string) error {
	for key, value := range settings {
		if err := s.settingRepo.Upsert(ctx, key, value); err != nil {
			s.log.Error().Err(err).Str("key", key).Msg("failed to update setting")
			return err
		}
	}
	return nil
}

// Get returns a single setting value and whether the key exists.
func (s *SettingService) Get(ctx context.Context, key string) (string, bool, error) {
	setting, err := s.settingRepo.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return setting.Value, true, nil
}
