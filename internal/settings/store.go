package settings

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"scripture_site_echo/internal/models"
	"scripture_site_echo/internal/services"
)

const cacheKey = "site_settings:v1"

var (
	// ErrInvalidKey is returned when a setting key isn't a lower_snake_case
	// identifier of at most 64 characters.
	ErrInvalidKey = errors.New("invalid setting key")

	// ErrNoDatabase is returned by writes when the store runs without a
	// database.
	ErrNoDatabase = errors.New("settings database not configured")

	keyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)
)

// Store loads and persists site settings. Without a database every snapshot
// is empty, so every consumer falls back to its defaults.
type Store struct {
	db    *gorm.DB
	cache *services.RedisCache
	ttl   time.Duration
}

// NewStore creates a Store. db and cache may both be nil.
func NewStore(db *gorm.DB, cache *services.RedisCache, ttl time.Duration) *Store {
	return &Store{db: db, cache: cache, ttl: ttl}
}

// ValidKey reports whether key may be stored.
func ValidKey(key string) bool {
	return keyPattern.MatchString(key)
}

// Load returns a fresh snapshot of all stored settings.
func (s *Store) Load(ctx context.Context) (Settings, error) {
	if s == nil || s.db == nil {
		return Settings{}, nil
	}

	values, err := services.GetOrSet(s.cache, ctx, cacheKey, s.ttl, func() (map[string]string, error) {
		return s.readAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	return FromStrings(values), nil
}

// List returns the stored rows ordered by key.
func (s *Store) List(ctx context.Context) ([]models.SiteSetting, error) {
	if s == nil || s.db == nil {
		return []models.SiteSetting{}, nil
	}
	var rows []models.SiteSetting
	if err := s.db.WithContext(ctx).Order("key").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return rows, nil
}

// Set stores value under key and drops the cached snapshot.
func (s *Store) Set(ctx context.Context, key, value, updatedBy string) error {
	if !ValidKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if s == nil || s.db == nil {
		return ErrNoDatabase
	}

	row := models.SiteSetting{Key: key, Value: value, UpdatedBy: updatedBy}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_by", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to store setting %s: %w", key, err)
	}

	s.invalidate(ctx)
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if !ValidKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if s == nil || s.db == nil {
		return ErrNoDatabase
	}

	if err := s.db.WithContext(ctx).Where("key = ?", key).Delete(&models.SiteSetting{}).Error; err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *Store) readAll(ctx context.Context) (map[string]string, error) {
	var rows []models.SiteSetting
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return values, nil
}

func (s *Store) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		log.Printf("Failed to invalidate settings cache: %v", err)
	}
}
