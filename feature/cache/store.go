package cache

import (
	"context"
	"errors"
	"time"

	"openshelf/core/apperr"
	"openshelf/feature/cache/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the durable key-value store of cache entries, keyed by the
// prefixed external id. Writes are last-write-wins against the database's
// own consistency guarantees; there is no entry-level locking.
type Store struct {
	db *gorm.DB

	// now is swappable so tests can pin CachedAt.
	now func() time.Time
}

// NewStore creates a new cache store over the given database.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Get returns the entry with the given id, or a not_found error.
func (s *Store) Get(ctx context.Context, id string) (*models.CacheEntry, error) {
	var entry models.CacheEntry
	err := s.db.WithContext(ctx).First(&entry, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("no cache entry for " + id)
		}
		return nil, apperr.Internal("cache get failed", err)
	}
	return &entry, nil
}

// Set writes the entry, overwriting any previous row with the same id and
// refreshing CachedAt. Idempotent.
func (s *Store) Set(ctx context.Context, entry *models.CacheEntry) error {
	entry.CachedAt = s.now()
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(entry).Error
	if err != nil {
		return apperr.Internal("cache set failed", err)
	}
	return nil
}

// Delete removes the entry with the given id. Deleting an absent id is not
// an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Delete(&models.CacheEntry{}, "id = ?", id).Error
	if err != nil {
		return apperr.Internal("cache delete failed", err)
	}
	return nil
}

// ListAll returns a snapshot of every entry at call time. Order is not
// significant.
func (s *Store) ListAll(ctx context.Context) ([]models.CacheEntry, error) {
	var entries []models.CacheEntry
	if err := s.db.WithContext(ctx).Find(&entries).Error; err != nil {
		return nil, apperr.Internal("cache list failed", err)
	}
	return entries, nil
}
