package catalog

import (
	"context"
	"errors"

	"openshelf/core/apperr"
	"openshelf/feature/catalog/models"

	"gorm.io/gorm"
)

// Lookup is the collaborator contract the cache core depends on.
// It answers exactly one question: does a native record with this id exist?
type Lookup interface {
	// FindByID returns the native book with the given raw id, or a
	// not_found error if no such record exists.
	FindByID(ctx context.Context, id string) (*models.NativeBook, error)
}

// Service implements Lookup over the first-party books table.
type Service struct {
	db *gorm.DB
}

// NewService creates a new catalog lookup service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// FindByID looks up a native book by its raw id.
func (s *Service) FindByID(ctx context.Context, id string) (*models.NativeBook, error) {
	var book models.NativeBook
	err := s.db.WithContext(ctx).First(&book, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("no native book with id " + id)
		}
		return nil, apperr.Internal("catalog lookup failed", err)
	}
	return &book, nil
}
