package cache

import (
	"context"

	"openshelf/core/apperr"
	"openshelf/feature/cache/models"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CoverIngester stores a normalized copy of a remote cover image.
// Implemented by the image feature; optional.
type CoverIngester interface {
	Ingest(ctx context.Context, id, url string) error
}

// Service orchestrates resolution and the on-demand fetch-and-cache path.
type Service struct {
	store       *Store
	engine      *Engine
	coordinator *Coordinator
	classifier  Classifier
	source      *SourceClient
	covers      CoverIngester
	logger      *zap.Logger

	// sf collapses concurrent remote fetches of the same id into one.
	sf singleflight.Group
}

// NewService creates a cache service. source and covers may be nil; a nil
// source disables on-demand fetching.
func NewService(store *Store, engine *Engine, coordinator *Coordinator, classifier Classifier, source *SourceClient, covers CoverIngester, logger *zap.Logger) *Service {
	return &Service{
		store:       store,
		engine:      engine,
		coordinator: coordinator,
		classifier:  classifier,
		source:      source,
		covers:      covers,
		logger:      logger,
	}
}

// Resolve resolves an external id against the cache and native catalog.
func (s *Service) Resolve(ctx context.Context, id string) (*Resolution, error) {
	return s.engine.Resolve(ctx, id)
}

// Stats computes classification statistics over the current cache.
func (s *Service) Stats(ctx context.Context) (*models.Stats, error) {
	return s.coordinator.Stats(ctx)
}

// GetOrFetch resolves id, and on a cache miss fetches the record from the
// external source, caches it, and resolves again (so a freshly fetched id
// that collides with a native record still redirects). Concurrent misses on
// the same id share one remote fetch.
func (s *Service) GetOrFetch(ctx context.Context, id string) (*Resolution, error) {
	res, err := s.engine.Resolve(ctx, id)
	if err == nil {
		return res, nil
	}
	if !apperr.IsKind(err, apperr.KindNotFound) || s.source == nil {
		return nil, err
	}
	if !s.classifier.IsExternalID(id) {
		// Malformed ids never reach the remote source.
		return nil, err
	}

	_, fetchErr, shared := s.sf.Do(id, func() (interface{}, error) {
		entry, err := s.source.FetchBook(ctx, s.classifier.RawID(id))
		if err != nil {
			return nil, err
		}
		if err := s.store.Set(ctx, entry); err != nil {
			return nil, err
		}

		// Cover ingest is best-effort; a failed cover never fails the view.
		if s.covers != nil && entry.CoverURL != "" {
			if err := s.covers.Ingest(ctx, entry.ID, entry.CoverURL); err != nil {
				s.logger.Warn("Cover ingest failed",
					zap.String("id", entry.ID), zap.Error(err))
			}
		}
		return entry, nil
	})
	if fetchErr != nil {
		return nil, fetchErr
	}
	if shared {
		s.logger.Debug("Shared in-flight source fetch", zap.String("id", id))
	}

	return s.engine.Resolve(ctx, id)
}
