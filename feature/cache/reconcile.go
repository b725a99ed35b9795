package cache

import (
	"context"

	"openshelf/core/apperr"
	"openshelf/feature/cache/models"
	"openshelf/feature/catalog"

	"go.uber.org/zap"
)

// Resolution is the outcome of resolving an external id against the cache
// and the native catalog. Exactly one of Entry and RedirectID is set.
type Resolution struct {
	// Entry is the cache entry, when no collision was found.
	Entry *models.CacheEntry `json:"entry,omitempty"`

	// RedirectID is the native id the caller should redirect to, when the
	// cached id collides with an authoritative native record.
	RedirectID string `json:"redirect,omitempty"`
}

// Engine resolves cache reads against the native catalog.
//
// Collisions are resolved lazily, on read: proactive reconciliation would
// require scanning the full cache against the full native catalog on every
// native write, an unbounded cost this design avoids. The delete and the
// redirect are individually idempotent, so two concurrent resolutions of
// the same colliding id may both delete and both redirect; the final state
// is identical regardless of interleaving.
type Engine struct {
	store      *Store
	catalog    catalog.Lookup
	classifier Classifier
	logger     *zap.Logger
}

// NewEngine creates a reconciliation engine.
func NewEngine(store *Store, lookup catalog.Lookup, classifier Classifier, logger *zap.Logger) *Engine {
	return &Engine{
		store:      store,
		catalog:    lookup,
		classifier: classifier,
		logger:     logger,
	}
}

// Resolve looks up id in the cache and checks the native catalog for a
// record sharing the raw (prefix-stripped) id. On a collision the cache
// entry is deleted and a redirect to the native id is returned; otherwise
// the entry is returned unchanged. A missing cache entry yields a not_found
// error.
//
// Known limitation: stripping a fixed prefix can misfire when an external
// numeric id coincides with an unrelated native id of the same raw value.
// That behavior is intentional.
func (e *Engine) Resolve(ctx context.Context, id string) (*Resolution, error) {
	entry, err := e.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rawID := e.classifier.RawID(id)
	native, err := e.catalog.FindByID(ctx, rawID)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			// No collision: the cache entry stands.
			return &Resolution{Entry: entry}, nil
		}
		// Catalog unreachable: leave all state untouched.
		return nil, err
	}

	// Collision: clear the shadow before anyone renders it. A single
	// idempotent delete; no transaction with the lookup above.
	if err := e.store.Delete(ctx, id); err != nil {
		return nil, err
	}

	e.logger.Info("Reconciled colliding cache entry",
		zap.String("cache_id", id),
		zap.String("native_id", native.ID),
	)

	return &Resolution{RedirectID: native.ID}, nil
}
