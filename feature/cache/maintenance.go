package cache

import (
	"context"

	"openshelf/feature/cache/models"

	"go.uber.org/zap"
)

// Coordinator implements the operator-facing bulk operations: wiping the
// cache, rebuilding it from a fresh list of source records, and computing
// classification statistics.
//
// The bulk operations are best-effort and non-transactional. They are meant
// for operator invocation (the `cache` CLI commands), not for the user-facing
// request path, and must not run automatically under concurrent load: a
// reader racing a rebuild may observe a momentarily empty or partially
// rebuilt cache.
type Coordinator struct {
	store      *Store
	classifier Classifier
	logger     *zap.Logger
}

// NewCoordinator creates a maintenance coordinator.
func NewCoordinator(store *Store, classifier Classifier, logger *zap.Logger) *Coordinator {
	return &Coordinator{store: store, classifier: classifier, logger: logger}
}

// CleanAll deletes every cache entry. Not atomic: a failure mid-iteration
// leaves a partially cleaned store. Failed deletions are counted and not
// retried; Succeeded reflects only confirmed deletions.
func (m *Coordinator) CleanAll(ctx context.Context) (models.BulkResult, error) {
	entries, err := m.store.ListAll(ctx)
	if err != nil {
		return models.BulkResult{}, err
	}

	var res models.BulkResult
	for _, entry := range entries {
		if err := m.store.Delete(ctx, entry.ID); err != nil {
			m.logger.Warn("Failed to delete cache entry",
				zap.String("id", entry.ID), zap.Error(err))
			res.Failed++
			continue
		}
		res.Succeeded++
	}

	m.logger.Info("Cache cleaned",
		zap.Int("deleted", res.Succeeded), zap.Int("failed", res.Failed))
	return res, nil
}

// RebuildFromSource wipes the cache and re-inserts every record whose id
// matches the external shape (prefix + numeric suffix). Malformed records
// are skipped without error and without counting as inserted; a failed
// insert never aborts the batch.
func (m *Coordinator) RebuildFromSource(ctx context.Context, records []models.SourceRecord) (models.BulkResult, error) {
	cleaned, err := m.CleanAll(ctx)
	if err != nil {
		return models.BulkResult{}, err
	}
	m.logger.Info("Rebuilding cache from source",
		zap.Int("cleaned", cleaned.Succeeded), zap.Int("records", len(records)))

	var res models.BulkResult
	for _, rec := range records {
		if !m.classifier.IsExternalID(rec.ID) {
			res.Skipped++
			continue
		}
		entry := rec.Entry()
		if err := m.store.Set(ctx, &entry); err != nil {
			m.logger.Warn("Failed to insert source record",
				zap.String("id", rec.ID), zap.Error(err))
			res.Failed++
			continue
		}
		res.Succeeded++
	}

	return res, nil
}

// Stats classifies every entry in the cache and aggregates the counts plus
// a per-entry detail list. Read-only, no mutation.
func (m *Coordinator) Stats(ctx context.Context) (*models.Stats, error) {
	entries, err := m.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.Stats{
		Total:   len(entries),
		Details: make([]models.ClassificationDetail, 0, len(entries)),
	}

	for _, entry := range entries {
		c := m.classifier.Classify(entry)
		switch c {
		case models.ValidExternal:
			stats.ValidExternal++
		case models.NativeShadow:
			stats.NativeShadow++
		default:
			stats.Suspicious++
		}
		stats.Details = append(stats.Details, models.ClassificationDetail{
			ID:             entry.ID,
			Title:          entry.Title,
			Classification: c,
		})
	}

	return stats, nil
}
