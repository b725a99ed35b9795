package image

import (
	"openshelf/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature wires the image normalizer, cover ingest service and handler.
type Feature struct {
	handler *Handler
	covers  *CoverService
}

// NewFeature creates the image feature.
func NewFeature(cfg Config, client storage.Client, bucket string, fetcher RemoteFetcher, logger *zap.Logger) *Feature {
	normalizer := NewNormalizer(cfg.MaxUploadBytes)
	handler := NewHandler(normalizer, cfg, logger)

	var covers *CoverService
	if client != nil {
		covers = NewCoverService(client, bucket, fetcher, normalizer, cfg, logger)
	}

	return &Feature{handler: handler, covers: covers}
}

// Covers returns the cover ingest service, or nil when object storage is
// not configured.
func (f *Feature) Covers() *CoverService {
	return f.covers
}

// Name returns the feature name.
func (f *Feature) Name() string {
	return "image"
}

// IsEnabled reports whether the feature should be loaded.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(router fiber.Router) error {
	f.handler.RegisterRoutes(router)
	return nil
}
