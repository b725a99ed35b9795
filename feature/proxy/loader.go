package proxy

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	fetcher *Fetcher
	handler *Handler
}

// NewFeature creates the content proxy feature.
func NewFeature(cfg Config, logger *zap.Logger) *Feature {
	fetcher := NewFetcher(cfg)
	h := NewHandler(fetcher, cfg, logger)
	return &Feature{fetcher: fetcher, handler: h}
}

// Fetcher exposes the underlying fetcher for other features (cover ingest).
func (f *Feature) Fetcher() *Fetcher {
	return f.fetcher
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "proxy"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
