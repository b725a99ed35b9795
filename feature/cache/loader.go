package cache

import (
	"openshelf/feature/catalog"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the cache feature. covers may be nil when no object
// storage is configured.
func NewFeature(cfg Config, db *gorm.DB, covers CoverIngester, logger *zap.Logger) *Feature {
	classifier := Classifier{Prefix: cfg.Prefix}
	store := NewStore(db)
	engine := NewEngine(store, catalog.NewService(db), classifier, logger)
	coordinator := NewCoordinator(store, classifier, logger)
	source := NewSourceClient(cfg)

	svc := NewService(store, engine, coordinator, classifier, source, covers, logger)
	h := NewHandler(svc, logger)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "cache"
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
