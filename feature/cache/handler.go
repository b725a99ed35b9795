package cache

import (
	"openshelf/core/apperr"
	"openshelf/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the cache feature.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the cache routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/books")
	group.Get("/external/:id", h.HandleGetExternal)

	app.Get("/cache/stats", h.HandleStats)
}

// HandleGetExternal resolves a cached external book.
// @Summary Get External Book
// @Description Resolve a cached external book by its prefixed id. Returns the entry, or a redirect to the native record when the id collides.
// @Tags cache
// @Accept json
// @Produce json
// @Param id path string true "External id (e.g. 'ext-42')"
// @Success 200 {object} cache.Resolution "Entry or redirect"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /books/external/{id} [get]
func (h *Handler) HandleGetExternal(c *fiber.Ctx) error {
	id := c.Params("id")
	l := logger.WithRayID(h.logger, c)

	res, err := h.service.GetOrFetch(c.Context(), id)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		l.Error("External book resolution failed", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if res.RedirectID != "" {
		// Rendering lives outside this service, so redirects are returned
		// as data rather than HTTP 3xx.
		return c.JSON(fiber.Map{"redirect": res.RedirectID})
	}
	return c.JSON(res.Entry)
}

// HandleStats returns classification statistics for the cache.
// @Summary Cache Stats
// @Description Classify every cache entry and return aggregate counts plus a per-entry detail list. Read-only.
// @Tags cache
// @Accept json
// @Produce json
// @Success 200 {object} models.Stats "Cache statistics"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /cache/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	stats, err := h.service.Stats(c.Context())
	if err != nil {
		l.Error("Cache stats failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(stats)
}
