package proxy

import (
	"fmt"

	"openshelf/core/apperr"
	"openshelf/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the content proxy.
type Handler struct {
	fetcher *Fetcher
	cfg     Config
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(fetcher *Fetcher, cfg Config, logger *zap.Logger) *Handler {
	return &Handler{fetcher: fetcher, cfg: cfg, logger: logger}
}

// RegisterRoutes registers the proxy routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/proxy")
	group.Get("/content", h.HandleFetchContent)
}

// HandleFetchContent relays raw remote text content.
// @Summary Proxy Remote Content
// @Description Fetch the raw text body of a remote URL through the bounded relay.
// @Tags proxy
// @Produce plain
// @Param url query string true "Remote URL to fetch"
// @Success 200 {string} string "Raw upstream text"
// @Failure 400 {object} map[string]string "Missing url parameter"
// @Failure 500 {object} map[string]string "Timeout or relay failure"
// @Router /proxy/content [get]
func (h *Handler) HandleFetchContent(c *fiber.Ctx) error {
	url := c.Query("url")
	l := logger.WithRayID(h.logger, c)

	body, err := h.fetcher.Fetch(c.Context(), url)
	if err != nil {
		switch {
		case apperr.IsKind(err, apperr.KindValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case apperr.IsKind(err, apperr.KindUpstream):
			// Pass the upstream's own status through.
			return c.Status(apperr.StatusOf(err)).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			l.Error("Content proxy failed", zap.String("url", url), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderCacheControl, fmt.Sprintf("public, max-age=%d", h.cfg.CacheMaxAgeSeconds))
	return c.SendString(body)
}
