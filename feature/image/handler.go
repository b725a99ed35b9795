package image

import (
	"io"

	"openshelf/core/apperr"
	"openshelf/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the image normalization endpoint.
type Handler struct {
	normalizer *Normalizer
	cfg        Config
	logger     *zap.Logger
}

// NewHandler creates an image handler.
func NewHandler(normalizer *Normalizer, cfg Config, l *zap.Logger) *Handler {
	return &Handler{normalizer: normalizer, cfg: cfg, logger: l}
}

// RegisterRoutes mounts the image routes on the router.
func (h *Handler) RegisterRoutes(router fiber.Router) {
	router.Post("/image/compress", h.Compress)
}

// Compress re-encodes an uploaded image within the transfer bounds.
// @Summary Compress Image
// @Description Scale the uploaded image down to the transfer bounds and re-encode it as JPEG.
// @Tags image
// @Accept multipart/form-data
// @Produce jpeg
// @Param image formData file true "Image to compress"
// @Success 200 {file} binary "Compressed JPEG"
// @Failure 400 {object} map[string]string "Missing or oversized upload"
// @Failure 500 {object} map[string]string "Unparseable image"
// @Router /image/compress [post]
func (h *Handler) Compress(c *fiber.Ctx) error {
	log := logger.WithRayID(h.logger, c)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing image file",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open upload", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read upload",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Error("Failed to read upload", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read upload",
		})
	}

	out, err := h.normalizer.Normalize(data, h.cfg.TransferMaxWidth, h.cfg.TransferMaxHeight, h.cfg.Quality)
	if err != nil {
		if apperr.IsKind(err, apperr.KindValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		log.Error("Failed to normalize image",
			zap.String("filename", fileHeader.Filename), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to process image",
		})
	}

	c.Set(fiber.HeaderContentType, "image/jpeg")
	return c.Send(out)
}
