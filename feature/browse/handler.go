package browse

import (
	"errors"

	"catalog-recovery/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler handles HTTP requests for browsing the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the browse routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/albums", h.HandleListAlbums)
	app.Get("/albums/:slug", h.HandleGetAlbum)
	app.Get("/files/:id", h.HandleGetFile)
	app.Get("/files/:id/content", h.HandleGetFileContent)
}

// HandleListAlbums returns the flat album list with file counts.
func (h *Handler) HandleListAlbums(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	albums, err := h.service.ListAlbums(c.Context())
	if err != nil {
		l.Error("Album listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(albums)
}

// HandleGetAlbum returns one album with its children and files.
func (h *Handler) HandleGetAlbum(c *fiber.Ctx) error {
	slug := c.Params("slug")
	l := logger.WithRayID(h.service.logger, c)

	detail, err := h.service.GetAlbum(c.Context(), slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "album not found",
			})
		}
		l.Error("Album lookup failed", zap.String("slug", slug), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(detail)
}

// HandleGetFile returns one file row.
func (h *Handler) HandleGetFile(c *fiber.Ctx) error {
	id := c.Params("id")
	l := logger.WithRayID(h.service.logger, c)

	file, err := h.service.GetFile(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "file not found",
			})
		}
		l.Error("File lookup failed", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(file)
}

// HandleGetFileContent streams the stored bytes with the row's MIME type.
func (h *Handler) HandleGetFileContent(c *fiber.Ctx) error {
	id := c.Params("id")
	l := logger.WithRayID(h.service.logger, c)

	rc, mimeType, err := h.service.OpenFileContent(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "file not found",
			})
		}
		l.Error("File content open failed", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, mimeType)
	return c.SendStream(rc)
}
