package export

import (
	"errors"

	"catalog-export/core/export"
	"catalog-export/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for catalog exports.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the export routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/export")
	group.Get("/status", h.HandleStatus)
	group.Post("/run", h.HandleRun)
}

// HandleStatus returns the export state.
// @Summary Export Status
// @Description Reports whether an export is running and the result of the last run.
// @Tags export
// @Produce json
// @Success 200 {object} Status "Export Status"
// @Router /export/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.Status())
}

// HandleRun starts an export in the background.
// @Summary Run Export
// @Description Starts reconciling the given content types, or all of them. Progress is reported by the status endpoint.
// @Tags export
// @Produce json
// @Param types query string false "Comma separated content types (e.g. shows,movies)"
// @Success 202 {object} map[string]interface{} "Export Started"
// @Failure 400 {object} map[string]string "Unknown Content Type"
// @Failure 409 {object} map[string]string "Export Already Running"
// @Router /export/run [post]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	types := ParseTypes(c.Query("types"))

	if err := h.service.Trigger(types); err != nil {
		switch {
		case errors.Is(err, export.ErrAlreadyRunning):
			l.Warn("Export requested while running")
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, export.ErrUnknownType):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			l.Error("Failed to start export", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	if len(types) == 0 {
		types = h.service.orchestrator.Types()
	}
	l.Info("Export started", zap.Strings("types", types))
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status": "started",
		"types":  types,
	})
}
