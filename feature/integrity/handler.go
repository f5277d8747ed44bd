package integrity

import (
	"errors"
	"strings"

	"catalog-export/core/logger"
	"catalog-export/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/media", h.HandleMediaCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs the schema check and the media check of every content type. Objects are not verified in the bucket.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	report := make(map[string]interface{})

	if schemaReport, err := h.service.CheckSchema(); err != nil {
		report["schema"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = schemaReport
	}

	if mediaReports, err := h.service.CheckMedia(c.Context(), nil, false); err != nil {
		report["media"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["media"] = mediaReports
	}

	return c.JSON(report)
}

// HandleSchemaCheck checks the catalog schema.
// @Summary Check Catalog Schema
// @Description Checks that every catalog table and column expected by the models exists.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting catalog schema check")

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// HandleMediaCheck checks that media references point into the asset store.
// @Summary Check Media References
// @Description Lists media references that were not relocated. With verify, relocated objects are looked up in the bucket.
// @Tags integrity
// @Accept json
// @Produce json
// @Param type query string false "Comma separated content types (movies, shows)"
// @Param verify query boolean false "Verify relocated objects exist"
// @Success 200 {array} checks.MediaReport "Media Reports"
// @Failure 400 {object} map[string]string "Unknown content type"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/media [get]
func (h *Handler) HandleMediaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	verify := c.Query("verify") == "true"

	var names []string
	for _, name := range strings.Split(c.Query("type"), ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	reports, err := h.service.CheckMedia(c.Context(), names, verify)
	if errors.Is(err, ErrUnknownCatalog) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Media check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if reports == nil {
		reports = []*checks.MediaReport{}
	}
	return c.JSON(reports)
}
