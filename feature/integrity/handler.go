package integrity

import (
	"errors"

	"payment-relay/core/logger"
	"payment-relay/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.SchemaReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/archive", h.HandleArchiveCheck)
	group.Get("/catalog", h.HandleCatalogCheck)
}

func section(report interface{}, err error) interface{} {
	switch {
	case errors.Is(err, ErrNotConfigured):
		return fiber.Map{"status": "disabled"}
	case err != nil:
		return fiber.Map{"status": "error", "error": err.Error()}
	default:
		return report
	}
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs every configured integrity check (Schema, Archive, Catalog).
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.UserContext()
	report := make(map[string]interface{})

	schemaReport, err := h.service.CheckSchema(ctx)
	report["schema"] = section(schemaReport, err)

	archiveReport, err := h.service.CheckArchive(ctx)
	report["archive"] = section(archiveReport, err)

	catalogReport, err := h.service.CheckCatalog()
	report["catalog"] = section(catalogReport, err)

	return c.JSON(report)
}

// HandleSchemaCheck reports missing collections and fields.
// @Summary Check Schema
// @Description Compares the desired collections with the structured store without modifying it.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.SchemaReport
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckSchema(c.UserContext())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !report.Matched {
		logger.WithRayID(h.service.logger, c).Warn("Schema drift detected",
			zap.Strings("missing_collections", report.MissingCollections),
			zap.Strings("missing_fields", report.MissingFields),
		)
	}
	return c.JSON(report)
}

// HandleArchiveCheck checks and optionally creates the archive bucket.
// @Summary Check Archive Bucket
// @Description Checks that the archive bucket exists. Optionally creates it.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Create the bucket when missing"
// @Success 200 {object} checks.ArchiveReport
// @Failure 404 {object} map[string]string "Archive disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/archive [get]
func (h *Handler) HandleArchiveCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	report, err := h.service.CheckArchive(c.UserContext())
	if errors.Is(err, ErrNotConfigured) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "archive is disabled"})
	}
	if err != nil {
		l.Error("Archive check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !report.Exists && fix {
		if err := h.service.FixArchive(c.UserContext()); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to create bucket",
				"details": err.Error(),
			})
		}
		report.Exists = true
		return c.JSON(fiber.Map{"status": "fixed", "report": report})
	}
	return c.JSON(report)
}

// HandleCatalogCheck verifies the sql catalog.
// @Summary Check SQL Catalog
// @Description Validates that the sql store's catalog tables carry every required column.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.CatalogReport
// @Failure 404 {object} map[string]string "SQL backend not in use"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/catalog [get]
func (h *Handler) HandleCatalogCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckCatalog()
	if errors.Is(err, ErrNotConfigured) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "sql backend is not in use"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
