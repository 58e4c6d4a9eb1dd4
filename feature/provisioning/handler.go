package provisioning

import (
	"context"
	"errors"

	"payment-relay/core/logger"
	"payment-relay/core/provision"
	"payment-relay/core/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Runner plans and applies the desired schema.
type Runner interface {
	Plan(ctx context.Context) (*provision.Plan, error)
	Run(ctx context.Context) (*provision.Report, error)
}

// Handler handles HTTP requests for provisioning.
type Handler struct {
	runner Runner
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(runner Runner, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{runner: runner, logger: logger}
}

// RegisterRoutes registers the provisioning routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/provision")
	group.Get("/plan", h.HandlePlan)
	group.Post("/", h.HandleProvision)
}

// HandlePlan computes the provisioning plan without applying it.
// @Summary Plan Provisioning
// @Description Compares the desired collections with the store and lists the collections and fields that would be created.
// @Tags provisioning
// @Produce json
// @Success 200 {object} provision.Plan
// @Failure 409 {object} map[string]string "Ambiguous database"
// @Failure 503 {object} map[string]string "Store unavailable"
// @Router /provision/plan [get]
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	plan, err := h.runner.Plan(c.UserContext())
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Provisioning plan failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(plan)
}

// HandleProvision applies the desired schema.
// @Summary Run Provisioning
// @Description Creates the database, collections and fields that are missing. Existing ones are never modified.
// @Tags provisioning
// @Produce json
// @Success 200 {object} provision.Report
// @Failure 409 {object} map[string]string "Ambiguous database"
// @Failure 503 {object} map[string]string "Store unavailable"
// @Router /provision [post]
func (h *Handler) HandleProvision(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	report, err := h.runner.Run(c.UserContext())
	if err != nil {
		l.Error("Provisioning failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	l.Info("Provisioning completed",
		zap.Int("collections_created", len(report.CollectionsCreated)),
		zap.Int("fields_created", report.FieldsCreated),
		zap.Int("fields_failed", report.FieldsFailed),
	)
	return c.JSON(report)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, provision.ErrAmbiguousDatabase), errors.Is(err, store.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, store.ErrUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
