package relay

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"payment-relay/core/gateway"
	"payment-relay/core/logger"
	"payment-relay/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ArchiveReader reads archived exchanges.
type ArchiveReader interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	List(ctx context.Context, prefix string) ([]string, error)
}

// Handler handles HTTP requests for the relay.
type Handler struct {
	service *Service
	archive ArchiveReader
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler. archive may be nil.
func NewHandler(service *Service, archive ArchiveReader, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, archive: archive, logger: logger}
}

// RegisterRoutes registers the relay routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/relay")
	group.Post("/", h.HandleRelay)
	if h.archive != nil {
		group.Get("/archive", h.HandleListArchive)
		group.Get("/archive/*", h.HandleGetArchive)
	}
}

// HandleRelay forwards an envelope to the gateway.
// @Summary Relay Gateway Request
// @Description Validates a request envelope, forwards it to the payment gateway and records the reply in the Gateway Logs collection.
// @Tags relay
// @Accept json
// @Produce json
// @Param envelope body Envelope true "Request envelope"
// @Success 200 {object} Result
// @Failure 400 {object} map[string]string "Invalid envelope"
// @Failure 502 {object} map[string]string "Gateway failure"
// @Failure 503 {object} map[string]string "Schema not ready"
// @Router /relay [post]
func (h *Handler) HandleRelay(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	env, _, err := ParseEnvelope(c.Body())
	if err != nil {
		l.Warn("Rejected relay request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.service.Relay(c.UserContext(), logger.RayID(c), env)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// HandleListArchive lists archived exchanges.
// @Summary List Archived Exchanges
// @Description Lists archive keys of one category, or under a raw key prefix such as logs/transaction/2026.
// @Tags relay
// @Produce json
// @Param category query string false "Request category; takes precedence over prefix"
// @Param prefix query string false "Key prefix"
// @Success 200 {object} map[string]interface{} "Keys"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /relay/archive [get]
func (h *Handler) HandleListArchive(c *fiber.Ctx) error {
	prefix := c.Query("prefix", "logs/")
	if category := c.Query("category"); category != "" {
		prefix = storage.CategoryPrefix(category)
	}
	keys, err := h.archive.List(c.UserContext(), prefix)
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to list archive", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if keys == nil {
		keys = []string{}
	}
	return c.JSON(fiber.Map{"prefix": prefix, "keys": keys})
}

// HandleGetArchive returns one archived exchange.
// @Summary Get Archived Exchange
// @Description Returns the archived request and reply stored under key.
// @Tags relay
// @Produce json
// @Param key path string true "Archive key"
// @Success 200 {object} Exchange
// @Failure 400 {object} map[string]string "Missing key"
// @Failure 404 {object} map[string]string "Not found"
// @Router /relay/archive/{key} [get]
func (h *Handler) HandleGetArchive(c *fiber.Ctx) error {
	key := strings.TrimPrefix(c.Params("*"), "/")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "key is required"})
	}
	raw, err := h.archive.Get(c.UserContext(), key)
	if err != nil {
		logger.WithRayID(h.logger, c).Warn("Archive lookup failed", zap.String("key", key), zap.Error(err))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidEnvelope):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrNotReady):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, gateway.ErrGateway):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
