package vault

import (
	"encoding/json"
	"errors"

	"payment-relay/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HeaderUserID carries the id of the user that triggered the event.
const HeaderUserID = "x-appwrite-user-id"

// UserEvent is the platform's user event body. Only the id is read.
type UserEvent struct {
	ID string `json:"$id"`
}

// Handler handles HTTP requests for vault sync.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the vault routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/vault/user-event", h.HandleUserEvent)
}

// HandleUserEvent syncs the user of a platform event to the customer vault.
// @Summary Sync User To Vault
// @Description Fetches the user named by the event and adds or updates the matching customer vault record.
// @Tags vault
// @Accept json
// @Produce json
// @Param event body UserEvent true "User event"
// @Param x-appwrite-user-id header string false "Initiating user"
// @Success 200 {object} Outcome
// @Failure 400 {object} map[string]string "Missing user id"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /vault/user-event [post]
func (h *Handler) HandleUserEvent(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var event UserEvent
	if err := json.Unmarshal(c.Body(), &event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid event body"})
	}

	out, err := h.service.Sync(c.UserContext(), event.ID, c.Get(HeaderUserID))
	if err != nil {
		l.Error("Vault sync failed", zap.String("user_id", event.ID), zap.Error(err))
		status := fiber.StatusInternalServerError
		if errors.Is(err, ErrMissingUserID) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(out)
}
