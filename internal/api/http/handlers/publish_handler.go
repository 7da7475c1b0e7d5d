package handlers

import (
	"encoding/json"
	"net"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/softphone-backend/internal/bus"
	apperrors "github.com/spec-kit/softphone-backend/pkg/util"
)

// PublishHandler accepts broadcast payloads on the loopback-only pub
// endpoints and fans them out through the broker.
type PublishHandler struct {
	broker bus.Broker
}

// NewPublishHandler constructs handler.
func NewPublishHandler(broker bus.Broker) *PublishHandler {
	return &PublishHandler{broker: broker}
}

// LoopbackOnly rejects publish attempts from anywhere but the local host.
func LoopbackOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := net.ParseIP(c.IP())
		if ip == nil || !ip.IsLoopback() {
			return apperrors.NewForbidden("Forbidden")
		}
		return c.Next()
	}
}

// UsersState handles POST /pub/users-state.
func (h *PublishHandler) UsersState(c *fiber.Ctx) error {
	return h.publish(c, bus.ChannelUsersState)
}

// ActiveCalls handles POST /pub/active-calls.
func (h *PublishHandler) ActiveCalls(c *fiber.Ctx) error {
	return h.publish(c, bus.ChannelActiveCalls)
}

// Contacts handles POST /pub/contacts.
func (h *PublishHandler) Contacts(c *fiber.Ctx) error {
	return h.publish(c, bus.ChannelContacts)
}

func (h *PublishHandler) publish(c *fiber.Ctx, channel string) error {
	body := c.Body()
	if len(body) == 0 || !json.Valid(body) {
		return apperrors.NewBadRequest("Invalid payload")
	}

	payload := make([]byte, len(body))
	copy(payload, body)

	if err := h.broker.Publish(c.Context(), channel, payload); err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"success": true})
}
