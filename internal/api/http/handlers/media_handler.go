package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/softphone-backend/internal/auth"
	"github.com/spec-kit/softphone-backend/internal/observability"
	apperrors "github.com/spec-kit/softphone-backend/pkg/util"
)

// MediaHandler is the reverse-proxy authorization subrequest target: the
// proxy calls it before serving recorded audio or upgrading a WebSocket, and
// any non-200 is a hard deny.
type MediaHandler struct {
	auth     *auth.Middleware
	security *observability.SecurityLog
}

// NewMediaHandler constructs handler.
func NewMediaHandler(authMiddleware *auth.Middleware, security *observability.SecurityLog) *MediaHandler {
	return &MediaHandler{auth: authMiddleware, security: security}
}

// Check handles GET /check-media-access. Any valid token grants; every
// decision is security-logged.
func (h *MediaHandler) Check(c *fiber.Ctx) error {
	provider, ok := h.auth.Authenticate(c)
	if !ok {
		h.security.Event(observability.EventMediaAccessDenied,
			"Unauthorized access attempt to media resource", c.IP())
		observability.CountMediaDecision("deny")
		return apperrors.NewUnauthorized("Unauthorized")
	}

	h.security.Event(observability.EventMediaAccessOK,
		fmt.Sprintf("User %s accessed media resource", provider.Username()), c.IP())
	observability.CountMediaDecision("grant")

	return c.JSON(fiber.Map{"success": true})
}
