package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/softphone-backend/internal/api/dto"
	"github.com/spec-kit/softphone-backend/internal/auth"
	"github.com/spec-kit/softphone-backend/internal/observability"
	"github.com/spec-kit/softphone-backend/internal/service"
	apperrors "github.com/spec-kit/softphone-backend/pkg/util"
)

// AuthHandler exposes login, refresh and logout.
type AuthHandler struct {
	auth      *service.AuthService
	security  *observability.SecurityLog
	expiresIn int
}

// NewAuthHandler constructs handler. expiresIn is the advertised access-token
// lifetime in seconds.
func NewAuthHandler(authService *service.AuthService, security *observability.SecurityLog, expiresIn int) *AuthHandler {
	return &AuthHandler{auth: authService, security: security, expiresIn: expiresIn}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid credentials provided")
	}
	if req.Username == "" || req.Password == "" {
		h.security.Event(observability.EventAuthFailed, "Failed login attempt for empty user", c.IP())
		observability.CountAuthAttempt("failure")
		return apperrors.NewBadRequest("Invalid credentials provided")
	}

	acct, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.security.Event(observability.EventAuthFailed,
				fmt.Sprintf("Failed login attempt for user: %s", req.Username), c.IP())
			observability.CountAuthAttempt("failure")
			return apperrors.NewUnauthorized("Invalid credentials")
		}
		return apperrors.NewInternalError(err)
	}

	access, refresh, err := h.auth.IssueTokenPair(acct)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	h.security.Event(observability.EventAuthSuccess,
		fmt.Sprintf("User %s logged in successfully", acct.Extension), c.IP())
	observability.CountAuthAttempt("success")

	return c.JSON(dto.TokenResponse{
		Success:      true,
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    h.expiresIn,
	})
}

// Refresh handles POST /auth/refresh; the refresh-token middleware runs first.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	provider, ok := auth.ProviderFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Invalid or missing token")
	}

	access, err := h.auth.RefreshAccessToken(provider.Claims())
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	return c.JSON(dto.TokenResponse{
		Success:     true,
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   h.expiresIn,
	})
}

// Logout handles POST /auth/logout. Tokens are not revocable server-side;
// this only records the event.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	provider, ok := auth.ProviderFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	userID, _ := provider.UserID()
	h.security.Event(observability.EventLogout,
		fmt.Sprintf("User ID %d logged out", userID), c.IP())

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}
