package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/softphone-backend/internal/api/dto"
	"github.com/spec-kit/softphone-backend/internal/auth"
	"github.com/spec-kit/softphone-backend/internal/service"
	apperrors "github.com/spec-kit/softphone-backend/pkg/util"
)

// ProfileHandler serves the access-token protected read endpoints.
type ProfileHandler struct {
	directory *service.DirectoryService
	history   *service.HistoryService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(directory *service.DirectoryService, history *service.HistoryService) *ProfileHandler {
	return &ProfileHandler{directory: directory, history: history}
}

func userInfo(provider *auth.Provider) dto.UserInfo {
	id, _ := provider.UserID()
	return dto.UserInfo{
		ID:       id,
		Username: provider.Username(),
		Role:     provider.UserRole(),
	}
}

// Profile handles GET /profile.
func (h *ProfileHandler) Profile(c *fiber.Ctx) error {
	provider, ok := auth.ProviderFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized. Token required")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    userInfo(provider),
	})
}

// Users handles GET /users: the profile plus the latest presence broadcast.
func (h *ProfileHandler) Users(c *fiber.Ctx) error {
	provider, ok := auth.ProviderFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized. Token required")
	}

	return c.JSON(dto.UsersResponse{
		Success:  true,
		User:     userInfo(provider),
		Statuses: h.directory.UserStates(c.Context()),
	})
}

// History handles GET /history. The optional date parameter is YYYY-MM-DD;
// anything else means today.
func (h *ProfileHandler) History(c *fiber.Ctx) error {
	provider, ok := auth.ProviderFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized. Token required")
	}

	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			day = parsed
		}
	}

	user := userInfo(provider)
	user.Mobile = h.history.Mobile(c.Context(), user.Username)

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
		"history": h.history.History(c.Context(), user.Username, day),
	})
}
