package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/softphone-backend/internal/token"
	apperrors "github.com/spec-kit/softphone-backend/pkg/util"
)

const providerKey = "auth_provider"

// Middleware gates routes on Bearer tokens of the required type.
type Middleware struct {
	tokens *token.Manager
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *token.Manager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Authenticate builds a per-request provider from the Authorization header,
// falling back to the authorization query parameter for transports that
// cannot set headers.
func (m *Middleware) Authenticate(c *fiber.Ctx) (*Provider, bool) {
	provider := NewProvider(m.tokens)

	ok := false
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		ok = provider.Authenticate(header)
	} else if tok := c.Query("authorization"); tok != "" {
		ok = provider.AuthenticateToken(tok)
	}
	if ok {
		c.Locals(providerKey, provider)
	}
	return provider, ok
}

// RequireAuthenticated admits any valid token.
func (m *Middleware) RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := m.Authenticate(c); !ok {
			return apperrors.NewUnauthorized("Unauthorized")
		}
		return c.Next()
	}
}

// RequireAccessToken admits only valid access tokens.
func (m *Middleware) RequireAccessToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		provider, ok := m.Authenticate(c)
		if !ok {
			return apperrors.NewUnauthorized("Unauthorized. Token required")
		}
		if !provider.IsAccessToken() {
			return apperrors.NewForbidden("Invalid token type")
		}
		return c.Next()
	}
}

// RequireRefreshToken admits only valid refresh tokens.
func (m *Middleware) RequireRefreshToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		provider, ok := m.Authenticate(c)
		if !ok {
			return apperrors.NewUnauthorized("Invalid or missing token")
		}
		if !provider.IsRefreshToken() {
			return apperrors.NewForbidden("Invalid token type. Refresh token required")
		}
		return c.Next()
	}
}

// ProviderFromContext retrieves the authenticated provider.
func ProviderFromContext(c *fiber.Ctx) (*Provider, bool) {
	val := c.Locals(providerKey)
	if val == nil {
		return nil, false
	}
	provider, ok := val.(*Provider)
	return provider, ok
}
