package auth

import (
	"strconv"
	"strings"

	"github.com/spec-kit/softphone-backend/internal/token"
)

// Provider validates Bearer tokens and holds the resulting claims for the
// lifetime of one request. Header access is an explicit input; nothing is
// read from process-ambient state. Instances are not safe for sharing across
// requests, and callers must Authenticate before using any accessor.
type Provider struct {
	tokens      *token.Manager
	credentials token.Claims
}

// NewProvider builds a per-request provider.
func NewProvider(tokens *token.Manager) *Provider {
	return &Provider{tokens: tokens}
}

// ExtractBearerToken parses an Authorization header value per RFC 6750:
// exactly two whitespace-separated fields, scheme "bearer" compared
// case-insensitively, non-empty token. Returns "" otherwise.
func ExtractBearerToken(headerValue string) string {
	fields := strings.Fields(headerValue)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(fields[1])
}

// Authenticate validates the Bearer token carried in the Authorization header
// value. On any failure the held credentials are cleared.
func (p *Provider) Authenticate(headerValue string) bool {
	tok := ExtractBearerToken(headerValue)
	if tok == "" {
		p.credentials = nil
		return false
	}
	return p.AuthenticateToken(tok)
}

// AuthenticateToken validates a bare token, as carried by the authorization
// query parameter on transports that cannot set headers.
func (p *Provider) AuthenticateToken(tok string) bool {
	claims := p.tokens.ValidateToken(tok)
	if claims == nil {
		p.credentials = nil
		return false
	}
	p.credentials = claims
	return true
}

// UserID parses the sub claim as an integer.
func (p *Provider) UserID() (int64, bool) {
	switch v := p.credentials["sub"].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}

// Username returns the username claim.
func (p *Provider) Username() string {
	name, _ := p.credentials["username"].(string)
	return name
}

// UserRole returns the role claim.
func (p *Provider) UserRole() string {
	role, _ := p.credentials["role"].(string)
	return role
}

// HasRole checks the role claim for an exact match.
func (p *Provider) HasRole(role string) bool {
	return p.UserRole() == role
}

// TokenType returns the type claim.
func (p *Provider) TokenType() string {
	t, _ := p.credentials["type"].(string)
	return t
}

// IsAccessToken reports whether the held token is an access token.
func (p *Provider) IsAccessToken() bool {
	return p.TokenType() == token.TypeAccess
}

// IsRefreshToken reports whether the held token is a refresh token.
func (p *Provider) IsRefreshToken() bool {
	return p.TokenType() == token.TypeRefresh
}

// Claims returns the full claim map.
func (p *Provider) Claims() token.Claims {
	return p.credentials
}
