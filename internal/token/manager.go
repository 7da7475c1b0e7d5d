package token

import (
	"strconv"
	"time"
)

// Default token lifetimes.
const (
	DefaultAccessTTL  = time.Hour
	DefaultRefreshTTL = 30 * 24 * time.Hour
)

// Manager issues and validates access/refresh tokens.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewManager builds a manager around a shared secret. Non-positive lifetimes
// fall back to the defaults.
func NewManager(secret []byte, accessTTL, refreshTTL time.Duration) *Manager {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &Manager{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// CreateAccessToken stamps iat/exp/type and signs. Caller-supplied claims are
// not mutated.
func (m *Manager) CreateAccessToken(claims Claims) (string, error) {
	return m.issue(claims, TypeAccess, m.accessTTL)
}

// CreateRefreshToken stamps iat/exp/type and signs.
func (m *Manager) CreateRefreshToken(claims Claims) (string, error) {
	return m.issue(claims, TypeRefresh, m.refreshTTL)
}

func (m *Manager) issue(claims Claims, tokenType string, ttl time.Duration) (string, error) {
	now := m.now()
	stamped := make(Claims, len(claims)+3)
	for k, v := range claims {
		stamped[k] = v
	}
	stamped["iat"] = now.Unix()
	stamped["exp"] = now.Add(ttl).Unix()
	stamped["type"] = tokenType
	return Encode(stamped, m.secret)
}

// ValidateToken returns the claims of a valid token, or nil. Malformed
// structure, a bad signature and an expired token are indistinguishable to
// the caller, and the signature is always checked before expiry so the two
// failure modes cost the same.
func (m *Manager) ValidateToken(tokenStr string) Claims {
	decoded, err := Decode(tokenStr)
	if err != nil {
		return nil
	}
	if !VerifySignature(decoded.SignedMessage, decoded.Signature, m.secret) {
		return nil
	}
	if exp, ok := NumericClaim(decoded.Claims, "exp"); ok && exp < m.now().Unix() {
		return nil
	}
	return decoded.Claims
}

// IsExpired reports whether the token is past its exp claim or otherwise
// invalid.
func (m *Manager) IsExpired(tokenStr string) bool {
	claims := m.ValidateToken(tokenStr)
	if claims == nil {
		return true
	}
	exp, ok := NumericClaim(claims, "exp")
	return ok && exp < m.now().Unix()
}

// NumericClaim reads an integer claim, accepting the JSON number and string
// forms a foreign issuer might emit.
func NumericClaim(claims Claims, key string) (int64, bool) {
	switch v := claims[key].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
