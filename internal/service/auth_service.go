package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/softphone-backend/internal/domain"
	"github.com/spec-kit/softphone-backend/internal/repository"
	"github.com/spec-kit/softphone-backend/internal/token"
)

// ErrInvalidCredentials is the single failure every login miss collapses
// into; callers never learn whether the account or the secret was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrMissingSubject reports refresh claims without a usable sub.
var ErrMissingSubject = errors.New("missing subject claim")

// AuthService verifies softphone credentials and issues token pairs.
type AuthService struct {
	accounts repository.SipAccountRepository
	tokens   *token.Manager
}

// NewAuthService builds the service.
func NewAuthService(accounts repository.SipAccountRepository, tokens *token.Manager) *AuthService {
	return &AuthService{accounts: accounts, tokens: tokens}
}

// Login checks username/password against the provisioned SIP accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.SipAccount, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	acct, err := s.accounts.GetByExtension(ctx, username)
	if err != nil {
		return nil, err
	}
	if acct == nil || acct.Disabled || !verifySecret(acct.Secret, password) {
		return nil, ErrInvalidCredentials
	}
	return acct, nil
}

// IssueTokenPair creates the access and refresh tokens for an account.
func (s *AuthService) IssueTokenPair(acct *domain.SipAccount) (access, refresh string, err error) {
	claims := token.Claims{
		"sub":      acct.ID,
		"username": acct.Extension,
		"role":     "user",
	}
	access, err = s.tokens.CreateAccessToken(claims)
	if err != nil {
		return "", "", err
	}
	refresh, err = s.tokens.CreateRefreshToken(claims)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// RefreshAccessToken re-issues an access token carrying the same identity as
// the presented refresh-token claims.
func (s *AuthService) RefreshAccessToken(claims token.Claims) (string, error) {
	sub := claims["sub"]
	if sub == nil || sub == "" {
		return "", ErrMissingSubject
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = "user"
	}

	return s.tokens.CreateAccessToken(token.Claims{
		"sub":      sub,
		"username": claims["username"],
		"role":     role,
	})
}

// verifySecret accepts a bcrypt hash (dedicated softphone accounts) or a
// plaintext SIP secret compared in constant time.
func verifySecret(stored, presented string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}
