package service

import (
	"log/slog"
	"time"

	"github.com/listkeeper/listkeeper-go/internal/crypto"
)

// TokenService issues and verifies signed, time-limited session tokens.
// The signing secret is injected once at construction and never rotated.
type TokenService struct {
	secret string
	expiry time.Duration
}

// NewTokenService creates a TokenService signing with secret, issuing
// tokens valid for expiry.
func NewTokenService(secret string, expiry time.Duration) *TokenService {
	return &TokenService{secret: secret, expiry: expiry}
}

// Issue returns a signed token asserting the given username claim.
func (s *TokenService) Issue(username string) (string, error) {
	return crypto.GenerateToken(username, s.secret, s.expiry)
}

// Verify returns the decoded claims if the token's signature is valid
// and it has not expired, and nil otherwise. Verification failure is a
// normal outcome: it is logged for observability and never returned as
// an error.
func (s *TokenService) Verify(token string) *crypto.Claims {
	claims, err := crypto.ValidateToken(token, s.secret)
	if err != nil {
		slog.Info("token verification failed", "error", err)
		return nil
	}
	return claims
}
