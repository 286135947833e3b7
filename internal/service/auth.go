package service

import (
	"errors"
	"log/slog"

	"github.com/listkeeper/listkeeper-go/internal/crypto"
	"github.com/listkeeper/listkeeper-go/internal/model"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService authenticates against the single configured identity pair
// and issues session tokens for it.
//
// By default the password is compared as plain text, as the service has
// always done. When passwordHash is set to a PHC argon2id string the
// plain comparison is disabled and the password is verified against the
// hash instead.
type AuthService struct {
	username     string
	password     string
	passwordHash string
	tokens       *TokenService
}

// NewAuthService creates an AuthService for the given identity pair.
func NewAuthService(username, password, passwordHash string, tokens *TokenService) *AuthService {
	if passwordHash != "" && !crypto.IsPHCHash(passwordHash) {
		slog.Warn("AUTH_PASSWORD_HASH is not a PHC argon2id string, ignoring it")
		passwordHash = ""
	}
	return &AuthService{
		username:     username,
		password:     password,
		passwordHash: passwordHash,
		tokens:       tokens,
	}
}

// Authenticate reports whether the given pair matches the configured
// identity.
func (s *AuthService) Authenticate(username, password string) bool {
	if username != s.username {
		return false
	}
	if s.passwordHash != "" {
		match, err := crypto.VerifyPassword(password, s.passwordHash)
		if err != nil {
			slog.Error("password hash verification failed", "error", err)
			return false
		}
		return match
	}
	return password == s.password
}

// Login authenticates the request and returns a token response, or
// ErrInvalidCredentials. No token is ever issued on failure.
func (s *AuthService) Login(req model.LoginRequest) (model.TokenResponse, error) {
	if !s.Authenticate(req.Username, req.Password) {
		return model.TokenResponse{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(req.Username)
	if err != nil {
		return model.TokenResponse{}, err
	}
	return model.TokenResponse{Token: token}, nil
}
