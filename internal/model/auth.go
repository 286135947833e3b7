package model

// LoginRequest represents a login attempt.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries the issued bearer token back to the client.
type TokenResponse struct {
	Token string `json:"token"`
}
