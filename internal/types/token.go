package types

import "github.com/google/uuid"

// TokenClaims is the decoded identity carried by a session token.
// It lives here so middleware can depend on it without importing the
// service package.
type TokenClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}
