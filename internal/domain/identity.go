package domain

import "time"

// DefaultSessionUserID is the acting user when no identity is supplied.
const DefaultSessionUserID = "user123"

// TokenIssuer issues bearer tokens for a user id.
type TokenIssuer interface {
	Issue(userID, name string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}
