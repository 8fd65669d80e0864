package domain

import "errors"

// Tokens are stateless bearer capabilities: a signed subject email plus an
// issued/expiry pair. They are never persisted and cannot be revoked before
// expiry; that tradeoff is deliberate (no server-side blacklist).
var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
)
