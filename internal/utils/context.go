// Package utils provides small helpers shared across the vault server and
// client: type-safe context keys, HMAC hashing for transport integrity,
// JWT token generation and validation, and identifier generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys. A dedicated type instead of
// a plain string prevents collisions with other packages storing values in
// the same context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key under which the authenticated user identifier is
// stored in a request context. Use GetUserIDFromContext for type-safe
// retrieval.
var UserIDCtxKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated user identifier from the
// context. The second return value reports whether the value was present and
// had the expected int64 type.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
