package models

import "time"

// User represents an account entity used for authentication.
//
// The server never sees a password: the client derives Fingerprint from the
// password and the account Salt, and only those two values are transmitted
// and stored. A fingerprint is safe to persist because walking it back to
// the encryption key requires inverting the key-derivation function.
type User struct {
	// UserID is the internal unique identifier of the user.
	// Assigned by the server at registration time.
	UserID int64 `json:"-"`

	// Login is the unique user login identifier.
	Login string `json:"login"`

	// Name is the display name of the user. Non-sensitive.
	Name string `json:"name"`

	// Salt is the base64-encoded 16-byte account salt. Generated once at
	// registration and stored openly; it is not a secret.
	Salt string `json:"salt"`

	// Fingerprint is the base64-encoded second-layer derivation of the
	// account password. Stored by the server and compared at login.
	Fingerprint string `json:"fingerprint"`

	// Password is the plaintext account password, present only in client
	// memory. Never serialized, never logged.
	Password string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table associated with the
// User model.
func (u User) TableName() string {
	return "users"
}
