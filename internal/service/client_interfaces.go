package service

import (
	"context"

	"github.com/Deadmanswitch/encryption/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientAuthService is the client-side contract for account registration and
// authentication. Implementations derive all protocol material (salt,
// fingerprint) locally; the password itself never leaves the process.
type ClientAuthService interface {
	// Register creates a new account on the server. It generates an account
	// salt, derives the password fingerprint, and submits only those public
	// values together with the login and display name.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates against the server. It fetches the account salt,
	// re-derives the fingerprint from the password, and exchanges it for a
	// session token retained by the adapter.
	Login(ctx context.Context, user models.User) (models.Token, error)
}

// ClientProtectService is the client-side contract for protecting and
// recovering payloads.
type ClientProtectService interface {
	// Protect encrypts payload under password: it generates a fresh item
	// salt, derives the key and fingerprint, frames the payload, enciphers
	// each frame independently, registers the item descriptor on the server,
	// and queues the ciphertext frames for background upload.
	Protect(ctx context.Context, name, contentType, password string, payload []byte) (models.ProtectedItem, error)

	// Recover fetches an item descriptor, verifies the password against the
	// stored fingerprint before downloading any ciphertext, then downloads
	// and deciphers the frames back into the original payload.
	Recover(ctx context.Context, itemID, password string) ([]byte, error)

	// List fetches the caller's item descriptors matching the filter.
	List(ctx context.Context, filter models.ItemListFilter) ([]models.ProtectedItem, error)
}
