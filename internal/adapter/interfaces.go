package adapter

import (
	"context"

	"github.com/Deadmanswitch/encryption/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ServerAdapter is the client's view of the vault server API. Implementations
// manage the session token internally: Login stores it and every authorised
// call attaches it.
type ServerAdapter interface {
	// Register creates a new account. The user carries only public material
	// (login, name, account salt, password fingerprint).
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login exchanges login and fingerprint for a session token. The token is
	// retained by the adapter for subsequent calls.
	Login(ctx context.Context, user models.User) (models.Token, error)

	// AccountParams fetches the public account parameters (the account salt)
	// for a login, so the client can derive the fingerprint before Login.
	AccountParams(ctx context.Context, login string) (models.User, error)

	// GenerateSalt asks the server for a fresh protocol salt. Used by
	// environments that cannot produce one locally.
	GenerateSalt(ctx context.Context) (string, error)

	// CreateItem registers a protected item descriptor.
	CreateItem(ctx context.Context, item models.ProtectedItem) (models.ProtectedItem, error)

	// GetItem fetches a single protected item descriptor.
	GetItem(ctx context.Context, itemID string) (models.ProtectedItem, error)

	// ListItems fetches the item descriptors matching the filter.
	ListItems(ctx context.Context, filter models.ItemListFilter) ([]models.ProtectedItem, error)

	// UploadChunks pushes a batch of ciphertext frames for an item.
	UploadChunks(ctx context.Context, request models.UploadChunksRequest) error

	// DownloadChunks fetches every ciphertext frame of an item in sequence
	// order.
	DownloadChunks(ctx context.Context, itemID string) ([]models.CipherChunk, error)
}
