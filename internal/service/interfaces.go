package service

import (
	"context"

	"github.com/Deadmanswitch/encryption/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService handles account registration, fingerprint verification, and
// JWT token lifecycle. The server never sees a password; the client submits
// the account salt and the password fingerprint instead.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	AccountParams(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// VaultService manages protected item descriptors and their ciphertext
// frames, and exposes protocol salt generation for environments that cannot
// produce one locally.
type VaultService interface {
	GenerateSalt(ctx context.Context) (string, error)

	CreateItem(ctx context.Context, item models.ProtectedItem) (models.ProtectedItem, error)
	GetItem(ctx context.Context, userID int64, itemID string) (models.ProtectedItem, error)
	ListItems(ctx context.Context, userID int64, filter models.ItemListFilter) ([]models.ProtectedItem, error)

	UploadChunks(ctx context.Context, userID int64, request models.UploadChunksRequest) error
	DownloadChunks(ctx context.Context, userID int64, itemID string) ([]models.CipherChunk, error)
}
