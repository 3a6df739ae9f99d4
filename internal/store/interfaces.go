package store

import (
	"context"

	"github.com/Deadmanswitch/encryption/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts and their public authentication
// material (account salt and password fingerprint).
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, user models.User) (models.User, error)
}

// ItemRepository persists protected item descriptors and their ciphertext
// frames.
type ItemRepository interface {
	CreateItem(ctx context.Context, item models.ProtectedItem) (models.ProtectedItem, error)
	GetItem(ctx context.Context, userID int64, itemID string) (models.ProtectedItem, error)
	ListItems(ctx context.Context, userID int64, filter models.ItemListFilter) ([]models.ProtectedItem, error)
	SaveChunks(ctx context.Context, userID int64, chunks []models.CipherChunk) error
	GetChunks(ctx context.Context, userID int64, itemID string) ([]models.CipherChunk, error)
}
