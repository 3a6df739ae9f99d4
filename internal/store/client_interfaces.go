package store

import (
	"context"

	"github.com/Deadmanswitch/encryption/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// OutboxRepository is the local queue of ciphertext frames awaiting upload.
// Frames are enqueued by the protect flow and drained by the background
// upload worker.
type OutboxRepository interface {
	Enqueue(ctx context.Context, chunks []models.CipherChunk) error
	Pending(ctx context.Context, limit int) ([]models.OutboxChunk, error)
	MarkUploaded(ctx context.Context, ids []int64) error
}
