package store

import (
	"context"
	"fmt"

	"github.com/Deadmanswitch/encryption/internal/config"
	"github.com/Deadmanswitch/encryption/internal/logger"
)

// ClientStorages groups the client-side repositories into a single value
// that can be passed around the client service layer. Currently it holds
// only the upload outbox.
type ClientStorages struct {
	// OutboxRepository is the sqlite-backed queue of ciphertext frames
	// waiting to be pushed to the server.
	OutboxRepository OutboxRepository
}

// NewClientStorages initialises the client storage layer: it opens the
// sqlite connection (creating the file and schema when missing) and wires
// the outbox repository.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	return &ClientStorages{
		OutboxRepository: NewOutboxRepository(db, logger),
	}, nil
}
