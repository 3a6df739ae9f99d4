// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"
	"time"

	"github.com/Deadmanswitch/encryption/internal/adapter"
	"github.com/Deadmanswitch/encryption/internal/logger"
	"github.com/Deadmanswitch/encryption/internal/store"
	"github.com/Deadmanswitch/encryption/models"
)

// pendingBatchLimit caps how many outbox rows a single drain pass picks up.
const pendingBatchLimit = 256

// UploadWorker drains the local outbox in the background: pending ciphertext
// frames are grouped per item, pushed to the server, and marked uploaded on
// success. A failed push leaves the rows pending, so the next tick retries
// them.
type UploadWorker struct {
	outbox        store.OutboxRepository
	serverAdapter adapter.ServerAdapter
	interval      time.Duration
	logger        *logger.Logger
}

// NewUploadWorker constructs an UploadWorker draining the outbox every
// interval.
func NewUploadWorker(outbox store.OutboxRepository, serverAdapter adapter.ServerAdapter, interval time.Duration, logger *logger.Logger) *UploadWorker {
	return &UploadWorker{
		outbox:        outbox,
		serverAdapter: serverAdapter,
		interval:      interval,
		logger:        logger,
	}
}

// Run starts the drain loop in a background goroutine and returns.
func (u *UploadWorker) Run() {
	go func() {
		ticker := time.NewTicker(u.interval)
		defer ticker.Stop()

		for range ticker.C {
			u.drainOnce(context.Background())
		}
	}()
}

// drainOnce performs a single drain pass over the outbox.
func (u *UploadWorker) drainOnce(ctx context.Context) {
	log := u.logger

	pending, err := u.outbox.Pending(ctx, pendingBatchLimit)
	if err != nil {
		log.Err(err).Str("func", "UploadWorker.drainOnce").Msg("failed to read pending chunks")
		return
	}
	if len(pending) == 0 {
		return
	}

	for itemID, batch := range groupByItem(pending) {
		request := models.UploadChunksRequest{
			ItemID: itemID,
			Chunks: make([]models.CipherChunk, 0, len(batch)),
		}
		ids := make([]int64, 0, len(batch))
		for _, chunk := range batch {
			request.Chunks = append(request.Chunks, models.CipherChunk{
				ItemID: chunk.ItemID,
				Seq:    chunk.Seq,
				Data:   chunk.Data,
			})
			ids = append(ids, chunk.ID)
		}

		if err = u.serverAdapter.UploadChunks(ctx, request); err != nil {
			// left pending, retried on the next tick
			log.Err(err).Str("func", "UploadWorker.drainOnce").
				Str("item_id", itemID).
				Int("count", len(batch)).
				Msg("chunk upload failed")
			continue
		}

		if err = u.outbox.MarkUploaded(ctx, ids); err != nil {
			log.Err(err).Str("func", "UploadWorker.drainOnce").
				Str("item_id", itemID).
				Msg("failed to mark chunks uploaded")
			continue
		}

		log.Info().
			Str("item_id", itemID).
			Int("count", len(batch)).
			Msg("outbox chunks uploaded")
	}
}

// groupByItem splits pending outbox rows into per-item batches, preserving
// the row order inside each batch.
func groupByItem(pending []models.OutboxChunk) map[string][]models.OutboxChunk {
	groups := make(map[string][]models.OutboxChunk)
	for _, chunk := range pending {
		groups[chunk.ItemID] = append(groups[chunk.ItemID], chunk)
	}
	return groups
}
