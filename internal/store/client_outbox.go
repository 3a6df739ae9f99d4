package store

import (
	"context"
	"fmt"

	"github.com/Deadmanswitch/encryption/internal/logger"
	"github.com/Deadmanswitch/encryption/models"
)

type outboxRepository struct {
	*DB
	logger *logger.Logger
}

// NewOutboxRepository constructs an [OutboxRepository] backed by the local
// sqlite connection.
func NewOutboxRepository(db *DB, logger *logger.Logger) OutboxRepository {
	return &outboxRepository{
		DB:     db,
		logger: logger,
	}
}

// Enqueue stores a batch of ciphertext frames in the upload queue inside a
// single transaction, so a partially protected item never leaks into the
// uploader.
func (o *outboxRepository) Enqueue(ctx context.Context, chunks []models.CipherChunk) error {
	log := logger.FromContext(ctx)

	if len(chunks) == 0 {
		return nil
	}

	tx, err := o.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "outboxRepository.Enqueue").
			Int("count", len(chunks)).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, chunk := range chunks {
		if _, err = tx.ExecContext(ctx, enqueueChunk, chunk.ItemID, chunk.Seq, chunk.Data); err != nil {
			log.Err(err).
				Str("func", "outboxRepository.Enqueue").
				Str("item_id", chunk.ItemID).
				Int("seq", chunk.Seq).
				Msg("failed to enqueue cipher chunk")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "outboxRepository.Enqueue").
			Int("count", len(chunks)).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}

// Pending returns up to limit not-yet-uploaded frames in enqueue order.
func (o *outboxRepository) Pending(ctx context.Context, limit int) ([]models.OutboxChunk, error) {
	log := logger.FromContext(ctx)

	rows, err := o.DB.QueryContext(ctx, selectPendingChunks, limit)
	if err != nil {
		log.Err(err).
			Str("func", "outboxRepository.Pending").
			Msg("failed to query pending chunks")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var pending []models.OutboxChunk

	for rows.Next() {
		var chunk models.OutboxChunk

		if scanErr := rows.Scan(&chunk.ID, &chunk.ItemID, &chunk.Seq, &chunk.Data, &chunk.CreatedAt); scanErr != nil {
			log.Err(scanErr).
				Str("func", "outboxRepository.Pending").
				Msg("failed to scan outbox row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		pending = append(pending, chunk)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "outboxRepository.Pending").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return pending, nil
}

// MarkUploaded flags the given queue rows as delivered. Rows are kept rather
// than deleted so a device can audit what it has pushed.
func (o *outboxRepository) MarkUploaded(ctx context.Context, ids []int64) error {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		return nil
	}

	tx, err := o.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "outboxRepository.MarkUploaded").
			Int("count", len(ids)).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, id := range ids {
		if _, err = tx.ExecContext(ctx, markChunkUploaded, id); err != nil {
			log.Err(err).
				Str("func", "outboxRepository.MarkUploaded").
				Int64("id", id).
				Msg("failed to mark chunk uploaded")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "outboxRepository.MarkUploaded").
			Int("count", len(ids)).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}
