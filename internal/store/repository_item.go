package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/Deadmanswitch/encryption/internal/logger"
	"github.com/Deadmanswitch/encryption/models"
)

// itemRepository is the PostgreSQL-backed implementation of [ItemRepository].
// It persists protected item descriptors in the "items" table and their
// ciphertext frames in the "chunks" table.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (user_id, item_id, frame sequence).
type itemRepository struct {
	*DB
	logger *logger.Logger
}

// NewItemRepository constructs an [ItemRepository] backed by the provided
// database connection and logger.
func NewItemRepository(db *DB, logger *logger.Logger) ItemRepository {
	return &itemRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateItem registers a new protected item descriptor. The descriptor
// carries only public material: the per-item salt, the password fingerprint,
// and payload metadata. On success the server-assigned CreatedAt timestamp
// is filled in.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) yields [ErrItemAlreadyExists].
//   - Any other driver-level error is wrapped with [ErrExecutingQuery].
func (p *itemRepository) CreateItem(ctx context.Context, item models.ProtectedItem) (models.ProtectedItem, error) {
	log := logger.FromContext(ctx)

	err := p.DB.QueryRowContext(ctx, insertItem,
		item.ID,
		item.UserID,
		item.Name,
		item.ContentType,
		item.Salt,
		item.Fingerprint,
		item.Size,
		item.ChunkCount,
	).Scan(&item.CreatedAt)

	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.ProtectedItem{}, ErrItemAlreadyExists
		}

		log.Err(err).
			Str("func", "itemRepository.CreateItem").
			Str("item_id", item.ID).
			Int64("user_id", item.UserID).
			Msg("failed to register protected item")
		return models.ProtectedItem{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return item, nil
}

// GetItem retrieves a single protected item descriptor owned by the given
// user. Returns [ErrItemNotFound] when no such item exists.
func (p *itemRepository) GetItem(ctx context.Context, userID int64, itemID string) (models.ProtectedItem, error) {
	log := logger.FromContext(ctx)

	var item models.ProtectedItem
	err := p.DB.QueryRowContext(ctx, getItem, userID, itemID).Scan(
		&item.ID,
		&item.UserID,
		&item.Name,
		&item.ContentType,
		&item.Salt,
		&item.Fingerprint,
		&item.Size,
		&item.ChunkCount,
		&item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ProtectedItem{}, ErrItemNotFound
		}

		log.Err(err).
			Str("func", "itemRepository.GetItem").
			Str("item_id", itemID).
			Int64("user_id", userID).
			Msg("failed to query protected item")
		return models.ProtectedItem{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return item, nil
}

// ListItems retrieves the protected item descriptors matching the filter.
// Filtering is always applied by UserID; content type and name prefix
// narrow the result when set.
//
// Returns an empty slice when no records match.
func (p *itemRepository) ListItems(ctx context.Context, userID int64, filter models.ItemListFilter) ([]models.ProtectedItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListItemsQuery(userID, filter)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.ListItems").
			Int64("user_id", userID).
			Msg("failed to create query")
		return nil, err
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.ListItems").
			Int64("user_id", userID).
			Msg("failed to execute query for listing protected items")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.ProtectedItem, 0, 50)

	for rows.Next() {
		var item models.ProtectedItem

		scanErr := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Name,
			&item.ContentType,
			&item.Salt,
			&item.Fingerprint,
			&item.Size,
			&item.ChunkCount,
			&item.CreatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "itemRepository.ListItems").
				Int64("user_id", userID).
				Msg("failed to scan protected item row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		results = append(results, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "itemRepository.ListItems").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// SaveChunks persists a batch of ciphertext frames inside a single database
// transaction using a prepared statement.
//
// The INSERT joins through the "items" table so a frame can only be stored
// against an item the user actually owns; a frame targeting a foreign or
// missing item yields [ErrItemNotFound]. Duplicate (item_id, seq) pairs
// yield [ErrChunkAlreadyExists].
//
// The transaction is rolled back automatically (via defer) if any individual
// insert fails; the commit is attempted only after all frames succeed.
func (p *itemRepository) SaveChunks(ctx context.Context, userID int64, chunks []models.CipherChunk) error {
	log := logger.FromContext(ctx)

	if len(chunks) == 0 {
		log.Warn().
			Str("func", "itemRepository.SaveChunks").
			Int64("user_id", userID).
			Msg("no chunks provided")
		return nil
	}

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.SaveChunks").
			Int("count", len(chunks)).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertChunk)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.SaveChunks").
			Int("count", len(chunks)).
			Msg("failed to prepare statement")
		return fmt.Errorf("%w: %w", ErrPreparingStatement, err)
	}
	defer stmt.Close()

	for idx, chunk := range chunks {
		log.Debug().
			Str("func", "itemRepository.SaveChunks").
			Int("iteration", idx+1).
			Int("total", len(chunks)).
			Str("item_id", chunk.ItemID).
			Int("seq", chunk.Seq).
			Msg("saving cipher chunk in transaction")

		var itemID string
		queryErr := stmt.QueryRowContext(ctx, userID, chunk.ItemID, chunk.Seq, chunk.Data).Scan(&itemID)
		if queryErr != nil {
			if errors.Is(queryErr, sql.ErrNoRows) {
				return ErrItemNotFound
			}
			if postgresError(queryErr) == pgerrcode.UniqueViolation {
				return ErrChunkAlreadyExists
			}

			retryable := p.errorClassificator.Classify(queryErr) == Retryable
			log.Err(queryErr).
				Str("func", "itemRepository.SaveChunks").
				Int("iteration", idx+1).
				Str("item_id", chunk.ItemID).
				Bool("retryable", retryable).
				Msg("failed to execute prepared statement")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, queryErr)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "itemRepository.SaveChunks").
			Int("count", len(chunks)).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	log.Info().
		Str("func", "itemRepository.SaveChunks").
		Int64("user_id", userID).
		Int("count", len(chunks)).
		Msg("successfully saved cipher chunks")

	return nil
}

// GetChunks retrieves every ciphertext frame of the given item in sequence
// order. Ownership is enforced through the join with the "items" table.
//
// Returns an empty slice when the item has no uploaded frames yet.
func (p *itemRepository) GetChunks(ctx context.Context, userID int64, itemID string) ([]models.CipherChunk, error) {
	log := logger.FromContext(ctx)

	rows, err := p.DB.QueryContext(ctx, getChunks, userID, itemID)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.GetChunks").
			Str("item_id", itemID).
			Int64("user_id", userID).
			Msg("failed to execute query for getting cipher chunks")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	chunks := make([]models.CipherChunk, 0, 50)

	for rows.Next() {
		var chunk models.CipherChunk

		if scanErr := rows.Scan(&chunk.ItemID, &chunk.Seq, &chunk.Data); scanErr != nil {
			log.Err(scanErr).
				Str("func", "itemRepository.GetChunks").
				Str("item_id", itemID).
				Msg("failed to scan cipher chunk row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		chunks = append(chunks, chunk)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "itemRepository.GetChunks").
			Str("item_id", itemID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return chunks, nil
}
