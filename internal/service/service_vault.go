package service

import (
	"context"
	"fmt"

	"github.com/Deadmanswitch/encryption/internal/crypto"
	"github.com/Deadmanswitch/encryption/internal/logger"
	"github.com/Deadmanswitch/encryption/internal/store"
	"github.com/Deadmanswitch/encryption/models"
)

// vaultService is the concrete implementation of VaultService. It owns the
// server-side bookkeeping of protected items: descriptors, ciphertext
// frames, and protocol salt generation for thin environments.
//
// The service never decrypts anything. Frames pass through opaque; the only
// protocol-aware component here is the key box used for salt generation.
type vaultService struct {
	itemRepository store.ItemRepository
	keyBox         crypto.KeyBoxService
	logger         *logger.Logger
}

// NewVaultService constructs a VaultService over the given repository and
// key box.
func NewVaultService(itemRepository store.ItemRepository, keyBox crypto.KeyBoxService, logger *logger.Logger) VaultService {
	return &vaultService{
		itemRepository: itemRepository,
		keyBox:         keyBox,
		logger:         logger,
	}
}

// GenerateSalt produces a fresh protocol salt from the server's CSPRNG.
// Exposed so environments without a local random source still obtain salts
// with the exact protocol shape.
func (v *vaultService) GenerateSalt(ctx context.Context) (string, error) {
	log := logger.FromContext(ctx)

	salt, err := v.keyBox.GenerateSalt()
	if err != nil {
		log.Err(err).Str("func", "vaultService.GenerateSalt").Msg("salt generation failed")
		return "", fmt.Errorf("salt generation failed: %w", err)
	}

	return salt, nil
}

// CreateItem registers a protected item descriptor.
//
// Returns ErrInvalidDataProvided when the descriptor is missing its ID,
// salt, or fingerprint; otherwise delegates to the repository (which yields
// store.ErrItemAlreadyExists on an ID collision).
func (v *vaultService) CreateItem(ctx context.Context, item models.ProtectedItem) (models.ProtectedItem, error) {
	log := logger.FromContext(ctx)

	if item.ID == "" || item.Salt == "" || item.Fingerprint == "" {
		log.Error().
			Str("item_id", item.ID).
			Int64("user_id", item.UserID).
			Msg("invalid item descriptor provided")
		return models.ProtectedItem{}, ErrInvalidDataProvided
	}

	if item.ChunkCount < 0 || item.Size < 0 {
		return models.ProtectedItem{}, ErrInvalidDataProvided
	}

	created, err := v.itemRepository.CreateItem(ctx, item)
	if err != nil {
		log.Err(err).
			Str("item_id", item.ID).
			Int64("user_id", item.UserID).
			Msg("item registration ended with error")
		return models.ProtectedItem{}, fmt.Errorf("item registration ended with error: %w", err)
	}

	return created, nil
}

// GetItem retrieves a single protected item descriptor owned by userID.
func (v *vaultService) GetItem(ctx context.Context, userID int64, itemID string) (models.ProtectedItem, error) {
	if itemID == "" {
		return models.ProtectedItem{}, ErrInvalidDataProvided
	}

	item, err := v.itemRepository.GetItem(ctx, userID, itemID)
	if err != nil {
		return models.ProtectedItem{}, fmt.Errorf("item lookup failed: %w", err)
	}

	return item, nil
}

// ListItems retrieves the protected item descriptors matching the filter.
func (v *vaultService) ListItems(ctx context.Context, userID int64, filter models.ItemListFilter) ([]models.ProtectedItem, error) {
	items, err := v.itemRepository.ListItems(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("item listing failed: %w", err)
	}

	return items, nil
}

// UploadChunks persists a batch of ciphertext frames for an item owned by
// userID.
//
// Validation:
//   - The batch must be non-empty and belong to a single item.
//   - Length, when set, must match the actual frame count.
//
// Frame ordering inside the batch is not required; the repository stores
// each frame under its own sequence number.
func (v *vaultService) UploadChunks(ctx context.Context, userID int64, request models.UploadChunksRequest) error {
	log := logger.FromContext(ctx)

	if len(request.Chunks) == 0 {
		return ErrValidationNoChunksProvided
	}

	if request.Length != 0 && request.Length != len(request.Chunks) {
		log.Error().
			Str("item_id", request.ItemID).
			Int("declared", request.Length).
			Int("actual", len(request.Chunks)).
			Msg("chunk count mismatch in upload request")
		return ErrChunkCountMismatch
	}

	for _, chunk := range request.Chunks {
		if chunk.ItemID != request.ItemID || chunk.Data == "" || chunk.Seq < 0 {
			return ErrInvalidDataProvided
		}
	}

	if err := v.itemRepository.SaveChunks(ctx, userID, request.Chunks); err != nil {
		log.Err(err).
			Str("item_id", request.ItemID).
			Int64("user_id", userID).
			Int("count", len(request.Chunks)).
			Msg("chunk upload ended with error")
		return fmt.Errorf("chunk upload ended with error: %w", err)
	}

	return nil
}

// DownloadChunks retrieves every ciphertext frame of an item in sequence
// order and checks the result against the item descriptor: the frame count
// must match ChunkCount and the sequence must be contiguous from zero.
// A gap means a frame was never uploaded; recovering from a partial frame
// set would only yield ErrCorruptCiphertext at decryption time anyway.
func (v *vaultService) DownloadChunks(ctx context.Context, userID int64, itemID string) ([]models.CipherChunk, error) {
	log := logger.FromContext(ctx)

	item, err := v.itemRepository.GetItem(ctx, userID, itemID)
	if err != nil {
		return nil, fmt.Errorf("item lookup failed: %w", err)
	}

	chunks, err := v.itemRepository.GetChunks(ctx, userID, itemID)
	if err != nil {
		return nil, fmt.Errorf("chunk download ended with error: %w", err)
	}

	if len(chunks) != item.ChunkCount {
		log.Error().
			Str("item_id", itemID).
			Int("expected", item.ChunkCount).
			Int("actual", len(chunks)).
			Msg("stored chunk count does not match item descriptor")
		return nil, ErrChunkCountMismatch
	}

	for idx, chunk := range chunks {
		if chunk.Seq != idx {
			log.Error().
				Str("item_id", itemID).
				Int("expected_seq", idx).
				Int("actual_seq", chunk.Seq).
				Msg("chunk sequence gap detected")
			return nil, ErrChunkSequenceGap
		}
	}

	return chunks, nil
}
