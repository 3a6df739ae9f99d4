// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Deadmanswitch/encryption/internal/adapter"
	"github.com/Deadmanswitch/encryption/internal/crypto"
	"github.com/Deadmanswitch/encryption/internal/logger"
	"github.com/Deadmanswitch/encryption/internal/store"
	"github.com/Deadmanswitch/encryption/internal/utils"
	"github.com/Deadmanswitch/encryption/models"
)

// frameSize is the plaintext frame length in bytes. Each frame is enciphered
// independently under the item key and salt, so a payload can be recovered
// frame by frame without holding the whole ciphertext in memory.
const frameSize = 4096

// ErrRecoveredSizeMismatch is returned when the deciphered payload length
// does not match the size recorded in the item descriptor.
var ErrRecoveredSizeMismatch = errors.New("recovered payload size mismatch")

// clientProtectService implements ClientProtectService. Encryption happens
// locally; the server only ever sees the descriptor and opaque ciphertext
// frames. Frames go through the local outbox so an offline protect call
// still succeeds and uploads later.
type clientProtectService struct {
	serverAdapter adapter.ServerAdapter
	outbox        store.OutboxRepository
	keyBox        crypto.KeyBoxService
	streamCipher  crypto.StreamCipherService
	uuidGenerator *utils.UUIDGenerator
	logger        *logger.Logger
}

// NewClientProtectService constructs a ClientProtectService.
func NewClientProtectService(
	serverAdapter adapter.ServerAdapter,
	outbox store.OutboxRepository,
	keyBox crypto.KeyBoxService,
	streamCipher crypto.StreamCipherService,
	logger *logger.Logger,
) ClientProtectService {
	return &clientProtectService{
		serverAdapter: serverAdapter,
		outbox:        outbox,
		keyBox:        keyBox,
		streamCipher:  streamCipher,
		uuidGenerator: utils.NewUUIDGenerator(),
		logger:        logger,
	}
}

// Protect encrypts payload under password and registers the result.
//
// A fresh salt is generated per item; reusing one across payloads under the
// same password voids the CBC security model. The fingerprint stored in the
// descriptor lets Recover reject a wrong password before downloading any
// ciphertext.
func (c *clientProtectService) Protect(ctx context.Context, name, contentType, password string, payload []byte) (models.ProtectedItem, error) {
	log := logger.FromContext(ctx)

	if password == "" || name == "" {
		return models.ProtectedItem{}, ErrInvalidDataProvided
	}

	salt, err := generateSalt(ctx, c.keyBox, c.serverAdapter)
	if err != nil {
		log.Err(err).Str("name", name).Msg("item salt generation failed")
		return models.ProtectedItem{}, fmt.Errorf("item salt generation failed: %w", err)
	}

	key, err := c.keyBox.DeriveKey(password, salt)
	if err != nil {
		return models.ProtectedItem{}, fmt.Errorf("key derivation failed: %w", err)
	}

	fingerprint, err := c.keyBox.Fingerprint(password, salt)
	if err != nil {
		return models.ProtectedItem{}, fmt.Errorf("fingerprint derivation failed: %w", err)
	}

	itemID := c.uuidGenerator.Generate()
	chunks, err := c.encipherFrames(itemID, key, salt, payload)
	if err != nil {
		log.Err(err).Str("item_id", itemID).Msg("payload encryption failed")
		return models.ProtectedItem{}, fmt.Errorf("payload encryption failed: %w", err)
	}

	item := models.ProtectedItem{
		ID:          itemID,
		Name:        name,
		ContentType: contentType,
		Salt:        salt,
		Fingerprint: fingerprint,
		Size:        int64(len(payload)),
		ChunkCount:  len(chunks),
	}

	registered, err := c.serverAdapter.CreateItem(ctx, item)
	if err != nil {
		log.Err(err).Str("item_id", itemID).Msg("item registration failed")
		return models.ProtectedItem{}, fmt.Errorf("item registration failed: %w", err)
	}

	if err = c.outbox.Enqueue(ctx, chunks); err != nil {
		log.Err(err).Str("item_id", itemID).Msg("failed to enqueue cipher chunks")
		return models.ProtectedItem{}, fmt.Errorf("failed to enqueue cipher chunks: %w", err)
	}

	log.Info().
		Str("item_id", itemID).
		Int("chunks", len(chunks)).
		Msg("payload protected and queued for upload")

	return registered, nil
}

// Recover deciphers a protected item back into its original payload.
//
// The password is checked against the stored fingerprint first; this costs
// two local derivations and saves downloading ciphertext that could never be
// deciphered. A fingerprint match does not bypass the authenticity check:
// tampered frames still surface crypto.ErrCorruptCiphertext.
func (c *clientProtectService) Recover(ctx context.Context, itemID, password string) ([]byte, error) {
	log := logger.FromContext(ctx)

	if itemID == "" || password == "" {
		return nil, ErrInvalidDataProvided
	}

	item, err := c.serverAdapter.GetItem(ctx, itemID)
	if err != nil {
		log.Err(err).Str("item_id", itemID).Msg("item lookup failed")
		return nil, fmt.Errorf("item lookup failed: %w", err)
	}

	fingerprint, err := c.keyBox.Fingerprint(password, item.Salt)
	if err != nil {
		return nil, fmt.Errorf("fingerprint derivation failed: %w", err)
	}
	if fingerprint != item.Fingerprint {
		return nil, ErrWrongPassword
	}

	chunks, err := c.serverAdapter.DownloadChunks(ctx, itemID)
	if err != nil {
		log.Err(err).Str("item_id", itemID).Msg("chunk download failed")
		return nil, fmt.Errorf("chunk download failed: %w", err)
	}

	key, err := c.keyBox.DeriveKey(password, item.Salt)
	if err != nil {
		return nil, fmt.Errorf("key derivation failed: %w", err)
	}

	payload := make([]byte, 0, item.Size)
	for idx, chunk := range chunks {
		if chunk.Seq != idx {
			return nil, ErrChunkSequenceGap
		}

		plain, decErr := c.streamCipher.DecryptText(key, item.Salt, chunk.Data)
		if decErr != nil {
			log.Err(decErr).Str("item_id", itemID).Int("seq", chunk.Seq).Msg("frame decryption failed")
			return nil, fmt.Errorf("frame decryption failed: %w", decErr)
		}

		payload = append(payload, plain...)
	}

	if int64(len(payload)) != item.Size {
		log.Error().
			Str("item_id", itemID).
			Int64("expected", item.Size).
			Int("actual", len(payload)).
			Msg("recovered payload size mismatch")
		return nil, ErrRecoveredSizeMismatch
	}

	return payload, nil
}

// List fetches the caller's protected item descriptors.
func (c *clientProtectService) List(ctx context.Context, filter models.ItemListFilter) ([]models.ProtectedItem, error) {
	items, err := c.serverAdapter.ListItems(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("item listing failed: %w", err)
	}

	return items, nil
}

// encipherFrames splits payload into fixed-size plaintext frames and
// enciphers each one independently. An empty payload still yields one frame
// holding only the padding block, so every item has at least one chunk.
func (c *clientProtectService) encipherFrames(itemID, key, salt string, payload []byte) ([]models.CipherChunk, error) {
	frames := (len(payload) + frameSize - 1) / frameSize
	if frames == 0 {
		frames = 1
	}

	chunks := make([]models.CipherChunk, 0, frames)
	for seq := 0; seq < frames; seq++ {
		start := seq * frameSize
		end := start + frameSize
		if end > len(payload) {
			end = len(payload)
		}

		data, err := c.streamCipher.EncryptText(key, salt, string(payload[start:end]))
		if err != nil {
			return nil, err
		}

		chunks = append(chunks, models.CipherChunk{
			ItemID: itemID,
			Seq:    seq,
			Data:   data,
		})
	}

	return chunks, nil
}
