package models

import "time"

// ProtectedItem is the stored description of one encrypted payload: the
// salt it was protected under, the fingerprint that identifies the
// protecting password without revealing it, and enough metadata to
// reassemble the ciphertext frames on download.
//
// The item never carries a key. The key is re-derived on demand from the
// password and Salt, at both protection and recovery time.
type ProtectedItem struct {
	// ID is the client-assigned UUID of the item.
	ID string `json:"id"`

	// UserID is the owning account. Persistence-layer only.
	UserID int64 `json:"-"`

	// Name is a human-readable label for the item.
	Name string `json:"name"`

	// ContentType describes the payload (e.g. "text/plain",
	// "application/octet-stream"). Informational only.
	ContentType string `json:"content_type"`

	// Salt is the base64-encoded 16-byte salt/IV generated for this item.
	// Unique per item; reusing one across payloads under the same password
	// voids the CBC security model.
	Salt string `json:"salt"`

	// Fingerprint is the base64-encoded second-layer derivation of the
	// protecting password under Salt. Safe to store; used at recovery time
	// to reject a wrong password before any ciphertext is downloaded.
	Fingerprint string `json:"fingerprint"`

	// Size is the plaintext payload length in bytes.
	Size int64 `json:"size"`

	// ChunkCount is the number of ciphertext frames the payload was split
	// into. Frames are numbered 0..ChunkCount-1.
	ChunkCount int `json:"chunk_count"`

	// CreatedAt is the timestamp when the item was registered.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table associated with the
// ProtectedItem model.
func (i ProtectedItem) TableName() string {
	return "items"
}

// CipherChunk is one ciphertext frame of a protected item. The plaintext is
// framed into fixed-size chunks before encryption, each frame is enciphered
// independently under the item's key and salt and base64-encoded for the
// wire.
type CipherChunk struct {
	// ItemID is the owning protected item.
	ItemID string `json:"item_id"`

	// Seq is the zero-based position of this frame within the payload.
	Seq int `json:"seq"`

	// Data is the base64-encoded ciphertext of the frame.
	Data string `json:"data"`
}

// TableName returns the name of the database table associated with the
// CipherChunk model.
func (c CipherChunk) TableName() string {
	return "chunks"
}
