package models

import "time"

// OutboxChunk is one ciphertext frame queued on the client for upload. The
// client encrypts locally first and uploads in the background, so a network
// outage never loses protected data.
type OutboxChunk struct {
	// ID is the local autoincrement identifier of the queue row.
	ID int64 `json:"id"`

	// ItemID is the protected item the frame belongs to.
	ItemID string `json:"item_id"`

	// Seq is the zero-based frame position within the item payload.
	Seq int `json:"seq"`

	// Data is the base64-encoded ciphertext of the frame.
	Data string `json:"data"`

	// CreatedAt is when the frame was enqueued.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the local database table associated with
// the OutboxChunk model.
func (o OutboxChunk) TableName() string {
	return "outbox"
}
