package models

// UploadChunksRequest carries a batch of ciphertext frames to the server.
// Hash is an HMAC-SHA256 signature over the frame payloads computed with the
// shared transport key; Length duplicates the frame count so the server can
// cheaply reject truncated bodies.
type UploadChunksRequest struct {
	ItemID string        `json:"item_id"`
	Chunks []CipherChunk `json:"chunks"`
	Length int           `json:"length"`
	Hash   string        `json:"hash,omitempty"`
}

// ItemListFilter narrows ListItems results. Zero values mean "no filter".
type ItemListFilter struct {
	ContentType string `json:"content_type,omitempty"`
	NamePrefix  string `json:"name_prefix,omitempty"`
}

// SaltResponse is the body of the server's salt-generation endpoint.
type SaltResponse struct {
	Salt string `json:"salt"`
}
