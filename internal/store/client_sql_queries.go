// SPDX-License-Identifier: Apache-2.0

package store

const (
	enqueueChunk = `
		INSERT INTO outbox (item_id, seq, data)
		VALUES ($1, $2, $3);`

	selectPendingChunks = `
		SELECT id, item_id, seq, data, created_at
		FROM outbox
		WHERE uploaded = 0
		ORDER BY id
		LIMIT $1;`

	markChunkUploaded = `
		UPDATE outbox
		SET uploaded = 1
		WHERE id = $1;`
)
