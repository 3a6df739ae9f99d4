// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// hasherPool holds reusable HMAC-SHA256 instances keyed with the transport
// integrity key. Must be initialized via InitHasherPool before Hash is used.
var hasherPool sync.Pool

// InitHasherPool initializes the package-level pool of HMAC-SHA256 hashers,
// each configured with the given key. Pooling avoids re-allocating hash
// state on every request body signature.
func InitHasherPool(hashKey string) {
	hasherPool = sync.Pool{
		New: func() any {
			return hmac.New(sha256.New, []byte(hashKey))
		},
	}
}

// Hash computes an HMAC-SHA256 digest over data using a hasher taken from
// the pool. The hasher is reset before and after use and returned to the
// pool.
func Hash(data []byte) []byte {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return sum
}

// HashString computes an HMAC-SHA256 digest over data using the given key
// and returns it hex-encoded. Unlike Hash it does not touch the pool, so it
// is safe to call before InitHasherPool.
func HashString(data string, hashKey string) string {
	return hex.EncodeToString(hashString([]byte(data), hashKey))
}

func hashString(data []byte, hashKey string) []byte {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write(data)
	return hasher.Sum(nil)
}
