// SPDX-License-Identifier: Apache-2.0

package http

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Deadmanswitch/encryption/internal/logger"
	"github.com/Deadmanswitch/encryption/internal/service"
	"github.com/Deadmanswitch/encryption/internal/utils"
	"github.com/Deadmanswitch/encryption/models"
)

// ─── Helpers ────────────────────────────────────────────────────────────────

func makeUploadBody(t *testing.T, chunks []models.CipherChunk, hash string) []byte {
	t.Helper()
	body, err := json.Marshal(struct {
		Chunks []models.CipherChunk `json:"chunks"`
		Hash   string               `json:"hash"`
	}{
		Chunks: chunks,
		Hash:   hash,
	})
	require.NoError(t, err)
	return body
}

func computeHash(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return hex.EncodeToString(utils.Hash(b))
}

func sampleChunks() []models.CipherChunk {
	return []models.CipherChunk{
		{ItemID: "id-1", Seq: 0, Data: "Y2lwaGVyMA=="},
		{ItemID: "id-1", Seq: 1, Data: "Y2lwaGVyMQ=="},
	}
}

func executeUploadHashing(t *testing.T, hashKey string, body []byte) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	h := NewHandler(&service.Services{}, hashKey, logger.Nop())

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		// the middleware must restore the body for the next handler
		var req models.UploadChunksRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/items/id-1/chunks", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.uploadHashing(next).ServeHTTP(rr, req)

	return rr, nextCalled
}

// ─── uploadHashing tests ────────────────────────────────────────────────────

func TestUploadHashing_TableTest(t *testing.T) {
	utils.InitHasherPool("test-secret-key")

	validChunks := sampleChunks()
	validHash := computeHash(t, validChunks)

	tests := []struct {
		name           string
		body           []byte
		expectedStatus int
		expectNext     bool
	}{
		{
			name:           "valid hash with chunks",
			body:           makeUploadBody(t, validChunks, validHash),
			expectedStatus: http.StatusCreated,
			expectNext:     true,
		},
		{
			name:           "wrong hash",
			body:           makeUploadBody(t, validChunks, "deadbeef"),
			expectedStatus: http.StatusBadRequest,
			expectNext:     false,
		},
		{
			name:           "missing hash",
			body:           makeUploadBody(t, validChunks, ""),
			expectedStatus: http.StatusBadRequest,
			expectNext:     false,
		},
		{
			name:           "invalid JSON",
			body:           []byte("{not json"),
			expectedStatus: http.StatusBadRequest,
			expectNext:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, nextCalled := executeUploadHashing(t, "test-secret-key", tt.body)
			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
		})
	}
}

func TestUploadHashing_SkippedWithoutKey(t *testing.T) {
	// no transport key configured: the body passes through unchecked
	body := makeUploadBody(t, sampleChunks(), "whatever")

	rr, nextCalled := executeUploadHashing(t, "", body)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.True(t, nextCalled)
}
