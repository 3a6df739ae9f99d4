package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Deadmanswitch/encryption/internal/config"
	"github.com/Deadmanswitch/encryption/internal/logger"
	"github.com/Deadmanswitch/encryption/models"
)

func newTestAdapter(t *testing.T, handler http.Handler) ServerAdapter {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Adapter{
		HTTPAddress:    srv.URL,
		RequestTimeout: 5 * time.Second,
	}

	a, err := NewHTTPServerAdapter(cfg, "test-hash-key", logger.Nop())
	require.NoError(t, err)
	return a
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"plain host and port", "localhost:8080", "http://localhost:8080", false},
		{"already has scheme", "https://vault.example.com/", "https://vault.example.com", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTTPServerAdapter_RegisterStoresToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var user models.User
		require.NoError(t, json.NewDecoder(r.Body).Decode(&user))
		assert.Equal(t, "alice", user.Login)

		w.Header().Set("Authorization", "Bearer issued-token")
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /api/salt", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer issued-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(models.SaltResponse{Salt: "AAAAAAAAAAAAAAAAAAAAAA=="})
	})

	a := newTestAdapter(t, mux)
	ctx := context.Background()

	_, err := a.Register(ctx, models.User{Login: "alice", Salt: "s", Fingerprint: "f"})
	require.NoError(t, err)

	// the token from registration must be attached to authorised calls
	salt, err := a.GenerateSalt(ctx)
	require.NoError(t, err)
	assert.Equal(t, "AAAAAAAAAAAAAAAAAAAAAA==", salt)
}

func TestHTTPServerAdapter_AccountParams(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/params", func(w http.ResponseWriter, r *http.Request) {
		var user models.User
		require.NoError(t, json.NewDecoder(r.Body).Decode(&user))
		assert.Equal(t, "alice", user.Login)

		json.NewEncoder(w).Encode(models.User{Login: "alice", Salt: "AAAAAAAAAAAAAAAAAAAAAA=="})
	})

	a := newTestAdapter(t, mux)

	params, err := a.AccountParams(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "AAAAAAAAAAAAAAAAAAAAAA==", params.Salt)
}

func TestHTTPServerAdapter_UploadChunksSetsLengthAndHash(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/items/id-1/chunks", func(w http.ResponseWriter, r *http.Request) {
		var req models.UploadChunksRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		assert.Equal(t, 2, req.Length)
		assert.NotEmpty(t, req.Hash)
		assert.Len(t, req.Chunks, 2)

		w.WriteHeader(http.StatusCreated)
	})

	a := newTestAdapter(t, mux)

	err := a.UploadChunks(context.Background(), models.UploadChunksRequest{
		ItemID: "id-1",
		Chunks: []models.CipherChunk{
			{ItemID: "id-1", Seq: 0, Data: "Y2lwaGVyMA=="},
			{ItemID: "id-1", Seq: 1, Data: "Y2lwaGVyMQ=="},
		},
	})
	require.NoError(t, err)
}

func TestHTTPServerAdapter_DownloadChunks(t *testing.T) {
	chunks := []models.CipherChunk{
		{ItemID: "id-1", Seq: 0, Data: "Y2lwaGVyMA=="},
		{ItemID: "id-1", Seq: 1, Data: "Y2lwaGVyMQ=="},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/items/id-1/chunks", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chunks)
	})

	a := newTestAdapter(t, mux)

	got, err := a.DownloadChunks(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, chunks, got)
}

func TestHTTPServerAdapter_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"conflict", http.StatusConflict, ErrConflict},
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"bad request", http.StatusBadRequest, ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, tt.name, tt.status)
			}))

			_, err := a.GetItem(context.Background(), "id-1")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHTTPServerAdapter_ListItemsPassesFilter(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/items", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/plain", r.URL.Query().Get("content_type"))
		assert.Equal(t, "note", r.URL.Query().Get("name_prefix"))
		json.NewEncoder(w).Encode([]models.ProtectedItem{{ID: "id-1"}})
	})

	a := newTestAdapter(t, mux)

	items, err := a.ListItems(context.Background(), models.ItemListFilter{
		ContentType: "text/plain",
		NamePrefix:  "note",
	})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
