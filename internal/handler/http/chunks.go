package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Deadmanswitch/encryption/internal/logger"
	"github.com/Deadmanswitch/encryption/internal/utils"
	"github.com/Deadmanswitch/encryption/models"
)

func (h *Handler) uploadChunks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request models.UploadChunksRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.uploadChunks").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	// the URL is authoritative for the item the frames belong to
	request.ItemID = chi.URLParam(r, "id")

	if err := h.services.VaultService.UploadChunks(ctx, userID, request); err != nil {
		log.Err(err).Str("func", "*Handler.uploadChunks").
			Str("item_id", request.ItemID).
			Int("count", len(request.Chunks)).
			Msg("error uploading chunks")
		http.Error(w, "error uploading chunks", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) downloadChunks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	itemID := chi.URLParam(r, "id")
	chunks, err := h.services.VaultService.DownloadChunks(ctx, userID, itemID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.downloadChunks").Str("item_id", itemID).Msg("error downloading chunks")
		http.Error(w, "error downloading chunks", statusFromError(err))
		return
	}

	utils.WriteJSON(w, chunks, http.StatusOK)
}
