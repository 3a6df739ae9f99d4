package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Deadmanswitch/encryption/internal/logger"
	"github.com/Deadmanswitch/encryption/internal/utils"
	"github.com/Deadmanswitch/encryption/models"
)

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.createItem").Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var item models.ProtectedItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		log.Err(err).Str("func", "*Handler.createItem").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	item.UserID = userID

	created, err := h.services.VaultService.CreateItem(ctx, item)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createItem").Str("item_id", item.ID).Msg("error registering item")
		http.Error(w, "error registering item", statusFromError(err))
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	itemID := chi.URLParam(r, "id")
	item, err := h.services.VaultService.GetItem(ctx, userID, itemID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getItem").Str("item_id", itemID).Msg("error fetching item")
		http.Error(w, "error fetching item", statusFromError(err))
		return
	}

	utils.WriteJSON(w, item, http.StatusOK)
}

// listItems returns the caller's item descriptors. Optional filters come as
// query parameters: content_type narrows by payload type, name_prefix by the
// start of the item name.
func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	filter := models.ItemListFilter{
		ContentType: r.URL.Query().Get("content_type"),
		NamePrefix:  r.URL.Query().Get("name_prefix"),
	}

	items, err := h.services.VaultService.ListItems(ctx, userID, filter)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listItems").Msg("error listing items")
		http.Error(w, "error listing items", statusFromError(err))
		return
	}

	utils.WriteJSON(w, items, http.StatusOK)
}
