package http

import (
	"net/http"

	"github.com/Deadmanswitch/encryption/internal/logger"
	"github.com/Deadmanswitch/encryption/internal/utils"
	"github.com/Deadmanswitch/encryption/models"
)

// generateSalt serves protocol salts to environments that lack a local
// random source. The salt is not persisted server-side; the client submits
// it back inside the item descriptor or registration payload.
func (h *Handler) generateSalt(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	salt, err := h.services.VaultService.GenerateSalt(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.generateSalt").Msg("salt generation failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.SaltResponse{Salt: salt}, http.StatusOK)
}
