package http

import (
	"net/http"

	"github.com/beezetrack/beezetrack-server/internal/utils"
)

// health is the liveness probe used by deploy tooling.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, healthResponse{Status: "alive"}, http.StatusOK)
}
