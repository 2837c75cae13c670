package handlers

import (
	"net/http"

	"github.com/tevino/abool"
)

// Health provides a minimal liveness check endpoint.
func Health(w http.ResponseWriter, r *http.Request) {
	res := map[string]string{"status": "ok"}
	writeJSON(w, r, http.StatusOK, res)
}

// ReadyHandler reports readiness once the flight network has been loaded.
type ReadyHandler struct {
	Flag *abool.AtomicBool
}

func (h *ReadyHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.Flag == nil || !h.Flag.IsSet() {
		writeError(w, r, http.StatusServiceUnavailable, "flight network not loaded")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
}
