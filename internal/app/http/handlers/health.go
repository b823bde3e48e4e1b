package handlers

import (
	"net/http"
	"time"
)

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"service":   "squeegee-samurai-api",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
