package http

import (
	"net/http"
)

// HandleHealth reports service liveness and database reachability.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{
		"status":   "ok",
		"postgres": "ok",
	}
	code := http.StatusOK
	if h.Ping != nil {
		if err := h.Ping(r.Context()); err != nil {
			status["status"] = "degraded"
			status["postgres"] = "unreachable"
			code = http.StatusServiceUnavailable
		}
	}
	writeJSON(w, code, status)
}
