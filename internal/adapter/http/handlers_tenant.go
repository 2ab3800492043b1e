package http

import (
	"net/http"

	"github.com/shelfspace/shelfspace/internal/domain/tenant"
	"github.com/shelfspace/shelfspace/internal/middleware"
)

// HandleUpdateTenantSettings updates the caller's own store branding and
// feature flags. The target tenant always comes from the session.
func (h *Handlers) HandleUpdateTenantSettings(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[tenant.UpdateRequest](w, r)
	if !ok {
		return
	}

	t := middleware.TenantFromContext(r.Context())
	updated, err := h.Tenants.UpdateSettings(r.Context(), t.ID, &req)
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
