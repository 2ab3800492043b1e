package http

import (
	"net/http"
)

// HandleGetStorefront serves a store's public profile and catalog by slug.
func (h *Handlers) HandleGetStorefront(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Public.StorefrontBySlug(r.Context(), urlParam(r, "slug"))
	if err != nil {
		writeDomainError(w, err, "Store not found")
		return
	}
	if h.Metrics != nil {
		h.Metrics.StorefrontViews.Add(r.Context(), 1)
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleListStores serves the public directory of all stores.
func (h *Handlers) HandleListStores(w http.ResponseWriter, r *http.Request) {
	listings, err := h.Public.ListStores(r.Context())
	if err != nil {
		writeDomainError(w, err, "Store not found")
		return
	}
	writeJSON(w, http.StatusOK, listings)
}
