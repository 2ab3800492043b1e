package http

import (
	"net/http"
	"strconv"

	"github.com/shelfspace/shelfspace/internal/domain/book"
	"github.com/shelfspace/shelfspace/internal/middleware"
)

// HandleListBooks returns one page of the caller's catalog.
func (h *Handlers) HandleListBooks(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	t := middleware.TenantFromContext(r.Context())

	result, err := h.Books.List(r.Context(), t.ID, page)
	if err != nil {
		writeDomainError(w, err, "book not found")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleCreateBook adds a book to the caller's catalog. Ownership comes
// from the session tenant; anything the body claims is ignored.
func (h *Handlers) HandleCreateBook(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[book.CreateRequest](w, r)
	if !ok {
		return
	}

	t := middleware.TenantFromContext(r.Context())
	b, err := h.Books.Create(r.Context(), t.ID, &req)
	if err != nil {
		writeDomainError(w, err, "book not found")
		return
	}
	if h.Metrics != nil {
		h.Metrics.BooksCreated.Add(r.Context(), 1)
	}
	writeJSON(w, http.StatusCreated, b)
}

// HandleUpdateBook updates a book the caller's tenant owns.
func (h *Handlers) HandleUpdateBook(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[book.UpdateRequest](w, r)
	if !ok {
		return
	}

	t := middleware.TenantFromContext(r.Context())
	b, err := h.Books.Update(r.Context(), t.ID, urlParam(r, "id"), &req)
	if err != nil {
		writeDomainError(w, err, "book not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// HandleDeleteBook removes a book the caller's tenant owns.
func (h *Handlers) HandleDeleteBook(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFromContext(r.Context())
	if err := h.Books.Delete(r.Context(), t.ID, urlParam(r, "id")); err != nil {
		writeDomainError(w, err, "book not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Book removed"})
}
