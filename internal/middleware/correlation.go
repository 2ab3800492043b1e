// Package middleware provides the HTTP request pipeline for Shelfspace.
package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/shelfspace/shelfspace/internal/logger"
)

const headerCorrelationID = "X-Correlation-ID"

// CorrelationID is HTTP middleware that extracts X-Correlation-ID from the
// request header or generates a new one. The ID is stored in the context and
// echoed on the response header.
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerCorrelationID)
		if id == "" {
			id = uuid.NewString()
		}

		ctx := logger.WithCorrelationID(r.Context(), id)
		w.Header().Set(headerCorrelationID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
