package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shelfspace/shelfspace/internal/domain/user"
	"github.com/shelfspace/shelfspace/internal/middleware"
	"github.com/shelfspace/shelfspace/internal/port/database"
)

// NewRouter assembles the full request pipeline: CORS, security headers,
// rate limiting, correlation IDs and request logging around the API routes.
// The auth endpoints sit behind a second, much tighter limiter.
func NewRouter(h *Handlers, store database.Store, apiLimiter, authLimiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	r.Use(CORS(h.Config.Server.CORSOrigins))
	r.Use(SecurityHeaders)
	r.Use(apiLimiter.Handler)
	r.Use(middleware.CorrelationID)
	r.Use(Logger(h.Log))

	MountRoutes(r, h, store, authLimiter)
	return r
}

// MountRoutes registers all API routes on the given chi router.
func MountRoutes(r chi.Router, h *Handlers, store database.Store, authLimiter *middleware.RateLimiter) {
	session := middleware.Session(h.Auth, store)

	r.Get("/health", h.HandleHealth)

	r.Route("/api/auth", func(r chi.Router) {
		r.Use(authLimiter.Handler)

		r.Post("/check-email", h.HandleCheckEmail)
		r.Post("/register", h.HandleRegister)
		r.Post("/login", h.HandleLogin)
		r.Post("/logout", h.HandleLogout)

		r.Group(func(r chi.Router) {
			r.Use(session)
			r.Get("/me", h.HandleGetMe)
			r.Put("/profile", h.HandleUpdateProfile)
		})
	})

	r.Route("/api/books", func(r chi.Router) {
		r.Use(session)
		r.Get("/", h.HandleListBooks)
		r.Post("/", h.HandleCreateBook)
		r.Put("/{id}", h.HandleUpdateBook)
		r.Delete("/{id}", h.HandleDeleteBook)
	})

	r.Route("/api/tenants", func(r chi.Router) {
		r.Use(session, middleware.RequireRole(user.RoleAdmin))
		r.Put("/settings", h.HandleUpdateTenantSettings)
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/store/{slug}", h.HandleGetStorefront)
		r.Get("/stores", h.HandleListStores)
	})

	r.With(session).Post("/api/upload", h.HandleUpload)

	// Uploaded images are public; the random names are not guessable.
	uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.Config.Upload.Dir)))
	r.Get("/uploads/*", uploads.ServeHTTP)
}
