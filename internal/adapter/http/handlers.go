package http

import (
	"context"
	"log/slog"

	"github.com/shelfspace/shelfspace/internal/adapter/otel"
	"github.com/shelfspace/shelfspace/internal/config"
	"github.com/shelfspace/shelfspace/internal/service"
)

// Handlers bundles the services exposed over HTTP.
type Handlers struct {
	Auth    *service.AuthService
	Books   *service.BookService
	Tenants *service.TenantService
	Public  *service.PublicService

	// Ping checks database reachability for the health endpoint.
	Ping func(context.Context) error

	// Metrics is optional; counters are skipped when nil.
	Metrics *otel.Metrics

	Config *config.Config
	Log    *slog.Logger
}
