package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "shelfspace"

// Metrics holds all Shelfspace metric instruments.
type Metrics struct {
	Registrations   metric.Int64Counter
	Logins          metric.Int64Counter
	BooksCreated    metric.Int64Counter
	StorefrontViews metric.Int64Counter
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.Registrations, err = meter.Int64Counter("shelfspace.registrations",
		metric.WithDescription("Number of accounts registered"))
	if err != nil {
		return nil, err
	}

	m.Logins, err = meter.Int64Counter("shelfspace.logins",
		metric.WithDescription("Number of successful logins"))
	if err != nil {
		return nil, err
	}

	m.BooksCreated, err = meter.Int64Counter("shelfspace.books.created",
		metric.WithDescription("Number of books added to catalogs"))
	if err != nil {
		return nil, err
	}

	m.StorefrontViews, err = meter.Int64Counter("shelfspace.storefront.views",
		metric.WithDescription("Number of public storefront reads"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
