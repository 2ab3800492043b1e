package logger

import "context"

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// correlationIDKey is the context key for the request correlation ID.
var correlationIDKey = contextKey{}

// WithCorrelationID returns a new context with the given correlation ID stored.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationID extracts the correlation ID from the context.
// Returns an empty string if none is set.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

// tenantIDKey is the context key for the resolved tenant ID holder.
type tenantIDKey struct{}

// WithTenantHolder seeds the context with a mutable tenant ID slot. The
// request logger installs it before authentication runs; the session gate
// fills it in once the tenant is resolved, so the final log line can carry
// the tenant even though the gate runs further down the chain.
func WithTenantHolder(ctx context.Context) context.Context {
	return context.WithValue(ctx, tenantIDKey{}, new(string))
}

// SetTenantID records the resolved tenant ID in the holder, if one is present.
func SetTenantID(ctx context.Context, id string) {
	if p, ok := ctx.Value(tenantIDKey{}).(*string); ok {
		*p = id
	}
}

// TenantID returns the resolved tenant ID, or an empty string.
func TenantID(ctx context.Context) string {
	if p, ok := ctx.Value(tenantIDKey{}).(*string); ok {
		return *p
	}
	return ""
}
