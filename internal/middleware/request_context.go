package middleware

import (
	"context"
	"net/http"
)

type ctxKey int

const (
	correlationIDKey ctxKey = iota
	actorIDKey
)

const (
	HeaderRequestID  = "X-Request-ID"
	HeaderActorID    = "X-Actor-ID"
	HeaderAdminToken = "X-Admin-Token"
)

// CorrelationIDFrom returns the correlation id stored by CorrelationID, or "".
func CorrelationIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

// ActorIDFrom returns the actor resolved by Actor, or "".
func ActorIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(actorIDKey).(string)
	return id
}

// WithActorID is used by tests and internal callers that bypass the middleware.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorIDKey, actorID)
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (r *responseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.statusCode = statusCode
}
