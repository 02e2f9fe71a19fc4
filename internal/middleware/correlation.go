package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// CorrelationID takes the request id from X-Request-ID, or generates one,
// stores it in the request context and echoes it back.
func CorrelationID() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderRequestID)
			if id == "" || len(id) > 128 {
				id = uuid.NewString()
			}
			w.Header().Set(HeaderRequestID, id)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), correlationIDKey, id)))
		})
	}
}
