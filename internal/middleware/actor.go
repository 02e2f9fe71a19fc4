package middleware

import (
	"net/http"
	"strings"

	"github.com/2beens/coachdesk/internal/apierror"
)

// Actor resolves the acting athlete from X-Actor-ID, falling back to
// defaultActorID. Requests without any actor are rejected.
func Actor(defaultActorID string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actorID := strings.TrimSpace(r.Header.Get(HeaderActorID))
			if actorID == "" {
				actorID = defaultActorID
			}
			if actorID == "" {
				apierror.Write(w, CorrelationIDFrom(r.Context()),
					apierror.Unauthenticated("UNAUTHENTICATED", "Missing actor identity."))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithActorID(r.Context(), actorID)))
		})
	}
}
