package middleware

import (
	"net/http"

	"github.com/2beens/coachdesk/internal/apierror"
	"github.com/2beens/coachdesk/internal/telemetry/tracing"
	"github.com/2beens/coachdesk/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

type AdminAuthHandler struct {
	tokenHash string
}

// NewAdminAuthHandler checks admin tokens against a bcrypt hash. An empty
// hash disables all admin routes.
func NewAdminAuthHandler(tokenHash string) *AdminAuthHandler {
	return &AdminAuthHandler{
		tokenHash: tokenHash,
	}
}

func (h *AdminAuthHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := tracing.GlobalTracer.Start(r.Context(), "middleware.adminAuth")
			defer span.End()

			correlationID := CorrelationIDFrom(r.Context())
			authToken := r.Header.Get(HeaderAdminToken)
			if authToken == "" || h.tokenHash == "" {
				log.Tracef("[missing token] [admin auth] unauthorized => %s", r.URL.Path)
				apierror.Write(w, correlationID, apierror.Unauthenticated("UNAUTHENTICATED", "Admin token required."))
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			if !pkg.CheckPasswordHash(authToken, h.tokenHash) {
				log.Warnf("[invalid token] [admin auth] unauthorized => %s from %s", r.URL.Path, pkg.ReadUserIP(r))
				apierror.Write(w, correlationID, apierror.Unauthenticated("UNAUTHENTICATED", "Invalid admin token."))
				span.SetStatus(codes.Error, "invalid-token")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}
