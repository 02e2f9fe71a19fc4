package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/2beens/coachdesk/internal/apierror"
	"github.com/2beens/coachdesk/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(respWriter http.ResponseWriter, req *http.Request) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if err, ok := r.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(r)
				}

				log.Errorf("http: panic serving %s: %v\n%s", req.URL.Path, r, debug.Stack())
				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				apierror.Write(respWriter, CorrelationIDFrom(req.Context()), apierror.Internal(fmt.Errorf("panic: %v", r)))
			}()

			// handler call
			next.ServeHTTP(respWriter, req)
		})
	}
}
