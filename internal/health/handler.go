package health

import (
	"context"
	"net/http"
	"strconv"

	"github.com/2beens/coachdesk/internal/apierror"
	"github.com/2beens/coachdesk/internal/middleware"
	"github.com/2beens/coachdesk/internal/telemetry/tracing"
	"github.com/2beens/coachdesk/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=health_test

type healthService interface {
	CheckHealth(ctx context.Context) State
	CheckReadiness() State
	RecentEvents(ctx context.Context, limit int) ([]Event, error)
}

type connectionReloader interface {
	Reload(ctx context.Context) error
}

type Handler struct {
	service  healthService
	reloader connectionReloader
}

func NewHandler(service healthService, reloader connectionReloader) *Handler {
	return &Handler{
		service:  service,
		reloader: reloader,
	}
}

func (h *Handler) HandleDatabase(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.database")
	defer span.End()

	state := h.service.CheckHealth(ctx)
	status := http.StatusOK
	if state.Status == StatusFail {
		status = http.StatusServiceUnavailable
	}
	pkg.WriteJSON(w, status, map[string]State{"database": state})
}

func (h *Handler) HandleReady(w http.ResponseWriter, r *http.Request) {
	pkg.WriteJSON(w, http.StatusOK, map[string]State{"service": h.service.CheckReadiness()})
}

func (h *Handler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.events")
	defer span.End()

	correlationID := middleware.CorrelationIDFrom(ctx)
	limit := DefaultEventsLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l <= 0 || l > 500 {
			apierror.Write(w, correlationID, apierror.BadRequest("INVALID_LIMIT", "limit must be between 1 and 500"))
			return
		}
		limit = l
	}

	events, err := h.service.RecentEvents(ctx, limit)
	if err != nil {
		apierror.Write(w, correlationID, apierror.Unavailable("DATABASE_UNAVAILABLE", err))
		return
	}
	pkg.WriteJSON(w, http.StatusOK, map[string][]Event{"events": events})
}

func (h *Handler) HandleReload(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.reload")
	defer span.End()

	log.Warnf("database reload requested [%s]", middleware.CorrelationIDFrom(ctx))
	if err := h.reloader.Reload(ctx); err != nil {
		span.RecordError(err)
		apierror.Write(w, middleware.CorrelationIDFrom(ctx), apierror.Unavailable("DATABASE_UNAVAILABLE", err))
		return
	}
	pkg.WriteJSON(w, http.StatusOK, map[string]State{"database": h.service.CheckReadiness()})
}
