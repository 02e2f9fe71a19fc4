package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/coachdesk/internal/apierror"
	"github.com/2beens/coachdesk/internal/db"
	"github.com/2beens/coachdesk/internal/middleware"
	"github.com/2beens/coachdesk/internal/telemetry/tracing"
	"github.com/2beens/coachdesk/pkg"
	"github.com/2beens/coachdesk/pkg/editor"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=sessions_test

const maxBodyBytes = 1 << 20

type sessionsService interface {
	Create(ctx context.Context, athleteID string, draft editor.Draft) (*editor.Draft, error)
	Update(ctx context.Context, athleteID, id string, draft editor.Draft) (*editor.Draft, error)
	UpdateStatus(ctx context.Context, athleteID, id string, status editor.Status) (*editor.Draft, error)
	Get(ctx context.Context, athleteID, id string) (*editor.Draft, error)
	List(ctx context.Context, params ListParams) ([]editor.Draft, error)
}

type completionAnalyzer interface {
	Completion(ctx context.Context, athleteID string, weeks int, now time.Time) (*MetricSnapshot, error)
}

type SessionResponse struct {
	Session *editor.Draft `json:"session"`
}

type SessionsListResponse struct {
	Sessions []editor.Draft `json:"sessions"`
}

type StatusUpdateRequest struct {
	Status editor.Status `json:"status"`
}

type Handler struct {
	service  sessionsService
	analyzer completionAnalyzer
	now      func() time.Time
}

func NewHandler(service sessionsService, analyzer completionAnalyzer) *Handler {
	return &Handler{
		service:  service,
		analyzer: analyzer,
		now:      time.Now,
	}
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.create")
	defer span.End()

	draft, err := decodeJSON[editor.Draft](w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	saved, err := handler.service.Create(ctx, middleware.ActorIDFrom(ctx), draft)
	if err != nil {
		span.RecordError(err)
		writeError(w, r, err)
		return
	}

	log.Debugf("new session added: %s", saved.ID)
	pkg.WriteJSON(w, http.StatusCreated, SessionResponse{Session: saved})
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.update")
	defer span.End()

	draft, err := decodeJSON[editor.Draft](w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	saved, err := handler.service.Update(ctx, middleware.ActorIDFrom(ctx), mux.Vars(r)["id"], draft)
	if err != nil {
		span.RecordError(err)
		writeError(w, r, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, SessionResponse{Session: saved})
}

func (handler *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.updateStatus")
	defer span.End()

	req, err := decodeJSON[StatusUpdateRequest](w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	saved, err := handler.service.UpdateStatus(ctx, middleware.ActorIDFrom(ctx), mux.Vars(r)["id"], req.Status)
	if err != nil {
		span.RecordError(err)
		writeError(w, r, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, SessionResponse{Session: saved})
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.get")
	defer span.End()

	s, err := handler.service.Get(ctx, middleware.ActorIDFrom(ctx), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, SessionResponse{Session: s})
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.list")
	defer span.End()

	params := ListParams{AthleteID: middleware.ActorIDFrom(ctx)}
	query := r.URL.Query()

	for name, target := range map[string]**time.Time{"start": &params.Start, "end": &params.End} {
		value := query.Get(name)
		if value == "" {
			continue
		}
		t, err := time.Parse(time.DateOnly, value)
		if err != nil {
			writeError(w, r, apierror.BadRequest("INVALID_QUERY", name+" must be formatted as YYYY-MM-DD"))
			return
		}
		*target = &t
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			writeError(w, r, apierror.BadRequest("INVALID_QUERY", "limit must be a positive number"))
			return
		}
		params.Limit = limit
	}

	list, err := handler.service.List(ctx, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, SessionsListResponse{Sessions: list})
}

func (handler *Handler) HandleCompletion(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.completion")
	defer span.End()

	weeks := DefaultCompletionWeeks
	if weeksStr := r.URL.Query().Get("weeks"); weeksStr != "" {
		w2, err := strconv.Atoi(weeksStr)
		if err != nil || w2 <= 0 || w2 > MaxCompletionWeeks {
			writeError(w, r, apierror.BadRequest("INVALID_QUERY", "weeks must be between 1 and "+strconv.Itoa(MaxCompletionWeeks)))
			return
		}
		weeks = w2
	}

	snapshot, err := handler.analyzer.Completion(ctx, middleware.ActorIDFrom(ctx), weeks, handler.now())
	if err != nil {
		writeError(w, r, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, map[string]*MetricSnapshot{"metrics": snapshot})
}

func decodeJSON[T any](w http.ResponseWriter, r *http.Request) (T, error) {
	var v T
	if !strings.HasPrefix(r.Header.Get("Content-Type"), pkg.ContentType.JSON) {
		return v, apierror.BadRequest("INVALID_CONTENT_TYPE", "invalid content type")
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		log.Debugf("unmarshal request body: %s", err)
		return v, apierror.BadRequest("INVALID_BODY", "request body is not valid JSON")
	}
	return v, nil
}

// writeError maps service errors to the API error envelope.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	correlationID := middleware.CorrelationIDFrom(r.Context())

	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		apiErr := apierror.BadRequest("INVALID_SESSION", "Session is not valid.")
		if validationErr.Reason != "" {
			apiErr.Message = "Session is not valid: " + validationErr.Reason + "."
		}
		apierror.Write(w, correlationID, apiErr.WithDetails(validationErr.Errors))
	case errors.Is(err, ErrSessionCodeTaken):
		apierror.Write(w, correlationID, apierror.BadRequest("SESSION_CODE_TAKEN", "Session code is already in use."))
	case errors.Is(err, ErrMicroCycleNotFound):
		apierror.Write(w, correlationID, apierror.NotFound("MICRO_CYCLE_NOT_FOUND", "Micro cycle not found."))
	case errors.Is(err, ErrSessionNotFound):
		apierror.Write(w, correlationID, apierror.NotFound("SESSION_NOT_FOUND", "Session not found."))
	case db.IsTransient(err):
		apierror.Write(w, correlationID, apierror.Unavailable("DATABASE_UNAVAILABLE", err))
	default:
		apierror.Write(w, correlationID, err)
	}
}
