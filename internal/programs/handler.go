package programs

import (
	"context"
	"errors"
	"net/http"

	"github.com/2beens/coachdesk/internal/apierror"
	"github.com/2beens/coachdesk/internal/db"
	"github.com/2beens/coachdesk/internal/middleware"
	"github.com/2beens/coachdesk/internal/telemetry/tracing"
	"github.com/2beens/coachdesk/pkg"

	"github.com/gorilla/mux"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=programs_test

type programsService interface {
	GetCurrent(ctx context.Context, athleteID string) (*Program, error)
}

type Handler struct {
	service programsService
}

func NewHandler(service programsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleGetCurrent(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.getCurrent")
	defer span.End()

	athleteID := mux.Vars(r)["athleteId"]
	if athleteID == "me" {
		athleteID = middleware.ActorIDFrom(ctx)
	}

	program, err := handler.service.GetCurrent(ctx, athleteID)
	correlationID := middleware.CorrelationIDFrom(ctx)
	switch {
	case errors.Is(err, ErrProgramNotFound):
		apierror.Write(w, correlationID, apierror.NotFound("PROGRAM_NOT_FOUND", "Active program not found."))
		return
	case db.IsTransient(err):
		apierror.Write(w, correlationID, apierror.Unavailable("DATABASE_UNAVAILABLE", err))
		return
	case err != nil:
		apierror.Write(w, correlationID, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, map[string]*Program{"program": program})
}
