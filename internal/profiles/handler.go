package profiles

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

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=profiles_test

type profilesService interface {
	Get(ctx context.Context, athleteID string) (*ProfileDto, error)
}

type Handler struct {
	service profilesService
}

func NewHandler(service profilesService) *Handler {
	return &Handler{
		service: service,
	}
}

// HandleGet serves a profile; the athlete id "me" stands for the actor.
func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profiles.get")
	defer span.End()

	athleteID := mux.Vars(r)["athleteId"]
	if athleteID == "me" {
		athleteID = middleware.ActorIDFrom(ctx)
	}

	profile, err := handler.service.Get(ctx, athleteID)
	correlationID := middleware.CorrelationIDFrom(ctx)
	switch {
	case errors.Is(err, ErrProfileNotFound):
		apierror.Write(w, correlationID, apierror.NotFound("PROFILE_NOT_FOUND", "Profile not found."))
		return
	case db.IsTransient(err):
		apierror.Write(w, correlationID, apierror.Unavailable("DATABASE_UNAVAILABLE", err))
		return
	case err != nil:
		apierror.Write(w, correlationID, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, map[string]*ProfileDto{"profile": profile})
}
