package sessions

import (
	"context"

	"github.com/2beens/coachdesk/internal/db"
	"github.com/2beens/coachdesk/internal/telemetry/metrics"
	"github.com/2beens/coachdesk/internal/telemetry/tracing"
	"github.com/2beens/coachdesk/pkg/editor"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=sessions_test

type sessionsRepo interface {
	Create(ctx context.Context, athleteID string, s editor.Draft) (*editor.Draft, error)
	Update(ctx context.Context, athleteID string, s editor.Draft) (*editor.Draft, error)
	UpdateStatus(ctx context.Context, athleteID, id string, status editor.Status) (*editor.Draft, error)
	Get(ctx context.Context, athleteID, id string) (*editor.Draft, error)
	List(ctx context.Context, params ListParams) ([]editor.Draft, error)
}

// Service is the server side of the save/load boundary: drafts are
// normalized and validated with the same rules the editor applies, get
// durable ids and are written in one transaction, retried on transient
// database errors.
type Service struct {
	repo           sessionsRepo
	policy         db.RetryPolicy
	metricsManager *metrics.Manager
	ids            *editor.IDIssuer
}

func NewService(repo sessionsRepo, policy db.RetryPolicy, metricsManager *metrics.Manager) *Service {
	policy.ShouldRetry = db.IsTransient
	return &Service{
		repo:           repo,
		policy:         policy,
		metricsManager: metricsManager,
		ids:            editor.NewIDIssuer(),
	}
}

// Create stores a new session. Client ids are discarded.
func (s *Service) Create(ctx context.Context, athleteID string, draft editor.Draft) (_ *editor.Draft, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	session, err := s.prepare(draft)
	if err != nil {
		return nil, err
	}
	assignDurableIDs(&session, uuid.NewString(), false)

	saved, err := db.WithRetry(ctx, s.policy.Instrumented(s.metricsManager, "create_session"),
		func(ctx context.Context, _ int) (*editor.Draft, error) {
			return s.repo.Create(ctx, athleteID, session)
		},
	)
	if err != nil {
		return nil, err
	}

	s.countSaved("create")
	log.Debugf("session created: %s [%d exercises]", saved.ID, len(saved.Exercises))
	return saved, nil
}

// Update replaces a stored session. Durable ids of sections and exercises are
// kept, temporary ones are replaced.
func (s *Service) Update(ctx context.Context, athleteID, id string, draft editor.Draft) (_ *editor.Draft, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", id))

	if !isUUID(id) {
		return nil, ErrSessionNotFound
	}

	session, err := s.prepare(draft)
	if err != nil {
		return nil, err
	}
	assignDurableIDs(&session, id, true)

	saved, err := db.WithRetry(ctx, s.policy.Instrumented(s.metricsManager, "update_session"),
		func(ctx context.Context, _ int) (*editor.Draft, error) {
			return s.repo.Update(ctx, athleteID, session)
		},
	)
	if err != nil {
		return nil, err
	}

	s.countSaved("update")
	return saved, nil
}

func (s *Service) UpdateStatus(ctx context.Context, athleteID, id string, status editor.Status) (_ *editor.Draft, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.updateStatus")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if !status.IsValid() {
		return nil, &ValidationError{Reason: "unknown status " + string(status)}
	}
	if !isUUID(id) {
		return nil, ErrSessionNotFound
	}

	saved, err := db.WithRetry(ctx, s.policy.Instrumented(s.metricsManager, "update_session_status"),
		func(ctx context.Context, _ int) (*editor.Draft, error) {
			return s.repo.UpdateStatus(ctx, athleteID, id, status)
		},
	)
	if err != nil {
		return nil, err
	}

	s.countSaved("status")
	return saved, nil
}

func (s *Service) Get(ctx context.Context, athleteID, id string) (*editor.Draft, error) {
	if !isUUID(id) {
		return nil, ErrSessionNotFound
	}
	return db.WithRetry(ctx, s.policy.Instrumented(s.metricsManager, "get_session"),
		func(ctx context.Context, _ int) (*editor.Draft, error) {
			return s.repo.Get(ctx, athleteID, id)
		},
	)
}

func (s *Service) List(ctx context.Context, params ListParams) ([]editor.Draft, error) {
	if params.Limit <= 0 {
		params.Limit = DefaultListLimit
	}
	params.Limit = min(params.Limit, MaxListLimit)
	if params.Start != nil && params.End != nil && params.End.Before(*params.Start) {
		return nil, &ValidationError{Reason: "end before start"}
	}

	return db.WithRetry(ctx, s.policy.Instrumented(s.metricsManager, "list_sessions"),
		func(ctx context.Context, _ int) ([]editor.Draft, error) {
			return s.repo.List(ctx, params)
		},
	)
}

// prepare normalizes and validates a draft. Besides the editor rules the
// server needs a parseable date and known enum values to store it.
func (s *Service) prepare(draft editor.Draft) (editor.Draft, error) {
	session := editor.Normalize(draft, s.ids)

	errs := editor.Validate(session)
	if !errs.Valid() || errs.Date != "" {
		return editor.Draft{}, &ValidationError{Errors: errs}
	}
	if session.Intensity != nil && !session.Intensity.IsValid() {
		return editor.Draft{}, &ValidationError{Errors: errs, Reason: "unknown intensity " + string(*session.Intensity)}
	}
	if !session.Status.IsValid() {
		return editor.Draft{}, &ValidationError{Errors: errs, Reason: "unknown status " + string(session.Status)}
	}
	for _, section := range session.Sections {
		if !section.Category.IsValid() {
			return editor.Draft{}, &ValidationError{Errors: errs, Reason: "unknown section " + string(section.Category)}
		}
	}
	if session.MicroCycleID != nil && !isUUID(*session.MicroCycleID) {
		return editor.Draft{}, ErrMicroCycleNotFound
	}

	return session, nil
}

func (s *Service) countSaved(op string) {
	if s.metricsManager != nil {
		s.metricsManager.CounterSessionsSaved.WithLabelValues(op).Inc()
	}
}

// assignDurableIDs gives the session, its sections and exercises uuid ids.
// With keepDurable, ids that already are uuids survive, the rest is replaced.
// Exercise section references follow the renamed sections.
func assignDurableIDs(session *editor.Draft, sessionID string, keepDurable bool) {
	session.ID = editor.DurableID(sessionID)
	if session.SessionCode == nil {
		session.SessionCode = editor.Ptr(sessionID)
	}

	seen := make(map[editor.ID]bool)
	next := func(id editor.ID) editor.ID {
		if keepDurable && !seen[id] {
			if v, ok := id.Durable(); ok && isUUID(v) {
				seen[id] = true
				return id
			}
		}
		fresh := editor.DurableID(uuid.NewString())
		seen[fresh] = true
		return fresh
	}

	renamed := make(map[editor.ID]editor.ID, len(session.Sections))
	for i := range session.Sections {
		old := session.Sections[i].ID
		session.Sections[i].ID = next(old)
		if _, ok := renamed[old]; !ok {
			renamed[old] = session.Sections[i].ID
		}
	}
	for i := range session.Exercises {
		e := &session.Exercises[i]
		e.ID = next(e.ID)
		e.SectionID = renamed[e.SectionID]
	}
}

func isUUID(s string) bool {
	return uuid.Validate(s) == nil
}
