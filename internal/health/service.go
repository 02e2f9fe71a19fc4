package health

import (
	"context"
	"sync"
	"time"

	"github.com/2beens/coachdesk/internal/db"
	"github.com/2beens/coachdesk/internal/telemetry/metrics"
	"github.com/2beens/coachdesk/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=health_test

const DefaultEventsLimit = 20

type eventsRepo interface {
	RecordEvent(ctx context.Context, event Event) error
	ListEvents(ctx context.Context, environment string, limit int) ([]Event, error)
}

type databaseProber interface {
	Ping(ctx context.Context) error
	State() db.State
}

// Service answers health and readiness questions about the database and
// keeps the time of the last failed probe.
type Service struct {
	prober         databaseProber
	repo           eventsRepo
	environment    string
	policy         db.RetryPolicy
	metricsManager *metrics.Manager
	now            func() time.Time

	mu            sync.Mutex
	lastFailureAt *time.Time
}

type ServiceParams struct {
	Prober         databaseProber
	Repo           eventsRepo
	Environment    string
	RetryPolicy    db.RetryPolicy
	MetricsManager *metrics.Manager
	// Now defaults to time.Now
	Now func() time.Time
}

func NewService(params ServiceParams) *Service {
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		prober:         params.Prober,
		repo:           params.Repo,
		environment:    params.Environment,
		policy:         params.RetryPolicy.Instrumented(params.MetricsManager, "health_ping"),
		metricsManager: params.MetricsManager,
		now:            now,
	}
}

// CheckHealth actively probes the database, retrying per policy, and records
// the outcome as a health event.
func (s *Service) CheckHealth(ctx context.Context) State {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.health.check")
	defer span.End()

	start := s.now()
	err := db.Retry(ctx, s.policy, func(ctx context.Context, _ int) error {
		return s.prober.Ping(ctx)
	})
	latency := s.now().Sub(start)
	latencyMs := latency.Milliseconds()

	event := Event{
		Environment: s.environment,
		LatencyMs:   latencyMs,
	}
	state := State{LatencyMs: &latencyMs}

	if err != nil {
		span.RecordError(err)
		failedAt := s.now()
		s.setLastFailure(failedAt)

		errorCode := err.Error()
		event.Status, event.ErrorCode = StatusFail, &errorCode
		state.Status = StatusFail
		log.Errorf("database health check failed after %s: %s", latency, err)
	} else {
		event.Status = StatusPass
		state.Status = StatusPass
	}
	state.LastFailureAt = s.LastFailureAt()
	event.LastFailureAt = state.LastFailureAt

	if s.metricsManager != nil {
		s.metricsManager.HistDBHealthLatency.WithLabelValues(string(state.Status)).Observe(latency.Seconds())
	}

	// an abandoned probe still gets its event recorded
	if err := s.repo.RecordEvent(context.WithoutCancel(ctx), event); err != nil {
		log.Warnf("record health event: %s", err)
	}

	return state
}

// CheckReadiness never touches the database, it only reads the connection state.
func (s *Service) CheckReadiness() State {
	status := StatusDegraded
	if s.prober.State() == db.StateActive {
		status = StatusPass
	}
	return State{
		Status:        status,
		LastFailureAt: s.LastFailureAt(),
	}
}

func (s *Service) RecentEvents(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = DefaultEventsLimit
	}
	return s.repo.ListEvents(ctx, s.environment, limit)
}

func (s *Service) LastFailureAt() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastFailureAt == nil {
		return nil
	}
	t := *s.lastFailureAt
	return &t
}

func (s *Service) setLastFailure(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFailureAt = &t
}
