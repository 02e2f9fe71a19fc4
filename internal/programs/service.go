package programs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/coachdesk/internal/db"
	"github.com/2beens/coachdesk/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=programs_test

type programsRepo interface {
	GetCurrent(ctx context.Context, athleteID string) (*Program, error)
}

// Service serves current programs, cached in redis for a short while.
// Cache failures are logged and never fail a request.
type Service struct {
	repo        programsRepo
	redisClient *redis.Client
	cacheTTL    time.Duration
	policy      db.RetryPolicy
}

func NewService(repo programsRepo, redisClient *redis.Client, cacheTTL time.Duration, policy db.RetryPolicy) *Service {
	policy.ShouldRetry = db.IsTransient
	return &Service{
		repo:        repo,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
		policy:      policy,
	}
}

func CacheKey(athleteID string) string {
	return fmt.Sprintf("program::%s", athleteID)
}

func (s *Service) GetCurrent(ctx context.Context, athleteID string) (_ *Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.programs.getCurrent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	key := CacheKey(athleteID)
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, key).Result()
		switch {
		case errors.Is(err, redis.Nil):
			log.Tracef("program for [%s] not cached", athleteID)
		case err != nil:
			log.Errorf("failed to get cached program for [%s]: %s", athleteID, err)
		default:
			program := &Program{}
			if err := json.Unmarshal([]byte(cached), program); err == nil {
				span.SetAttributes(attribute.Bool("program.from-cache", true))
				return program, nil
			}
			log.Errorf("failed to unmarshal cached program for [%s]: %s", athleteID, err)
		}
	}
	span.SetAttributes(attribute.Bool("program.from-cache", false))

	program, err := db.WithRetry(ctx, s.policy, func(ctx context.Context, _ int) (*Program, error) {
		return s.repo.GetCurrent(ctx, athleteID)
	})
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		programJson, err := json.Marshal(program)
		if err != nil {
			return nil, fmt.Errorf("marshal program: %w", err)
		}
		if err := s.redisClient.Set(ctx, key, programJson, s.cacheTTL).Err(); err != nil {
			log.Errorf("failed to cache program for [%s]: %s", athleteID, err)
		}
	}

	return program, nil
}
