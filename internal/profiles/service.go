package profiles

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/2beens/coachdesk/internal/db"
	"github.com/2beens/coachdesk/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=profiles_test

// profiles rarely change, a short local cache is enough
const profileCacheExpireSecs = 60

type profilesRepo interface {
	Get(ctx context.Context, athleteID string) (*Profile, error)
}

type Service struct {
	repo   profilesRepo
	cache  *freecache.Cache
	policy db.RetryPolicy
}

func NewService(repo profilesRepo, cacheSizeMB int, policy db.RetryPolicy) *Service {
	megabyte := 1024 * 1024
	if cacheSizeMB <= 0 {
		cacheSizeMB = 8
	}
	policy.ShouldRetry = db.IsTransient
	return &Service{
		repo:   repo,
		cache:  freecache.NewCache(cacheSizeMB * megabyte),
		policy: policy,
	}
}

func (s *Service) Get(ctx context.Context, athleteID string) (_ *ProfileDto, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profiles.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	cacheKey := []byte("profile::" + athleteID)
	if cached, err := s.cache.Get(cacheKey); err == nil {
		var dto ProfileDto
		if err := json.Unmarshal(cached, &dto); err == nil {
			span.SetAttributes(attribute.Bool("profile.from-cache", true))
			return &dto, nil
		}
		log.Errorf("failed to unmarshal cached profile %s: %s", athleteID, err)
	}
	span.SetAttributes(attribute.Bool("profile.from-cache", false))

	profile, err := db.WithRetry(ctx, s.policy, func(ctx context.Context, _ int) (*Profile, error) {
		return s.repo.Get(ctx, athleteID)
	})
	if err != nil {
		return nil, err
	}

	dto := profile.Dto()
	dtoJson, err := json.Marshal(dto)
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	if err := s.cache.Set(cacheKey, dtoJson, profileCacheExpireSecs); err != nil {
		log.Errorf("failed to cache profile %s: %s", athleteID, err)
	}

	return &dto, nil
}
