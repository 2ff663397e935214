package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/repository"
	"github.com/jwalitptl/medidesk-api/pkg/messaging"
	"github.com/jwalitptl/medidesk-api/pkg/metrics"
)

const (
	DefaultTTL = 30 * time.Second
	cacheKey   = "dashboard:stats"
)

type DashboardServicer interface {
	Stats(ctx context.Context) (*model.DashboardStats, error)
}

type Service struct {
	repo    repository.DashboardRepository
	cache   *cache.Cache
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(repo repository.DashboardRepository, ttl time.Duration, m *metrics.Metrics) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		repo:    repo,
		cache:   cache.New(ttl, 2*ttl),
		metrics: m,
		now:     time.Now,
	}
}

// Stats returns the headline counts, recomputed at most once per TTL.
func (s *Service) Stats(ctx context.Context) (*model.DashboardStats, error) {
	if cached, ok := s.cache.Get(cacheKey); ok {
		s.metrics.ObserveCache("dashboard", true)
		stats := *cached.(*model.DashboardStats)
		return &stats, nil
	}
	s.metrics.ObserveCache("dashboard", false)

	now := s.now()
	stats, err := s.repo.Stats(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}
	stats.GeneratedAt = now.UTC()

	s.cache.SetDefault(cacheKey, stats)
	out := *stats
	return &out, nil
}

func (s *Service) invalidate() {
	s.cache.Delete(cacheKey)
}

// InvalidateOn returns a Publisher that forwards to next and drops the
// memoized counts on every event. Every successful write publishes one.
func (s *Service) InvalidateOn(next messaging.Publisher) messaging.Publisher {
	return invalidatingPublisher{next: next, svc: s}
}

type invalidatingPublisher struct {
	next messaging.Publisher
	svc  *Service
}

func (p invalidatingPublisher) Publish(ctx context.Context, eventType string, payload interface{}) {
	p.svc.invalidate()
	p.next.Publish(ctx, eventType, payload)
}
