package analytics

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"terradash/internal/domain/dataset"
	"terradash/internal/domain/report"
	"terradash/internal/infrastructure/cache"
)

// Service recomputes the dashboard payload from the stored collections on
// demand, memoizing the result briefly. The cache is stale-tolerant and
// must be invalidated after every successful upload.
type Service interface {
	Dashboard() (*report.Dashboard, error)
	Invalidate()
}

type service struct {
	repo  dataset.Repository
	cache *cache.Cache[*report.Dashboard]
	log   *logrus.Logger
}

// NewService creates a new analytics service. A zero or negative ttl
// disables caching.
func NewService(repo dataset.Repository, ttl time.Duration, log *logrus.Logger) Service {
	return &service{
		repo:  repo,
		cache: cache.New[*report.Dashboard](ttl),
		log:   log,
	}
}

func (s *service) Dashboard() (*report.Dashboard, error) {
	if d, ok := s.cache.Get(); ok {
		return d, nil
	}

	orders, err := s.repo.Orders()
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	campaigns, err := s.repo.Campaigns()
	if err != nil {
		return nil, fmt.Errorf("load campaigns: %w", err)
	}

	d := &report.Dashboard{
		KPIs:               Compute(orders, campaigns),
		Campaigns:          RankCampaigns(campaigns),
		BestDay:            BestDay(orders),
		BestHour:           BestHour(orders),
		SalesTrend:         SalesTrend(orders),
		HourlyDistribution: HourlyDistribution(orders),
	}
	s.cache.Set(d)

	s.log.WithFields(logrus.Fields{
		"orders":    len(orders),
		"campaigns": len(campaigns),
	}).Debug("dashboard recomputed")
	return d, nil
}

func (s *service) Invalidate() {
	s.cache.Invalidate()
}
