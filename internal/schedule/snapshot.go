// Package schedule holds the periodic jobs that run beside the API. The
// engine itself stays event-driven; these jobs only refresh read caches.
package schedule

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"peerfund-backend/internal/domain/investment"
	"peerfund-backend/internal/usecase/portfolio"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

const lenderSnapshotKeyPrefix = "portfolio:lender:"

// PortfolioSnapshotter recomputes every lender's summary and caches it in
// redis so dashboards can read hot aggregates without hitting mysql. The
// database rows stay the source of truth; a stale or missing snapshot is
// always safe to recompute.
type PortfolioSnapshotter struct {
	portfolios  *portfolio.Usecase
	investments investment.Repository
	rdb         *redis.Client
	ttl         time.Duration
}

func NewPortfolioSnapshotter(
	portfolios *portfolio.Usecase,
	investments investment.Repository,
	rdb *redis.Client,
	ttl time.Duration,
) *PortfolioSnapshotter {
	return &PortfolioSnapshotter{
		portfolios:  portfolios,
		investments: investments,
		rdb:         rdb,
		ttl:         ttl,
	}
}

// Run refreshes one snapshot per known lender. Per-lender failures are
// logged and skipped so one bad row cannot starve the rest.
func (s *PortfolioSnapshotter) Run(ctx context.Context) error {
	lenderIDs, err := s.investments.ListLenderIDs(ctx)
	if err != nil {
		return err
	}
	for _, lenderID := range lenderIDs {
		summary, err := s.portfolios.SummarizeLender(ctx, lenderID)
		if err != nil {
			log.Printf("snapshot: summarize lender %s: %v", lenderID, err)
			continue
		}
		payload, err := json.Marshal(summary)
		if err != nil {
			log.Printf("snapshot: marshal lender %s: %v", lenderID, err)
			continue
		}
		if err := s.rdb.Set(ctx, lenderSnapshotKeyPrefix+lenderID, payload, s.ttl).Err(); err != nil {
			log.Printf("snapshot: store lender %s: %v", lenderID, err)
		}
	}
	return nil
}

// Start schedules Run on the given cron spec and returns the started cron
// so the caller can Stop it on shutdown.
func (s *PortfolioSnapshotter) Start(spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := s.Run(ctx); err != nil {
			log.Printf("snapshot: run failed: %v", err)
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
