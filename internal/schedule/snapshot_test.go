package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	distDomain "peerfund-backend/internal/domain/distribution"
	invDomain "peerfund-backend/internal/domain/investment"
	loanDomain "peerfund-backend/internal/domain/loan"
	"peerfund-backend/internal/testutil/distributionmock"
	"peerfund-backend/internal/testutil/investmentmock"
	"peerfund-backend/internal/testutil/loanmock"
	"peerfund-backend/internal/usecase/portfolio"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

const (
	lenderA = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	lenderB = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

// snapshotWorld backs the portfolio usecase with two lenders on one
// completed loan, so summaries need no projections.
func snapshotWorld() (*portfolio.Usecase, *investmentmock.Repo) {
	l := &loanDomain.Loan{
		ID: 1, LoanID: "11111111111111111111111111111111",
		Principal: 500, FundingTarget: 500, CurrentFunding: 500,
		Status: loanDomain.StatusCompleted,
	}
	invs := []invDomain.Investment{
		{LoanID: 1, LenderID: lenderA, Amount: 300},
		{LoanID: 1, LenderID: lenderB, Amount: 200},
	}
	investments := &investmentmock.Repo{
		ListLenderIDsFn: func(ctx context.Context) ([]string, error) {
			return []string{lenderA, lenderB}, nil
		},
		ListByLenderIDFn: func(ctx context.Context, lenderID string) ([]invDomain.Investment, error) {
			var out []invDomain.Investment
			for _, inv := range invs {
				if inv.LenderID == lenderID {
					out = append(out, inv)
				}
			}
			return out, nil
		},
		ListByLoanIDFn: func(ctx context.Context, loanID uint64) ([]invDomain.Investment, error) {
			return invs, nil
		},
	}
	loans := &loanmock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*loanDomain.Loan, error) { return l, nil },
	}
	dists := &distributionmock.Repo{
		ListByLenderIDFn: func(ctx context.Context, lenderID string) ([]distDomain.Record, error) {
			if lenderID == lenderA {
				return []distDomain.Record{{LoanID: 1, LenderID: lenderA, Net: 330, PlatformFee: 17}}, nil
			}
			return []distDomain.Record{{LoanID: 1, LenderID: lenderB, Net: 220, PlatformFee: 11}}, nil
		},
	}
	uc := portfolio.NewUsecase(loans, &loanmock.InstallmentRepo{}, investments, dists)
	return uc, investments
}

func TestRun_StoresOneSnapshotPerLender(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	uc, investments := snapshotWorld()
	s := NewPortfolioSnapshotter(uc, investments, rdb, time.Minute)

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, lenderID := range []string{lenderA, lenderB} {
		raw, err := rdb.Get(context.Background(), lenderSnapshotKeyPrefix+lenderID).Bytes()
		if err != nil {
			t.Fatalf("snapshot missing for %s: %v", lenderID, err)
		}
		var sum portfolio.LenderSummary
		if err := json.Unmarshal(raw, &sum); err != nil {
			t.Fatalf("snapshot for %s not json: %v", lenderID, err)
		}
		if sum.LenderID != lenderID {
			t.Fatalf("snapshot lender = %s, want %s", sum.LenderID, lenderID)
		}
	}

	// TTL applied so a dead worker cannot leave stale aggregates forever
	if ttl := mr.TTL(lenderSnapshotKeyPrefix + lenderA); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("ttl = %v, want (0, 1m]", ttl)
	}
}

func TestRun_SkipsFailingLender(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	uc, investments := snapshotWorld()
	// lender A's summary blows up; B must still be written
	orig := investments.ListByLenderIDFn
	investments.ListByLenderIDFn = func(ctx context.Context, lenderID string) ([]invDomain.Investment, error) {
		if lenderID == lenderA {
			return nil, errors.New("boom")
		}
		return orig(ctx, lenderID)
	}
	s := NewPortfolioSnapshotter(uc, investments, rdb, time.Minute)

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if mr.Exists(lenderSnapshotKeyPrefix + lenderA) {
		t.Fatalf("failed lender must not be written")
	}
	if !mr.Exists(lenderSnapshotKeyPrefix + lenderB) {
		t.Fatalf("healthy lender skipped because another failed")
	}
}

func TestRun_PropagatesLenderListError(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	uc, _ := snapshotWorld()
	investments := &investmentmock.Repo{
		ListLenderIDsFn: func(ctx context.Context) ([]string, error) {
			return nil, errors.New("db down")
		},
	}
	s := NewPortfolioSnapshotter(uc, investments, rdb, time.Minute)

	if err := s.Run(context.Background()); err == nil {
		t.Fatalf("expected error when lender list cannot be loaded")
	}
}

func TestStart_RejectsBadCronSpec(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	uc, investments := snapshotWorld()
	s := NewPortfolioSnapshotter(uc, investments, rdb, time.Minute)

	if _, err := s.Start("not a cron spec"); err == nil {
		t.Fatalf("expected error for invalid spec")
	}

	c, err := s.Start("@every 1h")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	c.Stop()
}
