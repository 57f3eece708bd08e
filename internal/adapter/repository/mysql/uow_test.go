package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	distDomain "peerfund-backend/internal/domain/distribution"
	loanDomain "peerfund-backend/internal/domain/loan"
	"peerfund-backend/internal/domain/uow"
	"peerfund-backend/pkg/id"

	"gorm.io/gorm"
)

func seedActiveLoan(t *testing.T, db *gorm.DB, loanID string) uint64 {
	t.Helper()
	seed := &loanSQLite{
		LoanID:          loanID,
		BorrowerID:      "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		Principal:       210_000,
		FundingTarget:   210_000,
		CurrentFunding:  210_000,
		Status:          "active",
		StatusUpdatedAt: time.Now().UTC(),
	}
	if err := db.Create(seed).Error; err != nil {
		t.Fatalf("seed loan: %v", err)
	}
	return seed.ID
}

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)
	instRepo := NewInstallmentRepository(db)

	loanID := id.NewID32()
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		l := makeLoan(loanID, "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		if l.ID == 0 {
			t.Fatalf("loan auto ID not set")
		}
		return r.Installments.CreateBatch(ctx, []*loanDomain.Installment{{
			InstallmentID: id.NewID32(),
			LoanID:        l.ID,
			Number:        1,
			DueDate:       time.Now().UTC(),
			Principal:     100, Interest: 5, Total: 105,
			Status: loanDomain.InstallmentPending,
		}})
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	l, err := loanRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("loan not visible after commit: %v", err)
	}
	rows, err := instRepo.ListByLoanID(ctx, l.ID)
	if err != nil || len(rows) != 1 {
		t.Fatalf("installments after commit: %v (%d rows)", err, len(rows))
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)

	loanID := id.NewID32()
	sentinel := errors.New("boom")

	_ = guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, makeLoan(loanID, "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	if _, err := loanRepo.GetByLoanID(ctx, loanID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected loan not found after rollback, got %v", err)
	}
}

// TestGormUoW_WithinLoanTx_Commit walks a payment-shaped write set: mark the
// installment paid, insert its distribution rows, save the loan — all behind
// the locked loan row.
func TestGormUoW_WithinLoanTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)
	instRepo := NewInstallmentRepository(db)
	distRepo := NewDistributionRepository(db)

	loanID := id.NewID32()
	numericID := seedActiveLoan(t, db, loanID)
	seeded := seedSchedule(t, db, numericID, 2)

	err := guow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l == nil || l.LoanID != loanID || l.Status != loanDomain.StatusActive {
			t.Fatalf("unexpected loan passed to fn: %+v", l)
		}

		row := seeded[0]
		if err := row.MarkPaid(row.DueDate); err != nil {
			return err
		}
		if err := r.Installments.Save(ctx, row); err != nil {
			return err
		}
		if err := r.Distributions.CreateBatch(ctx, []*distDomain.Record{{
			RecordID:      id.NewID32(),
			InstallmentID: row.ID,
			LoanID:        l.ID,
			LenderID:      "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			Gross:         105, PlatformFee: 5, Net: 100, PrincipalShare: 100, InterestShare: 5,
		}}); err != nil {
			return err
		}
		l.StatusUpdatedAt = time.Now().UTC()
		return r.Loans.Save(ctx, l)
	})
	if err != nil {
		t.Fatalf("WithinLoanTx commit err: %v", err)
	}

	got, err := instRepo.GetByLoanAndNumber(ctx, numericID, 1)
	if err != nil {
		t.Fatalf("installment post-commit: %v", err)
	}
	if !got.Status.Paid() {
		t.Fatalf("installment still pending after commit")
	}
	ok, err := distRepo.ExistsForInstallment(ctx, got.ID)
	if err != nil || !ok {
		t.Fatalf("distribution not visible after commit: ok=%v err=%v", ok, err)
	}
	if _, err := loanRepo.GetByLoanID(ctx, loanID); err != nil {
		t.Fatalf("loan post-commit: %v", err)
	}
}

func TestGormUoW_WithinLoanTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	instRepo := NewInstallmentRepository(db)
	distRepo := NewDistributionRepository(db)

	loanID := id.NewID32()
	numericID := seedActiveLoan(t, db, loanID)
	seeded := seedSchedule(t, db, numericID, 1)

	sentinel := errors.New("stop")

	_ = guow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		row := seeded[0]
		if err := row.MarkPaid(row.DueDate); err != nil {
			return err
		}
		if err := r.Installments.Save(ctx, row); err != nil {
			return err
		}
		if err := r.Distributions.CreateBatch(ctx, []*distDomain.Record{{
			RecordID:      id.NewID32(),
			InstallmentID: row.ID,
			LoanID:        l.ID,
			LenderID:      "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			Gross:         105, PlatformFee: 5, Net: 100, PrincipalShare: 100, InterestShare: 5,
		}}); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	// After rollback: installment pending, no distribution rows
	got, err := instRepo.GetByLoanAndNumber(ctx, numericID, 1)
	if err != nil {
		t.Fatalf("post-rollback GetByLoanAndNumber: %v", err)
	}
	if got.Status.Paid() {
		t.Fatalf("installment marked paid despite rollback")
	}
	ok, err := distRepo.ExistsForInstallment(ctx, got.ID)
	if err != nil {
		t.Fatalf("ExistsForInstallment: %v", err)
	}
	if ok {
		t.Fatalf("distribution survived rollback")
	}
}

func TestGormUoW_WithinLoanTx_LoanNotFound(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)

	err := guow.WithinLoanTx(ctx, "ffffffffffffffffffffffffffffffff", func(r uow.Repos, l *loanDomain.Loan) error {
		t.Fatalf("callback should not run when loan missing")
		return nil
	})
	if !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("err = %v, want loan.ErrNotFound", err)
	}
}
