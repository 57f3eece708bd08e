package uow

import (
	"context"

	"peerfund-backend/internal/domain/distribution"
	"peerfund-backend/internal/domain/investment"
	"peerfund-backend/internal/domain/loan"
)

type Repos struct {
	Loans         loan.Repository
	Installments  loan.InstallmentRepository
	Investments   investment.Repository
	Distributions distribution.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan row first, then pass it in. This is the
	// per-loan serialization point for funding and payment flows.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
