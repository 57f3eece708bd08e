package investmentmock

import (
	"context"
	"errors"

	domain "peerfund-backend/internal/domain/investment"
)

var errUnimplemented = errors.New("investmentmock: method not implemented")

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn         func(ctx context.Context, inv *domain.Investment) error
	ListByLoanIDFn   func(ctx context.Context, loanID uint64) ([]domain.Investment, error)
	ListByLenderIDFn func(ctx context.Context, lenderID string) ([]domain.Investment, error)
	ListLenderIDsFn  func(ctx context.Context) ([]string, error)
}

func (m *Repo) Create(ctx context.Context, inv *domain.Investment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, inv)
	}
	return nil
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.Investment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByLenderID(ctx context.Context, lenderID string) ([]domain.Investment, error) {
	if m.ListByLenderIDFn != nil {
		return m.ListByLenderIDFn(ctx, lenderID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListLenderIDs(ctx context.Context) ([]string, error) {
	if m.ListLenderIDsFn != nil {
		return m.ListLenderIDsFn(ctx)
	}
	return nil, errUnimplemented
}
