package distributionmock

import (
	"context"
	"errors"

	domain "peerfund-backend/internal/domain/distribution"
)

var errUnimplemented = errors.New("distributionmock: method not implemented")

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateBatchFn          func(ctx context.Context, rows []*domain.Record) error
	ListByInstallmentIDFn  func(ctx context.Context, installmentID uint64) ([]domain.Record, error)
	ListByLenderIDFn       func(ctx context.Context, lenderID string) ([]domain.Record, error)
	ExistsForInstallmentFn func(ctx context.Context, installmentID uint64) (bool, error)
}

func (m *Repo) CreateBatch(ctx context.Context, rows []*domain.Record) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, rows)
	}
	return nil
}

func (m *Repo) ListByInstallmentID(ctx context.Context, installmentID uint64) ([]domain.Record, error) {
	if m.ListByInstallmentIDFn != nil {
		return m.ListByInstallmentIDFn(ctx, installmentID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByLenderID(ctx context.Context, lenderID string) ([]domain.Record, error) {
	if m.ListByLenderIDFn != nil {
		return m.ListByLenderIDFn(ctx, lenderID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ExistsForInstallment(ctx context.Context, installmentID uint64) (bool, error) {
	if m.ExistsForInstallmentFn != nil {
		return m.ExistsForInstallmentFn(ctx, installmentID)
	}
	return false, nil
}
