package loanmock

import (
	"context"
	"errors"

	domain "peerfund-backend/internal/domain/loan"
)

var errUnimplemented = errors.New("loanmock: method not implemented")

var (
	_ domain.Repository            = (*Repo)(nil)
	_ domain.InstallmentRepository = (*InstallmentRepo)(nil)
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in the function fields you need in a test.
type Repo struct {
	CreateFn                     func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn                func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn       func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByIDFn                    func(ctx context.Context, id uint64) (*domain.Loan, error)
	GetPendingLoanByBorrowerIDFn func(ctx context.Context, borrowerID string) (*domain.Loan, error)
	ListByBorrowerIDFn           func(ctx context.Context, borrowerID string) ([]domain.Loan, error)
	SaveFn                       func(ctx context.Context, l *domain.Loan) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetPendingLoanByBorrowerID(ctx context.Context, borrowerID string) (*domain.Loan, error) {
	if m.GetPendingLoanByBorrowerIDFn != nil {
		return m.GetPendingLoanByBorrowerIDFn(ctx, borrowerID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByBorrowerID(ctx context.Context, borrowerID string) ([]domain.Loan, error) {
	if m.ListByBorrowerIDFn != nil {
		return m.ListByBorrowerIDFn(ctx, borrowerID)
	}
	return nil, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

// InstallmentRepo mocks domain.InstallmentRepository the same way.
type InstallmentRepo struct {
	CreateBatchFn        func(ctx context.Context, rows []*domain.Installment) error
	ListByLoanIDFn       func(ctx context.Context, loanID uint64) ([]domain.Installment, error)
	GetByLoanAndNumberFn func(ctx context.Context, loanID uint64, number int) (*domain.Installment, error)
	SaveFn               func(ctx context.Context, i *domain.Installment) error
}

func (m *InstallmentRepo) CreateBatch(ctx context.Context, rows []*domain.Installment) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, rows)
	}
	return nil
}

func (m *InstallmentRepo) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.Installment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *InstallmentRepo) GetByLoanAndNumber(ctx context.Context, loanID uint64, number int) (*domain.Installment, error) {
	if m.GetByLoanAndNumberFn != nil {
		return m.GetByLoanAndNumberFn(ctx, loanID, number)
	}
	return nil, errUnimplemented
}

func (m *InstallmentRepo) Save(ctx context.Context, i *domain.Installment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, i)
	}
	return nil
}
