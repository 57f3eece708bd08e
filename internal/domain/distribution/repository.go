package distribution

import "context"

type Repository interface {
	// CreateBatch writes all of one installment's records in a single call;
	// the caller wraps it in the payment transaction.
	CreateBatch(ctx context.Context, rows []*Record) error
	ListByInstallmentID(ctx context.Context, installmentID uint64) ([]Record, error)
	ListByLenderID(ctx context.Context, lenderID string) ([]Record, error)
	ExistsForInstallment(ctx context.Context, installmentID uint64) (bool, error)
}
