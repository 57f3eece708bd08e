package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row (SELECT ... FOR UPDATE); only
	// valid inside a transaction.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	GetPendingLoanByBorrowerID(ctx context.Context, borrowerID string) (*Loan, error)
	ListByBorrowerID(ctx context.Context, borrowerID string) ([]Loan, error)
	Save(ctx context.Context, l *Loan) error
}

type InstallmentRepository interface {
	// CreateBatch persists a freshly generated schedule in one go.
	CreateBatch(ctx context.Context, rows []*Installment) error
	// ListByLoanID returns the schedule ordered by seq_no ascending.
	ListByLoanID(ctx context.Context, loanID uint64) ([]Installment, error)
	GetByLoanAndNumber(ctx context.Context, loanID uint64, number int) (*Installment, error)
	Save(ctx context.Context, i *Installment) error
}
