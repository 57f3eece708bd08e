package investment

import "context"

type Repository interface {
	Create(ctx context.Context, inv *Investment) error
	ListByLoanID(ctx context.Context, loanID uint64) ([]Investment, error)
	ListByLenderID(ctx context.Context, lenderID string) ([]Investment, error)
	// ListLenderIDs returns every distinct lender that holds at least one
	// investment; used by the portfolio snapshot job.
	ListLenderIDs(ctx context.Context) ([]string, error)
}
