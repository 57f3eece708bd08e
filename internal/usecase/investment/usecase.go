package investment

import (
	"context"
	"time"

	domain "peerfund-backend/internal/domain/investment"
	loanDomain "peerfund-backend/internal/domain/loan"
	"peerfund-backend/internal/domain/uow"
	"peerfund-backend/pkg/id"
)

type Usecase struct {
	uow uow.UnitOfWork
}

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

type RecordInput struct {
	LoanID   string
	LenderID string
	Amount   int64
}

type InvestmentDTO struct {
	InvestmentID   string    `json:"investment_id"`
	LoanID         string    `json:"loan_id"`
	LenderID       string    `json:"lender_id"`
	Amount         int64     `json:"amount"`
	CurrentFunding int64     `json:"current_funding"`
	FundingTarget  int64     `json:"funding_target"`
	LoanStatus     string    `json:"loan_status"`
	CreatedAt      time.Time `json:"created_at"`
}

type ShareDTO struct {
	LenderID string  `json:"lender_id"`
	Amount   int64   `json:"amount"`
	Fraction float64 `json:"fraction"`
}

// Record adds a lender's investment under the per-loan row lock, so two
// concurrent investments can never push current_funding past the target.
func (u *Usecase) Record(ctx context.Context, in RecordInput) (*InvestmentDTO, error) {
	if in.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	var dto *InvestmentDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
		switch l.Status {
		case loanDomain.StatusApproved:
			// first investment opens the funding window
			if err := l.SetStatus(loanDomain.StatusFunding, time.Now()); err != nil {
				return err
			}
		case loanDomain.StatusFunding:
		default:
			return domain.ErrFundingClosed
		}

		if l.CurrentFunding+in.Amount > l.FundingTarget {
			return domain.ErrOverfunding
		}

		inv := &domain.Investment{
			InvestmentID: id.NewID32(),
			LoanID:       l.ID,
			LenderID:     in.LenderID,
			Amount:       in.Amount,
		}
		if err := r.Investments.Create(ctx, inv); err != nil {
			return err
		}

		l.CurrentFunding += in.Amount
		if l.CurrentFunding == l.FundingTarget {
			if err := l.SetStatus(loanDomain.StatusFunded, time.Now()); err != nil {
				return err
			}
			now := time.Now().UTC()
			l.FundedAt = &now
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		dto = &InvestmentDTO{
			InvestmentID:   inv.InvestmentID,
			LoanID:         l.LoanID,
			LenderID:       inv.LenderID,
			Amount:         inv.Amount,
			CurrentFunding: l.CurrentFunding,
			FundingTarget:  l.FundingTarget,
			LoanStatus:     string(l.Status),
			CreatedAt:      inv.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Shares reports each lender's fraction of the loan's current funding.
// Recomputed from the investment rows on every call, never cached.
func (u *Usecase) Shares(ctx context.Context, loanID string) ([]ShareDTO, error) {
	var out []ShareDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		invs, err := r.Investments.ListByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		if len(invs) == 0 {
			return domain.ErrNoInvestments
		}
		amounts := make(map[string]int64, len(invs))
		for _, inv := range invs {
			amounts[inv.LenderID] += inv.Amount
		}
		for _, s := range domain.Shares(invs, l.CurrentFunding) {
			out = append(out, ShareDTO{LenderID: s.LenderID, Amount: amounts[s.LenderID], Fraction: s.Fraction})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
