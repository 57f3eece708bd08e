package payment

import (
	"context"
	"time"

	distDomain "peerfund-backend/internal/domain/distribution"
	invDomain "peerfund-backend/internal/domain/investment"
	loanDomain "peerfund-backend/internal/domain/loan"
	"peerfund-backend/internal/domain/uow"
	"peerfund-backend/pkg/id"
)

type Usecase struct {
	uow uow.UnitOfWork
}

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

type RecordInput struct {
	LoanID            string
	InstallmentNumber int
	PaidDate          time.Time
	Amount            int64
}

type DistributionDTO struct {
	RecordID       string `json:"record_id"`
	LenderID       string `json:"lender_id"`
	Gross          int64  `json:"gross"`
	PlatformFee    int64  `json:"platform_fee"`
	Net            int64  `json:"net"`
	PrincipalShare int64  `json:"principal_share"`
	InterestShare  int64  `json:"interest_share"`
}

type PaymentDTO struct {
	LoanID            string            `json:"loan_id"`
	InstallmentNumber int               `json:"installment_number"`
	InstallmentStatus string            `json:"installment_status"`
	PaidAt            time.Time         `json:"paid_at"`
	LoanStatus        string            `json:"loan_status"`
	Distributions     []DistributionDTO `json:"distributions"`
}

// Record settles one installment and fans its amount out to the loan's
// lenders, all inside a single transaction under the per-loan row lock:
// either the status flip and every distribution row commit together, or
// nothing does. A concurrent retry can only see ErrAlreadyPaid /
// ErrAlreadyDistributed, never a double allocation.
func (u *Usecase) Record(ctx context.Context, in RecordInput) (*PaymentDTO, error) {
	var dto *PaymentDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.Status != loanDomain.StatusActive {
			return loanDomain.ErrNotActive
		}

		installments, err := r.Installments.ListByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		if len(installments) == 0 {
			return loanDomain.ErrScheduleNotGenerated
		}

		var target *loanDomain.Installment
		for idx := range installments {
			if installments[idx].Number == in.InstallmentNumber {
				target = &installments[idx]
				break
			}
		}
		if target == nil {
			return loanDomain.ErrInstallmentNotFound
		}
		// strict sequential repayment: everything before the target must
		// already be settled
		for idx := range installments {
			row := &installments[idx]
			if row.Number < target.Number && !row.Status.Paid() {
				return loanDomain.ErrOutOfOrderPayment
			}
		}
		if target.Status.Paid() {
			return loanDomain.ErrAlreadyPaid
		}
		if in.Amount != target.Total {
			return loanDomain.ErrAmountMismatch
		}

		exists, err := r.Distributions.ExistsForInstallment(ctx, target.ID)
		if err != nil {
			return err
		}
		if exists {
			return distDomain.ErrAlreadyDistributed
		}

		if err := target.MarkPaid(in.PaidDate); err != nil {
			return err
		}
		if err := r.Installments.Save(ctx, target); err != nil {
			return err
		}

		invs, err := r.Investments.ListByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		shares := invDomain.Shares(invs, l.CurrentFunding)
		if len(shares) == 0 {
			return invDomain.ErrNoInvestments
		}
		allocs := distDomain.Split(target.Total, target.Principal, shares, l.PlatformFeeRate)

		rows := make([]*distDomain.Record, 0, len(allocs))
		dtos := make([]DistributionDTO, 0, len(allocs))
		for _, a := range allocs {
			rec := &distDomain.Record{
				RecordID:       id.NewID32(),
				InstallmentID:  target.ID,
				LoanID:         l.ID,
				LenderID:       a.LenderID,
				Gross:          a.Gross,
				PlatformFee:    a.Fee,
				Net:            a.Net,
				PrincipalShare: a.PrincipalShare,
				InterestShare:  a.InterestShare,
			}
			rows = append(rows, rec)
			dtos = append(dtos, DistributionDTO{
				RecordID:       rec.RecordID,
				LenderID:       rec.LenderID,
				Gross:          rec.Gross,
				PlatformFee:    rec.PlatformFee,
				Net:            rec.Net,
				PrincipalShare: rec.PrincipalShare,
				InterestShare:  rec.InterestShare,
			})
		}
		if err := r.Distributions.CreateBatch(ctx, rows); err != nil {
			return err
		}

		// final installment settled -> the loan is done
		if loanDomain.NextDue(installments) == nil {
			if err := l.SetStatus(loanDomain.StatusCompleted, time.Now()); err != nil {
				return err
			}
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
		}

		dto = &PaymentDTO{
			LoanID:            l.LoanID,
			InstallmentNumber: target.Number,
			InstallmentStatus: string(target.Status),
			PaidAt:            *target.PaidAt,
			LoanStatus:        string(l.Status),
			Distributions:     dtos,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
