// Package portfolio rolls distribution records and schedule projections up
// into per-lender and per-borrower summaries. Everything here is derived on
// read from loans + installments + investments + distributions; there are no
// separately maintained running totals that could drift.
package portfolio

import (
	"context"
	"errors"
	"sort"
	"time"

	distDomain "peerfund-backend/internal/domain/distribution"
	invDomain "peerfund-backend/internal/domain/investment"
	loanDomain "peerfund-backend/internal/domain/loan"

	"gorm.io/gorm"
)

var ErrUnknownLender = errors.New("lender has no investments")

type Usecase struct {
	loans         loanDomain.Repository
	installments  loanDomain.InstallmentRepository
	investments   invDomain.Repository
	distributions distDomain.Repository
}

func NewUsecase(
	loans loanDomain.Repository,
	installments loanDomain.InstallmentRepository,
	investments invDomain.Repository,
	distributions distDomain.Repository,
) *Usecase {
	return &Usecase{
		loans:         loans,
		installments:  installments,
		investments:   investments,
		distributions: distributions,
	}
}

type LenderLoanBreakdown struct {
	LoanID       string  `json:"loan_id"`
	LoanStatus   string  `json:"loan_status"`
	Invested     int64   `json:"invested"`
	Share        float64 `json:"share"`
	NetReceived  int64   `json:"net_received"`
	NetProjected int64   `json:"net_projected"`
}

type LenderSummary struct {
	LenderID            string                `json:"lender_id"`
	TotalInvested       int64                 `json:"total_invested"`
	TotalReceived       int64                 `json:"total_received"`
	TotalPlatformFees   int64                 `json:"total_platform_fees"`
	ExpectedTotalReturn int64                 `json:"expected_total_return"`
	ROI                 float64               `json:"roi"`
	Loans               []LenderLoanBreakdown `json:"loans"`
}

type BorrowerLoanBreakdown struct {
	LoanID      string `json:"loan_id"`
	LoanStatus  string `json:"loan_status"`
	Principal   int64  `json:"principal"`
	Paid        int64  `json:"paid"`
	Outstanding int64  `json:"outstanding"`
	OnTime      int    `json:"on_time"`
	Late        int    `json:"late"`
}

type BorrowerSummary struct {
	BorrowerID       string                  `json:"borrower_id"`
	TotalBorrowed    int64                   `json:"total_borrowed"`
	TotalPaid        int64                   `json:"total_paid"`
	TotalOutstanding int64                   `json:"total_outstanding"`
	ActiveLoans      int                     `json:"active_loans"`
	OnTimePayments   int                     `json:"on_time_payments"`
	LatePayments     int                     `json:"late_payments"`
	CreditScoreTrend []float64               `json:"credit_score_trend"`
	Loans            []BorrowerLoanBreakdown `json:"loans"`
}

// SummarizeLender reports realized and projected returns for one lender.
// ROI is computed over distributions actually received; the expected total
// return adds hypothetical splits of the remaining pending installments,
// which are never persisted.
func (u *Usecase) SummarizeLender(ctx context.Context, lenderID string) (*LenderSummary, error) {
	invs, err := u.investments.ListByLenderID(ctx, lenderID)
	if err != nil {
		return nil, err
	}
	if len(invs) == 0 {
		return nil, ErrUnknownLender
	}

	out := &LenderSummary{LenderID: lenderID}
	investedByLoan := make(map[uint64]int64)
	for _, inv := range invs {
		out.TotalInvested += inv.Amount
		investedByLoan[inv.LoanID] += inv.Amount
	}

	dists, err := u.distributions.ListByLenderID(ctx, lenderID)
	if err != nil {
		return nil, err
	}
	receivedByLoan := make(map[uint64]int64)
	for _, d := range dists {
		out.TotalReceived += d.Net
		out.TotalPlatformFees += d.PlatformFee
		receivedByLoan[d.LoanID] += d.Net
	}

	loanIDs := make([]uint64, 0, len(investedByLoan))
	for lid := range investedByLoan {
		loanIDs = append(loanIDs, lid)
	}
	sort.Slice(loanIDs, func(i, j int) bool { return loanIDs[i] < loanIDs[j] })

	for _, lid := range loanIDs {
		l, err := u.loans.GetByID(ctx, lid)
		if err != nil {
			return nil, err
		}
		projected, share, err := u.projectLoan(ctx, l, lenderID)
		if err != nil {
			return nil, err
		}
		out.ExpectedTotalReturn += projected
		out.Loans = append(out.Loans, LenderLoanBreakdown{
			LoanID:       l.LoanID,
			LoanStatus:   string(l.Status),
			Invested:     investedByLoan[lid],
			Share:        share,
			NetReceived:  receivedByLoan[lid],
			NetProjected: projected,
		})
	}
	out.ExpectedTotalReturn += out.TotalReceived

	if out.TotalInvested > 0 {
		out.ROI = (float64(out.TotalReceived) - float64(out.TotalInvested)) / float64(out.TotalInvested) * 100
	}
	return out, nil
}

// projectLoan runs the distribution split hypothetically over the loan's
// remaining pending installments and returns this lender's net take plus
// their share fraction. Nothing is written.
func (u *Usecase) projectLoan(ctx context.Context, l *loanDomain.Loan, lenderID string) (int64, float64, error) {
	invs, err := u.investments.ListByLoanID(ctx, l.ID)
	if err != nil {
		return 0, 0, err
	}
	shares := invDomain.Shares(invs, l.CurrentFunding)
	var fraction float64
	for _, s := range shares {
		if s.LenderID == lenderID {
			fraction = s.Fraction
		}
	}

	if l.Status != loanDomain.StatusActive {
		return 0, fraction, nil
	}
	installments, err := u.installments.ListByLoanID(ctx, l.ID)
	if err != nil {
		return 0, fraction, err
	}
	var projected int64
	for idx := range installments {
		row := &installments[idx]
		if row.Status.Paid() {
			continue
		}
		for _, a := range distDomain.Split(row.Total, row.Principal, shares, l.PlatformFeeRate) {
			if a.LenderID == lenderID {
				projected += a.Net
			}
		}
	}
	return projected, fraction, nil
}

// SummarizeBorrower reports repayment progress across all of a borrower's
// loans. The credit score trend is the cumulative on-time ratio after each
// settled installment, ordered by paid date; the scoring model itself is an
// external concern.
func (u *Usecase) SummarizeBorrower(ctx context.Context, borrowerID string) (*BorrowerSummary, error) {
	loans, err := u.loans.ListByBorrowerID(ctx, borrowerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanDomain.ErrNotFound
		}
		return nil, err
	}
	if len(loans) == 0 {
		return nil, loanDomain.ErrNotFound
	}

	out := &BorrowerSummary{BorrowerID: borrowerID}
	type paidEvent struct {
		at     time.Time
		onTime bool
	}
	var events []paidEvent

	for i := range loans {
		l := &loans[i]
		disbursed := l.Status == loanDomain.StatusActive ||
			l.Status == loanDomain.StatusCompleted ||
			l.Status == loanDomain.StatusDefaulted
		if !disbursed {
			continue
		}
		if l.Status == loanDomain.StatusActive {
			out.ActiveLoans++
		}
		out.TotalBorrowed += l.Principal

		installments, err := u.installments.ListByLoanID(ctx, l.ID)
		if err != nil {
			return nil, err
		}
		b := BorrowerLoanBreakdown{
			LoanID:     l.LoanID,
			LoanStatus: string(l.Status),
			Principal:  l.Principal,
		}
		for idx := range installments {
			row := &installments[idx]
			switch row.Status {
			case loanDomain.InstallmentPaidOnTime:
				b.Paid += row.Total
				b.OnTime++
				events = append(events, paidEvent{at: *row.PaidAt, onTime: true})
			case loanDomain.InstallmentPaidLate:
				b.Paid += row.Total
				b.Late++
				events = append(events, paidEvent{at: *row.PaidAt, onTime: false})
			default:
				b.Outstanding += row.Total
			}
		}
		out.TotalPaid += b.Paid
		out.TotalOutstanding += b.Outstanding
		out.OnTimePayments += b.OnTime
		out.LatePayments += b.Late
		out.Loans = append(out.Loans, b)
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].at.Before(events[j].at) })
	onTime := 0
	for i, e := range events {
		if e.onTime {
			onTime++
		}
		out.CreditScoreTrend = append(out.CreditScoreTrend, float64(onTime)/float64(i+1))
	}
	return out, nil
}
