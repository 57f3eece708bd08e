package loan

import (
	"time"

	domain "peerfund-backend/internal/domain/loan"
)

type CreateLoanInput struct {
	BorrowerID      string  `json:"borrower_id"`
	Principal       int64   `json:"principal"`
	AnnualRatePct   float64 `json:"annual_rate_pct"`
	TermMonths      int     `json:"term_months"`
	PlatformFeeRate float64 `json:"platform_fee_rate"`
}

type ApproveInput struct {
	LoanID              string
	ValidatorEmployeeID string    // 32-char hex
	ApprovalDate        time.Time // date-only is fine; stored as .UTC()
}

type ActivateInput struct {
	LoanID    string
	StartDate time.Time // due dates run startDate + k calendar months
}

type LoanDTO struct {
	LoanID          string     `json:"loan_id"`
	BorrowerID      string     `json:"borrower_id"`
	Principal       int64      `json:"principal"`
	AnnualRatePct   float64    `json:"annual_rate_pct"`
	TermMonths      int        `json:"term_months"`
	PlatformFeeRate float64    `json:"platform_fee_rate"`
	FundingTarget   int64      `json:"funding_target"`
	CurrentFunding  int64      `json:"current_funding"`
	Status          string     `json:"status"`
	ActivatedAt     *time.Time `json:"activated_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type InstallmentDTO struct {
	InstallmentID string     `json:"installment_id"`
	Number        int        `json:"number"`
	DueDate       string     `json:"due_date"` // YYYY-MM-DD
	Principal     int64      `json:"principal"`
	Interest      int64      `json:"interest"`
	Total         int64      `json:"total"`
	Status        string     `json:"status"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}

type ScheduleDTO struct {
	LoanID       string           `json:"loan_id"`
	Installments []InstallmentDTO `json:"installments"`
}

func toDTO(l *domain.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:          l.LoanID,
		BorrowerID:      l.BorrowerID,
		Principal:       l.Principal,
		AnnualRatePct:   l.AnnualRatePct,
		TermMonths:      l.TermMonths,
		PlatformFeeRate: l.PlatformFeeRate,
		FundingTarget:   l.FundingTarget,
		CurrentFunding:  l.CurrentFunding,
		Status:          string(l.Status),
		ActivatedAt:     l.ActivatedAt,
		CreatedAt:       l.CreatedAt,
	}
}

func toInstallmentDTO(i *domain.Installment) InstallmentDTO {
	return InstallmentDTO{
		InstallmentID: i.InstallmentID,
		Number:        i.Number,
		DueDate:       i.DueDate.Format("2006-01-02"),
		Principal:     i.Principal,
		Interest:      i.Interest,
		Total:         i.Total,
		Status:        string(i.Status),
		PaidAt:        i.PaidAt,
	}
}

func toScheduleDTO(l *domain.Loan, rows []*domain.Installment) *ScheduleDTO {
	out := &ScheduleDTO{LoanID: l.LoanID, Installments: make([]InstallmentDTO, 0, len(rows))}
	for _, r := range rows {
		out.Installments = append(out.Installments, toInstallmentDTO(r))
	}
	return out
}
