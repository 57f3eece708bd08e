package loan

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPendingApproval Status = "pending_approval"
	StatusApproved        Status = "approved"
	StatusFunding         Status = "funding"
	StatusFunded          Status = "funded"
	StatusActive          Status = "active"
	StatusCompleted       Status = "completed"
	StatusDefaulted       Status = "defaulted"
	StatusRejected        Status = "rejected"
)

var (
	ErrNotFound             = errors.New("loan not found")
	ErrInvalidTransition    = errors.New("invalid loan state transition")
	ErrNotActive            = errors.New("loan is not active")
	ErrInstallmentNotFound  = errors.New("installment not found")
	ErrAlreadyPaid          = errors.New("installment already paid")
	ErrOutOfOrderPayment    = errors.New("earlier installment still pending")
	ErrAmountMismatch       = errors.New("payment amount does not match installment total")
	ErrPendingLoanExists    = errors.New("borrower already has a pending loan")
	ErrScheduleNotGenerated = errors.New("repayment schedule not generated")
)

// statusRank orders the happy path; terminal branches (rejected, defaulted)
// are handled explicitly in CanTransition. Transitions never move backward.
var statusRank = map[Status]int{
	StatusPendingApproval: 0,
	StatusApproved:        1,
	StatusFunding:         2,
	StatusFunded:          3,
	StatusActive:          4,
	StatusCompleted:       5,
}

func CanTransition(from, to Status) bool {
	switch to {
	case StatusRejected:
		return from == StatusPendingApproval
	case StatusDefaulted:
		return from == StatusActive
	}
	rf, okF := statusRank[from]
	rt, okT := statusRank[to]
	return okF && okT && rt == rf+1
}

// Loan holds all money columns as int64 minor units so schedule and
// distribution arithmetic stays exact.
type Loan struct {
	ID              uint64         `gorm:"primaryKey;column:id" json:"-"`
	LoanID          string         `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	BorrowerID      string         `gorm:"size:32;index:idx_loans_borrower_active" json:"borrower_id"`
	Principal       int64          `gorm:"type:bigint;not null" json:"principal"`
	AnnualRatePct   float64        `gorm:"column:annual_rate_pct;type:decimal(6,3)" json:"annual_rate_pct"`
	TermMonths      int            `gorm:"column:term_months;not null" json:"term_months"`
	PlatformFeeRate float64        `gorm:"column:platform_fee_rate;type:decimal(6,4)" json:"platform_fee_rate"`
	FundingTarget   int64          `gorm:"type:bigint;not null" json:"funding_target"`
	CurrentFunding  int64          `gorm:"type:bigint;not null;default:0" json:"current_funding"`
	Status          Status         `gorm:"type:enum('pending_approval','approved','funding','funded','active','completed','defaulted','rejected');default:'pending_approval'" json:"status"`
	ApprovedBy      string         `gorm:"size:32" json:"-"`
	ApprovedAt      *time.Time     `json:"approved_at,omitempty"`
	FundedAt        *time.Time     `json:"funded_at,omitempty"`
	ActivatedAt     *time.Time     `json:"activated_at,omitempty"`
	StatusUpdatedAt time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	DeletedBy       string         `gorm:"size:32" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// SetStatus guards forward-only transitions.
func (l *Loan) SetStatus(to Status, now time.Time) error {
	if !CanTransition(l.Status, to) {
		return ErrInvalidTransition
	}
	l.Status = to
	l.StatusUpdatedAt = now.UTC()
	return nil
}

type InstallmentStatus string

const (
	InstallmentPending    InstallmentStatus = "pending"
	InstallmentPaidOnTime InstallmentStatus = "paid_on_time"
	InstallmentPaidLate   InstallmentStatus = "paid_late"
)

func (s InstallmentStatus) Paid() bool { return s != InstallmentPending }

// Installment is one row of a loan's repayment schedule. Rows are written
// once at activation; only status/paid_at change afterwards.
type Installment struct {
	ID            uint64            `gorm:"primaryKey;column:id" json:"-"`
	InstallmentID string            `gorm:"size:32;uniqueIndex:ux_installments_public_id" json:"installment_id"`
	LoanID        uint64            `gorm:"column:loan_id;not null;uniqueIndex:ux_installments_loan_seq,priority:1" json:"-"`
	Number        int               `gorm:"column:seq_no;not null;uniqueIndex:ux_installments_loan_seq,priority:2" json:"number"`
	DueDate       time.Time         `gorm:"column:due_date;type:date;not null" json:"due_date"`
	Principal     int64             `gorm:"type:bigint;not null" json:"principal"`
	Interest      int64             `gorm:"type:bigint;not null" json:"interest"`
	Total         int64             `gorm:"type:bigint;not null" json:"total"`
	Status        InstallmentStatus `gorm:"type:enum('pending','paid_on_time','paid_late');default:'pending'" json:"status"`
	PaidAt        *time.Time        `gorm:"column:paid_at" json:"paid_at,omitempty"`
	CreatedAt     time.Time         `gorm:"autoCreateTime" json:"-"`
	UpdatedAt     time.Time         `gorm:"autoUpdateTime" json:"-"`
}

func (Installment) TableName() string { return "installments" }

// MarkPaid flips a pending installment, choosing on-time vs late by the
// paid date. Paid installments are immutable.
func (i *Installment) MarkPaid(paidDate time.Time) error {
	if i.Status.Paid() {
		return ErrAlreadyPaid
	}
	paidDate = paidDate.UTC()
	if paidDate.After(i.DueDate) {
		i.Status = InstallmentPaidLate
	} else {
		i.Status = InstallmentPaidOnTime
	}
	i.PaidAt = &paidDate
	return nil
}

// NextDue returns the lowest-numbered pending installment, or nil when the
// whole schedule is settled (the loan is then eligible for completion).
func NextDue(installments []Installment) *Installment {
	for idx := range installments {
		if !installments[idx].Status.Paid() {
			return &installments[idx]
		}
	}
	return nil
}
