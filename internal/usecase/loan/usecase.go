package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "peerfund-backend/internal/domain/loan"
	"peerfund-backend/internal/domain/uow"
	"peerfund-backend/pkg/annuity"
	"peerfund-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	repo domain.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(r domain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, uow: tx}
}

func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	// Same validation rules the schedule generator enforces, applied up
	// front so a bad application never reaches the database.
	switch {
	case in.Principal <= 0:
		return nil, annuity.ErrInvalidPrincipal
	case in.TermMonths <= 0:
		return nil, annuity.ErrInvalidTerm
	case in.AnnualRatePct < 0:
		return nil, annuity.ErrInvalidRate
	case in.PlatformFeeRate < 0 || in.PlatformFeeRate >= 1:
		return nil, fmt.Errorf("platform fee rate %v out of range", in.PlatformFeeRate)
	}

	// Block if the borrower already has a pending application.
	pending, err := u.repo.GetPendingLoanByBorrowerID(ctx, in.BorrowerID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s", domain.ErrPendingLoanExists, pending.LoanID)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	l := &domain.Loan{
		LoanID:          id.NewID32(),
		BorrowerID:      in.BorrowerID,
		Principal:       in.Principal,
		AnnualRatePct:   in.AnnualRatePct,
		TermMonths:      in.TermMonths,
		PlatformFeeRate: in.PlatformFeeRate,
		FundingTarget:   in.Principal,
		Status:          domain.StatusPendingApproval,
		StatusUpdatedAt: time.Now().UTC(),
	}
	if err := u.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(l), nil
}

// Approve moves a pending application to approved and records who signed
// off. Funding opens on the next step.
func (u *Usecase) Approve(ctx context.Context, in ApproveInput) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		if err := l.SetStatus(domain.StatusApproved, time.Now()); err != nil {
			return err
		}
		approvedAt := in.ApprovalDate.UTC()
		l.ApprovedBy = in.ValidatorEmployeeID
		l.ApprovedAt = &approvedAt
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Reject(ctx context.Context, loanID string) (*LoanDTO, error) {
	return u.transition(ctx, loanID, domain.StatusRejected)
}

func (u *Usecase) MarkDefaulted(ctx context.Context, loanID string) (*LoanDTO, error) {
	return u.transition(ctx, loanID, domain.StatusDefaulted)
}

func (u *Usecase) transition(ctx context.Context, loanID string, to domain.Status) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if err := l.SetStatus(to, time.Now()); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Activate turns a fully funded loan active and generates its repayment
// schedule. The schedule is written exactly once, inside the same
// transaction as the status flip.
func (u *Usecase) Activate(ctx context.Context, in ActivateInput) (*ScheduleDTO, error) {
	var dto *ScheduleDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		if err := l.SetStatus(domain.StatusActive, time.Now()); err != nil {
			return err
		}
		entries, err := annuity.Generate(l.Principal, l.AnnualRatePct, l.TermMonths, in.StartDate)
		if err != nil {
			return err
		}
		rows := make([]*domain.Installment, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, &domain.Installment{
				InstallmentID: id.NewID32(),
				LoanID:        l.ID,
				Number:        e.Number,
				DueDate:       e.DueDate,
				Principal:     e.Principal,
				Interest:      e.Interest,
				Total:         e.Total,
				Status:        domain.InstallmentPending,
			})
		}
		if err := r.Installments.CreateBatch(ctx, rows); err != nil {
			return err
		}
		startedAt := in.StartDate.UTC()
		l.ActivatedAt = &startedAt
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toScheduleDTO(l, rows)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) GetSchedule(ctx context.Context, loanID string) (*ScheduleDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var dto *ScheduleDTO
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		rows, err := r.Installments.ListByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return domain.ErrScheduleNotGenerated
		}
		ptrs := make([]*domain.Installment, len(rows))
		for i := range rows {
			ptrs[i] = &rows[i]
		}
		dto = toScheduleDTO(l, ptrs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
