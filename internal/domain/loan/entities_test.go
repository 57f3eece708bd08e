package loan

import (
	"errors"
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPendingApproval, StatusApproved},
		{StatusApproved, StatusFunding},
		{StatusFunding, StatusFunded},
		{StatusFunded, StatusActive},
		{StatusActive, StatusCompleted},
		{StatusPendingApproval, StatusRejected},
		{StatusActive, StatusDefaulted},
	}
	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Fatalf("%s -> %s must be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to Status }{
		{StatusApproved, StatusPendingApproval}, // no going back
		{StatusPendingApproval, StatusFunding},  // no skipping
		{StatusPendingApproval, StatusActive},
		{StatusFunding, StatusActive},
		{StatusApproved, StatusRejected},    // reject only before approval
		{StatusFunding, StatusDefaulted},    // default only after disbursal
		{StatusCompleted, StatusActive},     // terminal
		{StatusRejected, StatusApproved},    // terminal
		{StatusDefaulted, StatusCompleted},  // terminal
	}
	for _, tc := range denied {
		if CanTransition(tc.from, tc.to) {
			t.Fatalf("%s -> %s must be denied", tc.from, tc.to)
		}
	}
}

func TestSetStatus_GuardsAndStamps(t *testing.T) {
	l := &Loan{Status: StatusPendingApproval}
	now := time.Date(2024, time.January, 2, 10, 0, 0, 0, time.UTC)

	if err := l.SetStatus(StatusApproved, now); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if l.Status != StatusApproved || !l.StatusUpdatedAt.Equal(now) {
		t.Fatalf("loan after transition: %+v", l)
	}

	if err := l.SetStatus(StatusActive, now); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
	if l.Status != StatusApproved {
		t.Fatalf("failed transition must not change status, got %s", l.Status)
	}
}

func TestMarkPaid(t *testing.T) {
	due := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	onTime := &Installment{DueDate: due, Status: InstallmentPending}
	if err := onTime.MarkPaid(due); err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	if onTime.Status != InstallmentPaidOnTime || onTime.PaidAt == nil {
		t.Fatalf("on-time installment: %+v", onTime)
	}

	late := &Installment{DueDate: due, Status: InstallmentPending}
	if err := late.MarkPaid(due.AddDate(0, 0, 1)); err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	if late.Status != InstallmentPaidLate {
		t.Fatalf("late installment status = %s", late.Status)
	}

	// paid installments are immutable
	if err := onTime.MarkPaid(due); !errors.Is(err, ErrAlreadyPaid) {
		t.Fatalf("err = %v, want ErrAlreadyPaid", err)
	}
}

func TestNextDue(t *testing.T) {
	rows := []Installment{
		{Number: 1, Status: InstallmentPaidOnTime},
		{Number: 2, Status: InstallmentPaidLate},
		{Number: 3, Status: InstallmentPending},
		{Number: 4, Status: InstallmentPending},
	}
	next := NextDue(rows)
	if next == nil || next.Number != 3 {
		t.Fatalf("NextDue = %+v, want installment 3", next)
	}

	rows[2].Status = InstallmentPaidOnTime
	rows[3].Status = InstallmentPaidOnTime
	if next := NextDue(rows); next != nil {
		t.Fatalf("NextDue on settled schedule = %+v, want nil", next)
	}
}
