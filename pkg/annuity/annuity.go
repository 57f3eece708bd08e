// Package annuity generates level-payment repayment schedules over whole
// minor units (cents, rupiah). All rounding happens here, once, at schedule
// generation; everything downstream works with the exact integers this
// package produced.
package annuity

import (
	"errors"
	"math"
	"time"
)

var (
	ErrInvalidPrincipal = errors.New("principal must be positive")
	ErrInvalidTerm      = errors.New("term must be at least one month")
	ErrInvalidRate      = errors.New("annual rate must not be negative")
)

// Entry is one row of a repayment schedule.
type Entry struct {
	Number    int
	DueDate   time.Time
	Principal int64
	Interest  int64
	Total     int64
}

// Generate builds an n-month annuity schedule: equal monthly payments of
// M = P·r·(1+r)^n / ((1+r)^n − 1) at monthly rate r = annualRatePercent/100/12,
// or M = P/n when the rate is zero. Each month's interest accrues on the
// remaining balance; the final installment repays the remaining balance
// exactly, absorbing all accumulated rounding. Principals always sum to the
// principal, to the unit.
//
// Due dates run start + k calendar months, clamping to the last day of
// shorter months (Jan 31 → Feb 28/29).
func Generate(principal int64, annualRatePercent float64, termMonths int, start time.Time) ([]Entry, error) {
	switch {
	case principal <= 0:
		return nil, ErrInvalidPrincipal
	case termMonths <= 0:
		return nil, ErrInvalidTerm
	case annualRatePercent < 0:
		return nil, ErrInvalidRate
	}

	r := annualRatePercent / 100 / 12
	var payment float64
	if r == 0 {
		payment = float64(principal) / float64(termMonths)
	} else {
		pow := math.Pow(1+r, float64(termMonths))
		payment = float64(principal) * r * pow / (pow - 1)
	}

	out := make([]Entry, 0, termMonths)
	balance := principal
	for k := 1; k <= termMonths; k++ {
		interest := round(float64(balance) * r)
		var prin int64
		if k == termMonths {
			prin = balance
		} else {
			prin = round(payment) - interest
		}
		balance -= prin
		out = append(out, Entry{
			Number:    k,
			DueDate:   AddMonths(start, k),
			Principal: prin,
			Interest:  interest,
			Total:     prin + interest,
		})
	}
	return out, nil
}

// AddMonths moves t forward n calendar months, clamping the day-of-month to
// the target month's length instead of letting time.AddDate spill into the
// next month.
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()
	first := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if dim := daysIn(first.Year(), first.Month()); day > dim {
		day = dim
	}
	return time.Date(first.Year(), first.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

// daysIn: day 0 of the following month is the last day of this one.
func daysIn(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func round(x float64) int64 { return int64(math.Round(x)) }
