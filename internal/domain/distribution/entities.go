package distribution

import (
	"errors"
	"math"
	"sort"
	"time"
)

var ErrAlreadyDistributed = errors.New("installment already distributed")

// Share is a lender's fractional ownership of a loan's funding.
type Share struct {
	LenderID string
	Fraction float64
}

// Allocation is one lender's cut of a single installment.
// PrincipalShare + InterestShare == Gross and Gross - Fee == Net, exactly.
type Allocation struct {
	LenderID       string
	Gross          int64
	Fee            int64
	Net            int64
	PrincipalShare int64
	InterestShare  int64
}

// Split divides an installment among lenders proportionally to their shares,
// net of the platform fee. Lenders with a zero share get no allocation.
//
// Each gross is rounded independently, so the rounded grosses can drift from
// the installment total by a few minor units. The whole residual goes to the
// largest share; ties break to the lexicographically smallest lender id, so
// the same inputs always produce the same split. After that correction
// Σ gross == total, exactly.
func Split(total, principal int64, shares []Share, feeRate float64) []Allocation {
	active := make([]Share, 0, len(shares))
	for _, s := range shares {
		if s.Fraction > 0 {
			active = append(active, s)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].LenderID < active[j].LenderID })
	if len(active) == 0 {
		return nil
	}

	out := make([]Allocation, len(active))
	var sumGross int64
	residualIdx := 0
	for i, s := range active {
		g := round(float64(total) * s.Fraction)
		out[i] = Allocation{LenderID: s.LenderID, Gross: g}
		sumGross += g
		// first strict max wins: slice is sorted by lender id, so ties
		// already resolve to the smallest id
		if s.Fraction > active[residualIdx].Fraction {
			residualIdx = i
		}
	}
	out[residualIdx].Gross += total - sumGross

	for i := range out {
		a := &out[i]
		a.Fee = round(float64(a.Gross) * feeRate)
		a.Net = a.Gross - a.Fee
		a.PrincipalShare = round(float64(principal) * active[i].Fraction)
		if a.PrincipalShare > a.Gross {
			a.PrincipalShare = a.Gross
		}
		a.InterestShare = a.Gross - a.PrincipalShare
	}
	return out
}

func round(x float64) int64 { return int64(math.Round(x)) }

// Record is the persisted form of an Allocation: one row per
// (installment, lender), written exactly once when the installment is paid.
type Record struct {
	ID             uint64    `gorm:"primaryKey;column:id" json:"-"`
	RecordID       string    `gorm:"size:32;uniqueIndex:ux_distributions_public_id" json:"record_id"`
	InstallmentID  uint64    `gorm:"column:installment_id;not null;uniqueIndex:ux_distributions_inst_lender,priority:1" json:"-"`
	LoanID         uint64    `gorm:"column:loan_id;not null;index" json:"-"`
	LenderID       string    `gorm:"size:32;not null;uniqueIndex:ux_distributions_inst_lender,priority:2;index:idx_distributions_lender" json:"lender_id"`
	Gross          int64     `gorm:"type:bigint;not null" json:"gross"`
	PlatformFee    int64     `gorm:"column:platform_fee;type:bigint;not null" json:"platform_fee"`
	Net            int64     `gorm:"type:bigint;not null" json:"net"`
	PrincipalShare int64     `gorm:"type:bigint;not null" json:"principal_share"`
	InterestShare  int64     `gorm:"type:bigint;not null" json:"interest_share"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Record) TableName() string { return "distributions" }
