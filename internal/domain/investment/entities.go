package investment

import (
	"errors"
	"sort"
	"time"

	"peerfund-backend/internal/domain/distribution"
)

var (
	ErrOverfunding   = errors.New("investment exceeds funding target")
	ErrFundingClosed = errors.New("loan is not open for funding")
	ErrInvalidAmount = errors.New("investment amount must be positive")
	ErrNoInvestments = errors.New("loan has no investments")
)

// Investment is append-only: corrections happen through new compensating
// rows, never edits.
type Investment struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"-"`
	InvestmentID string    `gorm:"size:32;uniqueIndex:ux_investments_public_id" json:"investment_id"`
	LoanID       uint64    `gorm:"column:loan_id;not null;index:idx_investments_loan" json:"-"`
	LenderID     string    `gorm:"size:32;not null;index:idx_investments_lender" json:"lender_id"`
	Amount       int64     `gorm:"type:bigint;not null" json:"amount"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Investment) TableName() string { return "investments" }

// Shares derives each lender's fraction of totalFunding from the current
// investment set, merging multiple investments by the same lender. Computed
// lazily at distribution time so the split always reflects the final funding
// composition. Output is sorted by lender id.
func Shares(invs []Investment, totalFunding int64) []distribution.Share {
	if totalFunding <= 0 || len(invs) == 0 {
		return nil
	}
	byLender := make(map[string]int64, len(invs))
	for _, inv := range invs {
		byLender[inv.LenderID] += inv.Amount
	}
	out := make([]distribution.Share, 0, len(byLender))
	for lender, amount := range byLender {
		out = append(out, distribution.Share{
			LenderID: lender,
			Fraction: float64(amount) / float64(totalFunding),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LenderID < out[j].LenderID })
	return out
}
