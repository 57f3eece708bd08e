package mysql

import (
	"context"

	invDomain "peerfund-backend/internal/domain/investment"

	"gorm.io/gorm"
)

type InvestmentRepository struct{ db *gorm.DB }

func NewInvestmentRepository(db *gorm.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

func (r *InvestmentRepository) Create(ctx context.Context, inv *invDomain.Investment) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *InvestmentRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]invDomain.Investment, error) {
	var out []invDomain.Investment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *InvestmentRepository) ListByLenderID(ctx context.Context, lenderID string) ([]invDomain.Investment, error) {
	var out []invDomain.Investment
	res := r.db.WithContext(ctx).
		Where("lender_id = ?", lenderID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *InvestmentRepository) ListLenderIDs(ctx context.Context) ([]string, error) {
	var out []string
	res := r.db.WithContext(ctx).
		Model(&invDomain.Investment{}).
		Distinct("lender_id").
		Order("lender_id ASC").
		Pluck("lender_id", &out)
	return out, res.Error
}
