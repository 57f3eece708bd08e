package mysql

import (
	"context"

	distDomain "peerfund-backend/internal/domain/distribution"

	"gorm.io/gorm"
)

type DistributionRepository struct{ db *gorm.DB }

func NewDistributionRepository(db *gorm.DB) *DistributionRepository {
	return &DistributionRepository{db: db}
}

func (r *DistributionRepository) CreateBatch(ctx context.Context, rows []*distDomain.Record) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(rows).Error
}

func (r *DistributionRepository) ListByInstallmentID(ctx context.Context, installmentID uint64) ([]distDomain.Record, error) {
	var out []distDomain.Record
	res := r.db.WithContext(ctx).
		Where("installment_id = ?", installmentID).
		Order("lender_id ASC").
		Find(&out)
	return out, res.Error
}

func (r *DistributionRepository) ListByLenderID(ctx context.Context, lenderID string) ([]distDomain.Record, error) {
	var out []distDomain.Record
	res := r.db.WithContext(ctx).
		Where("lender_id = ?", lenderID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *DistributionRepository) ExistsForInstallment(ctx context.Context, installmentID uint64) (bool, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&distDomain.Record{}).
		Where("installment_id = ?", installmentID).
		Count(&n)
	return n > 0, res.Error
}
