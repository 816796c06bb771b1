package repository

import (
	"tally/internal/domain"
	"tally/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PayoutRepository struct {
	db *gorm.DB
}

func NewPayoutRepository(db *gorm.DB) *PayoutRepository {
	return &PayoutRepository{db: db}
}

func (r *PayoutRepository) Create(tx *gorm.DB, p *models.Payout) error {
	return tx.Create(p).Error
}

func (r *PayoutRepository) ListByPayeeID(payeeID uint, limit, offset int) ([]models.Payout, error) {
	var list []models.Payout
	err := r.db.Where("payee_id = ?", payeeID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

// SumCompletedByPayeeID totals disbursed money only; a payout in a non-terminal
// or failed state has not left the balance.
func (r *PayoutRepository) SumCompletedByPayeeID(payeeID uint) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.Model(&models.Payout{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("payee_id = ? AND status IN ?", payeeID, []string{
			domain.PayoutStatusManualCompleted,
			domain.PayoutStatusStripeCompleted,
		}).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
