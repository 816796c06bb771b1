package repository

import (
	"tally/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CommissionRepository struct {
	db *gorm.DB
}

func NewCommissionRepository(db *gorm.DB) *CommissionRepository {
	return &CommissionRepository{db: db}
}

// Create inserts inside the caller's transaction. The unique index on event_id
// rejects a duplicate idempotency key with gorm.ErrDuplicatedKey.
func (r *CommissionRepository) Create(tx *gorm.DB, c *models.Commission) error {
	return tx.Create(c).Error
}

func (r *CommissionRepository) GetByEventID(eventID string) (*models.Commission, error) {
	var c models.Commission
	if err := r.db.Where("event_id = ?", eventID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommissionRepository) ListByPayeeID(payeeID uint, limit, offset int) ([]models.Commission, error) {
	var list []models.Commission
	err := r.db.Where("payee_id = ?", payeeID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

// SumByPayeeID totals all commission amounts for a payee, earned and adjusted
// alike. Used with SumCompletedPayouts to audit the balance invariant.
func (r *CommissionRepository) SumByPayeeID(payeeID uint) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.Model(&models.Commission{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("payee_id = ?", payeeID).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
