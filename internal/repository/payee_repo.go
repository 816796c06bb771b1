package repository

import (
	"errors"

	"tally/internal/domain"
	"tally/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PayeeRepository struct {
	db *gorm.DB
}

func NewPayeeRepository(db *gorm.DB) *PayeeRepository {
	return &PayeeRepository{db: db}
}

func (r *PayeeRepository) Create(p *models.Payee) error {
	return r.db.Create(p).Error
}

func (r *PayeeRepository) GetByID(id uint) (*models.Payee, error) {
	var p models.Payee
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPayeeNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PayeeRepository) List(limit, offset int) ([]models.Payee, error) {
	var list []models.Payee
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

// CreditBalance applies a signed delta to the payee balance as a single atomic
// UPDATE. There is no floor on this path: negative deltas from adjustments may
// drive the balance below zero. Callers pass the transaction handle so the
// delta commits or rolls back together with the ledger entry.
func (r *PayeeRepository) CreditBalance(tx *gorm.DB, payeeID uint, amount decimal.Decimal) error {
	res := tx.Model(&models.Payee{}).
		Where("id = ?", payeeID).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPayeeNotFound
	}
	return nil
}

// DebitBalance subtracts amount only when the balance covers it. The condition
// lives in the UPDATE itself, so two concurrent payouts cannot both pass a
// stale balance check and overdraw the account.
func (r *PayeeRepository) DebitBalance(tx *gorm.DB, payeeID uint, amount decimal.Decimal) error {
	res := tx.Model(&models.Payee{}).
		Where("id = ? AND balance >= ?", payeeID, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInsufficientBalance
	}
	return nil
}
