package repository

import (
	"time"

	"tally/internal/domain"
	"tally/internal/models"

	"gorm.io/gorm"
)

type ReferralRepository struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

func (r *ReferralRepository) Create(ref *models.Referral) error {
	return r.db.Create(ref).Error
}

// GetByCustomerID returns the referral binding for a customer, or
// gorm.ErrRecordNotFound if the customer was never referred.
func (r *ReferralRepository) GetByCustomerID(customerID string) (*models.Referral, error) {
	var ref models.Referral
	if err := r.db.Where("customer_id = ?", customerID).First(&ref).Error; err != nil {
		return nil, err
	}
	return &ref, nil
}

// Convert moves a referral PENDING -> CONVERTED. The status filter makes the
// transition one-way and repeatable: a second call matches zero rows and
// reports converted=false without touching anything.
func (r *ReferralRepository) Convert(tx *gorm.DB, referralID uint) (bool, error) {
	now := time.Now()
	res := tx.Model(&models.Referral{}).
		Where("id = ? AND status = ?", referralID, domain.ReferralStatusPending).
		Updates(map[string]interface{}{
			"status":       domain.ReferralStatusConverted,
			"converted_at": &now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ReferralRepository) ListByPayeeID(payeeID uint, limit, offset int) ([]models.Referral, error) {
	var list []models.Referral
	err := r.db.Where("payee_id = ?", payeeID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}
