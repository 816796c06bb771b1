package repository

import (
	"tally/internal/models"

	"gorm.io/gorm"
)

type SaleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// Create records the sale fact. A redelivered event trips the unique index on
// event_id and surfaces as gorm.ErrDuplicatedKey; callers treat that as
// "already recorded", not as a failure.
func (r *SaleRepository) Create(s *models.Sale) error {
	return r.db.Create(s).Error
}

func (r *SaleRepository) GetByEventID(eventID string) (*models.Sale, error) {
	var s models.Sale
	if err := r.db.Where("event_id = ?", eventID).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
