package database

import (
	"tally/config"
	"tally/internal/domain"
	"tally/internal/models"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
		// Unique-constraint violations must surface as gorm.ErrDuplicatedKey:
		// the ledger's idempotency check depends on it.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Operator{},
		&models.Payee{},
		&models.Referral{},
		&models.Sale{},
		&models.Commission{},
		&models.Payout{},
		&models.Notification{},
	)
}

// SeedAdmin creates the bootstrap admin operator if none exists.
func SeedAdmin(db *gorm.DB, cfg *config.AdminConfig) {
	var count int64
	db.Model(&models.Operator{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("[Seed] hash admin password: %v", err)
		return
	}
	op := &models.Operator{
		Email:        cfg.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := db.Create(op).Error; err != nil {
		log.Errorf("[Seed] create admin: %v", err)
		return
	}
	log.Infof("[Seed] admin operator %s created", cfg.Email)
}
