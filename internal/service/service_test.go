package service

import (
	"fmt"
	"strings"
	"testing"

	"tally/internal/database"
	"tally/internal/models"
	"tally/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory database with the same error
// translation the production config uses, so unique-key violations behave
// identically.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

type testEnv struct {
	db             *gorm.DB
	payeeRepo      *repository.PayeeRepository
	referralRepo   *repository.ReferralRepository
	saleRepo       *repository.SaleRepository
	commissionRepo *repository.CommissionRepository
	payoutRepo     *repository.PayoutRepository
	ledger         *LedgerService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	payeeRepo := repository.NewPayeeRepository(db)
	notifSvc := NewNotificationService(repository.NewNotificationRepository(db))
	commissionRepo := repository.NewCommissionRepository(db)
	return &testEnv{
		db:             db,
		payeeRepo:      payeeRepo,
		referralRepo:   repository.NewReferralRepository(db),
		saleRepo:       repository.NewSaleRepository(db),
		commissionRepo: commissionRepo,
		payoutRepo:     repository.NewPayoutRepository(db),
		ledger:         NewLedgerService(db, payeeRepo, commissionRepo, notifSvc),
	}
}

func (e *testEnv) makePayee(t *testing.T, payeeType string, rate, balance string, destination string) *models.Payee {
	t.Helper()
	p := &models.Payee{
		Name:                "Payee " + payeeType,
		Email:               fmt.Sprintf("%s-%d@example.com", strings.ToLower(payeeType), seq()),
		Type:                payeeType,
		RatePercent:         mustDecimal(t, rate),
		Balance:             mustDecimal(t, balance),
		TransferDestination: destination,
	}
	require.NoError(t, e.payeeRepo.Create(p))
	return p
}

func (e *testEnv) balance(t *testing.T, payeeID uint) decimal.Decimal {
	t.Helper()
	p, err := e.payeeRepo.GetByID(payeeID)
	require.NoError(t, err)
	return p.Balance
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

var seqCounter int

func seq() int {
	seqCounter++
	return seqCounter
}
