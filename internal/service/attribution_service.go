package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tally/internal/domain"
	"tally/internal/models"
	"tally/internal/repository"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SaleEvent is the payload of the upstream payment provider's callback.
type SaleEvent struct {
	EventID     string          `json:"event_id"`
	CustomerID  string          `json:"customer_id"`
	PlanID      string          `json:"plan_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	CompletedAt time.Time       `json:"completed_at"`
}

// AttributionService resolves who, if anyone, earns a commission on a
// completed sale.
type AttributionService struct {
	db            *gorm.DB
	saleRepo      *repository.SaleRepository
	referralRepo  *repository.ReferralRepository
	payeeRepo     *repository.PayeeRepository
	ledger        *LedgerService
	affiliateRate decimal.Decimal
}

func NewAttributionService(
	db *gorm.DB,
	saleRepo *repository.SaleRepository,
	referralRepo *repository.ReferralRepository,
	payeeRepo *repository.PayeeRepository,
	ledger *LedgerService,
	affiliateRate decimal.Decimal,
) *AttributionService {
	return &AttributionService{
		db:            db,
		saleRepo:      saleRepo,
		referralRepo:  referralRepo,
		payeeRepo:     payeeRepo,
		ledger:        ledger,
		affiliateRate: affiliateRate,
	}
}

// ProcessSale records the sale and credits the referring payee, if the customer
// has a referral. A customer without a referral is not an error - the sale is
// retained by the platform. Returns the commission, or nil when none applies.
//
// Malformed events are rejected with domain.ErrInvalidSale and no side effects;
// the caller must not retry them.
func (s *AttributionService) ProcessSale(ctx context.Context, ev SaleEvent) (*models.Commission, error) {
	if ev.EventID == "" || ev.CustomerID == "" || !ev.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: event_id=%q customer_id=%q amount=%s",
			domain.ErrInvalidSale, ev.EventID, ev.CustomerID, ev.Amount)
	}

	sale := &models.Sale{
		EventID:     ev.EventID,
		CustomerID:  ev.CustomerID,
		PlanID:      ev.PlanID,
		GrossAmount: ev.Amount,
		Currency:    ev.Currency,
		CompletedAt: ev.CompletedAt,
	}
	if err := s.saleRepo.Create(sale); err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		log.Infof("[Attribution] sale event %s redelivered", ev.EventID)
	}

	ref, err := s.referralRepo.GetByCustomerID(ev.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Infof("[Attribution] no referral for customer %s, sale retained by platform", ev.CustomerID)
			return nil, nil
		}
		return nil, err
	}

	payee, err := s.payeeRepo.GetByID(ref.PayeeID)
	if err != nil {
		return nil, err
	}

	// A referral is bound to exactly one payee, so the rates are mutually
	// exclusive: affiliates earn the platform rate, representatives their own.
	rate := s.affiliateRate
	if payee.Type == domain.PayeeTypeRepresentative {
		rate = payee.RatePercent
	}
	amount := ev.Amount.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)

	commission, err := s.ledger.Credit(ctx, CreditInstruction{
		PayeeID:        payee.ID,
		Amount:         amount,
		Description:    fmt.Sprintf("commission_for_sale_%s", ev.EventID),
		IdempotencyKey: ev.EventID,
	})
	if err != nil {
		return nil, err
	}

	converted, err := s.referralRepo.Convert(s.db.WithContext(ctx), ref.ID)
	if err != nil {
		return nil, err
	}
	if converted {
		log.Infof("[Attribution] referral %d converted by sale %s", ref.ID, ev.EventID)
	}
	return commission, nil
}
