package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tally/internal/domain"
	"tally/internal/models"
	"tally/internal/repository"
	"tally/pkg/transfer"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PayoutService disburses accumulated balance. The gateway is injected so a
// fake can stand in during tests.
type PayoutService struct {
	db         *gorm.DB
	payeeRepo  *repository.PayeeRepository
	payoutRepo *repository.PayoutRepository
	gateway    transfer.Gateway
	notifSvc   *NotificationService
	currency   string
}

func NewPayoutService(
	db *gorm.DB,
	payeeRepo *repository.PayeeRepository,
	payoutRepo *repository.PayoutRepository,
	gateway transfer.Gateway,
	notifSvc *NotificationService,
	currency string,
) *PayoutService {
	return &PayoutService{
		db:         db,
		payeeRepo:  payeeRepo,
		payoutRepo: payoutRepo,
		gateway:    gateway,
		notifSvc:   notifSvc,
		currency:   currency,
	}
}

// Payout validates the balance, moves the money, and records the outcome.
// The Payout row and the balance debit are written in one transaction, and
// only after the transfer outcome is known. The debit re-checks the balance
// inside the UPDATE, so a concurrent payout that drained the account between
// the pre-check and the commit surfaces as ErrInsufficientBalance instead of
// an overdraft.
//
// A gateway timeout is an unknown outcome: nothing is recorded and
// ErrGatewayUnavailable is returned. The operator must reconcile against the
// gateway before retrying - the transfer call carries no idempotency token, so
// a blind retry risks paying twice.
func (s *PayoutService) Payout(ctx context.Context, payeeID uint, amount decimal.Decimal, note string) (*models.Payout, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	payee, err := s.payeeRepo.GetByID(payeeID)
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(payee.Balance) {
		return nil, domain.ErrInsufficientBalance
	}

	status := domain.PayoutStatusManualCompleted
	transferRef := ""
	if payee.TransferDestination != "" {
		resp, err := s.gateway.CreateTransfer(ctx, transfer.TransferRequest{
			Destination: payee.TransferDestination,
			AmountMinor: amount.Mul(decimal.NewFromInt(100)).IntPart(),
			Currency:    s.currency,
			Description: note,
		})
		var rejection *transfer.RejectionError
		switch {
		case err == nil:
			status = domain.PayoutStatusStripeCompleted
			transferRef = resp.Reference
		case errors.Is(err, transfer.ErrTransfersDisabled):
			log.Warnf("[Payout] transfers disabled for payee %d, falling back to manual", payeeID)
		case errors.As(err, &rejection):
			return nil, fmt.Errorf("%w: %s", domain.ErrGatewayRejected, rejection.Message)
		default:
			return nil, fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
		}
	}

	now := time.Now()
	payout := &models.Payout{
		PayeeID:     payeeID,
		Amount:      amount,
		Status:      status,
		TransferRef: transferRef,
		Note:        note,
		CompletedAt: &now,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.payeeRepo.DebitBalance(tx, payeeID, amount); err != nil {
			return err
		}
		return s.payoutRepo.Create(tx, payout)
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientBalance) && status == domain.PayoutStatusStripeCompleted {
			// Money already left via the gateway but the balance no longer
			// covers it. Flagged for manual reconciliation.
			log.Errorf("[Payout] transfer %s completed but debit failed for payee %d, reconcile manually", transferRef, payeeID)
		}
		return nil, err
	}

	s.notifSvc.NotifyPayoutCompleted(payeeID, amount, payout.Status)
	return payout, nil
}
