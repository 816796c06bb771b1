package service

import (
	"fmt"

	"tally/internal/domain"
	"tally/internal/models"
	"tally/internal/repository"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// NotificationService writes payee-facing notification rows. Callers invoke it
// after their transaction commits; failures here are logged, never propagated.
type NotificationService struct {
	repo *repository.NotificationRepository
}

func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) notify(payeeID uint, notifType, title, body string) {
	err := s.repo.Create(&models.Notification{
		PayeeID: payeeID,
		Type:    notifType,
		Title:   title,
		Body:    body,
	})
	if err != nil {
		log.Errorf("[Notification] failed to notify payee %d (%s): %v", payeeID, notifType, err)
	}
}

func (s *NotificationService) NotifyCommissionEarned(payeeID uint, amount decimal.Decimal, description string) {
	s.notify(payeeID, domain.NotificationCommissionEarned, "Commission earned",
		fmt.Sprintf("You earned %s: %s", amount.StringFixed(2), description))
}

func (s *NotificationService) NotifyAdjustment(payeeID uint, amount decimal.Decimal, reason string) {
	s.notify(payeeID, domain.NotificationAdjustment, "Balance adjustment",
		fmt.Sprintf("An adjustment of %s was applied: %s", amount.StringFixed(2), reason))
}

func (s *NotificationService) NotifyPayoutCompleted(payeeID uint, amount decimal.Decimal, status string) {
	s.notify(payeeID, domain.NotificationPayoutCompleted, "Payout completed",
		fmt.Sprintf("A payout of %s was completed (%s)", amount.StringFixed(2), status))
}
