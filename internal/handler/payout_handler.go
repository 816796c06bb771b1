package handler

import (
	"errors"
	"net/http"

	"tally/internal/domain"
	"tally/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type PayoutHandler struct {
	payoutSvc *service.PayoutService
}

func NewPayoutHandler(payoutSvc *service.PayoutService) *PayoutHandler {
	return &PayoutHandler{payoutSvc: payoutSvc}
}

// Create disburses balance to a payee. Admin only. The error body carries a
// stable code so the admin tool can tell "retry later" from "impossible".
func (h *PayoutHandler) Create(c *gin.Context) {
	var req struct {
		PayeeID uint            `json:"payee_id" binding:"required"`
		Amount  decimal.Decimal `json:"amount" binding:"required"`
		Note    string          `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	payout, err := h.payoutSvc.Payout(c.Request.Context(), req.PayeeID, req.Amount, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_amount"})
		case errors.Is(err, domain.ErrPayeeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "payee_not_found"})
		case errors.Is(err, domain.ErrInsufficientBalance):
			c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient_balance"})
		case errors.Is(err, domain.ErrGatewayRejected):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "gateway_rejected", "message": err.Error()})
		case errors.Is(err, domain.ErrGatewayUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "gateway_unavailable", "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "payout failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, payout)
}
