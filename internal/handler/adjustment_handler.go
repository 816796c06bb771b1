package handler

import (
	"errors"
	"net/http"

	"tally/internal/domain"
	"tally/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AdjustmentHandler struct {
	adjustmentSvc *service.AdjustmentService
}

func NewAdjustmentHandler(adjustmentSvc *service.AdjustmentService) *AdjustmentHandler {
	return &AdjustmentHandler{adjustmentSvc: adjustmentSvc}
}

// Create applies a penalty of the given magnitude to a payee. Admin only.
func (h *AdjustmentHandler) Create(c *gin.Context) {
	var req struct {
		PayeeID   uint            `json:"payee_id" binding:"required"`
		Magnitude decimal.Decimal `json:"magnitude" binding:"required"`
		Reason    string          `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	commission, err := h.adjustmentSvc.Adjust(c.Request.Context(), req.PayeeID, req.Magnitude, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "magnitude must be positive"})
		case errors.Is(err, domain.ErrReasonRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "reason is required"})
		case errors.Is(err, domain.ErrPayeeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "payee_not_found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "adjustment failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, commission)
}
