package handler

import (
	"errors"
	"net/http"
	"strconv"

	"tally/internal/domain"
	"tally/internal/models"
	"tally/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type PayeeHandler struct {
	payeeRepo    *repository.PayeeRepository
	referralRepo *repository.ReferralRepository
}

func NewPayeeHandler(payeeRepo *repository.PayeeRepository, referralRepo *repository.ReferralRepository) *PayeeHandler {
	return &PayeeHandler{payeeRepo: payeeRepo, referralRepo: referralRepo}
}

// Create registers a payee. Representatives must carry their own rate;
// affiliates earn the platform rate and any submitted rate is ignored.
func (h *PayeeHandler) Create(c *gin.Context) {
	var req struct {
		Name                string          `json:"name" binding:"required"`
		Email               string          `json:"email" binding:"required,email"`
		Type                string          `json:"type" binding:"required,oneof=AFFILIATE REPRESENTATIVE"`
		RatePercent         decimal.Decimal `json:"rate_percent"`
		TransferDestination string          `json:"transfer_destination"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Type == domain.PayeeTypeRepresentative && !req.RatePercent.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "representative requires a positive rate_percent"})
		return
	}
	if req.Type == domain.PayeeTypeAffiliate {
		req.RatePercent = decimal.Zero
	}
	p := &models.Payee{
		Name:                req.Name,
		Email:               req.Email,
		Type:                req.Type,
		RatePercent:         req.RatePercent,
		TransferDestination: req.TransferDestination,
	}
	if err := h.payeeRepo.Create(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create payee"})
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PayeeHandler) Get(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}
	p, err := h.payeeRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrPayeeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "payee_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreateReferral binds a customer to a payee. The unique index on customer_id
// rejects a second binding.
func (h *PayeeHandler) CreateReferral(c *gin.Context) {
	var req struct {
		CustomerID string `json:"customer_id" binding:"required"`
		PayeeID    uint   `json:"payee_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.payeeRepo.GetByID(req.PayeeID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "payee_not_found"})
		return
	}
	ref := &models.Referral{
		CustomerID: req.CustomerID,
		PayeeID:    req.PayeeID,
		Status:     domain.ReferralStatusPending,
	}
	if err := h.referralRepo.Create(ref); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "customer already referred"})
		return
	}
	c.JSON(http.StatusCreated, ref)
}

func parseID(c *gin.Context) uint {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0
	}
	return uint(id)
}
