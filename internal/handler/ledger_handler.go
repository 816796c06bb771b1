package handler

import (
	"net/http"
	"strconv"

	"tally/internal/repository"

	"github.com/gin-gonic/gin"
)

// LedgerHandler is the read-only surface for dashboards: commissions, payouts
// and the running balance per payee. No business logic lives here.
type LedgerHandler struct {
	payeeRepo      *repository.PayeeRepository
	commissionRepo *repository.CommissionRepository
	payoutRepo     *repository.PayoutRepository
}

func NewLedgerHandler(
	payeeRepo *repository.PayeeRepository,
	commissionRepo *repository.CommissionRepository,
	payoutRepo *repository.PayoutRepository,
) *LedgerHandler {
	return &LedgerHandler{
		payeeRepo:      payeeRepo,
		commissionRepo: commissionRepo,
		payoutRepo:     payoutRepo,
	}
}

func (h *LedgerHandler) ListCommissions(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}
	limit, offset := pagination(c)
	list, err := h.commissionRepo.ListByPayeeID(id, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"commissions": list})
}

func (h *LedgerHandler) ListPayouts(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}
	limit, offset := pagination(c)
	list, err := h.payoutRepo.ListByPayeeID(id, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payouts": list})
}

// GetBalance reports the stored balance next to the recomputed ledger totals,
// so an operator can see at a glance that they agree.
func (h *LedgerHandler) GetBalance(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}
	payee, err := h.payeeRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "payee_not_found"})
		return
	}
	earned, err := h.commissionRepo.SumByPayeeID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	disbursed, err := h.payoutRepo.SumCompletedByPayeeID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"balance":          payee.Balance,
		"total_commission": earned,
		"total_disbursed":  disbursed,
	})
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
