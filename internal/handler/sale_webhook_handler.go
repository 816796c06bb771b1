package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"tally/config"
	"tally/internal/domain"
	"tally/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// SaleWebhookHandler receives the payment provider's sale-completed callback.
// Response codes steer provider redelivery: 4xx stops it (permanent
// rejection), 5xx triggers it (transient failure). A sale without a referral
// is a 200 - nothing was earned, nothing went wrong.
type SaleWebhookHandler struct {
	attribution *service.AttributionService
	cfg         *config.Config
}

func NewSaleWebhookHandler(attribution *service.AttributionService, cfg *config.Config) *SaleWebhookHandler {
	if cfg.Webhook.Secret == "" {
		log.Warn("[SaleWebhook] SALE_WEBHOOK_SECRET not set, signature verification disabled")
	}
	return &SaleWebhookHandler{attribution: attribution, cfg: cfg}
}

func (h *SaleWebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if h.cfg.Webhook.Secret != "" {
		sig := c.GetHeader("X-Webhook-Signature")
		if !h.verifySignature(body, sig) {
			log.Warnf("[SaleWebhook] bad signature from %s", c.ClientIP())
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
			return
		}
	}
	var ev service.SaleEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	commission, err := h.attribution.ProcessSale(c.Request.Context(), ev)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSale) {
			log.Warnf("[SaleWebhook] permanent rejection: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sale event"})
			return
		}
		log.Errorf("[SaleWebhook] processing event %s failed: %v", ev.EventID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"received":           true,
		"commission_created": commission != nil,
	})
}

func (h *SaleWebhookHandler) verifySignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(h.cfg.Webhook.Secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}
