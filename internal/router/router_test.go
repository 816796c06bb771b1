package router_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tally/config"
	"tally/internal/auth"
	"tally/internal/database"
	"tally/internal/domain"
	"tally/internal/models"
	"tally/internal/router"
	"tally/pkg/transfer"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const webhookSecret = "test-webhook-secret"

func setup(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	cfg := config.Load()
	cfg.Webhook.Secret = webhookSecret
	cfg.Ledger.AffiliateRatePercent = decimal.NewFromInt(40)

	engine := router.Setup(cfg, db, &transfer.StubGateway{})
	return engine, db, cfg
}

func sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func adminToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := auth.GenerateAccessToken(&cfg.JWT, 1, "admin@tally.local", domain.RoleAdmin)
	require.NoError(t, err)
	return token
}

func postJSON(engine *gin.Engine, path, token string, payload interface{}, headers map[string]string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func seedPayeeWithReferral(t *testing.T, db *gorm.DB, customerID string) *models.Payee {
	t.Helper()
	p := &models.Payee{
		Name:  "Affiliate A",
		Email: customerID + "@example.com",
		Type:  domain.PayeeTypeAffiliate,
	}
	require.NoError(t, db.Create(p).Error)
	ref := &models.Referral{CustomerID: customerID, PayeeID: p.ID, Status: domain.ReferralStatusPending}
	require.NoError(t, db.Create(ref).Error)
	return p
}

func TestSaleWebhookCreditsReferredSale(t *testing.T) {
	engine, db, _ := setup(t)
	p := seedPayeeWithReferral(t, db, "cus_1")

	payload := []byte(`{"event_id":"evt_1","customer_id":"cus_1","plan_id":"pro","amount":"100","currency":"USD"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/sale-events", bytes.NewReader(payload))
	req.Header.Set("X-Webhook-Signature", sign(payload))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		CommissionCreated bool `json:"commission_created"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.CommissionCreated)

	var payee models.Payee
	require.NoError(t, db.First(&payee, p.ID).Error)
	assert.True(t, payee.Balance.Equal(decimal.NewFromInt(40)))
}

func TestSaleWebhookRejectsBadSignature(t *testing.T) {
	engine, db, _ := setup(t)
	seedPayeeWithReferral(t, db, "cus_1")

	payload := []byte(`{"event_id":"evt_1","customer_id":"cus_1","amount":"100","currency":"USD"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/sale-events", bytes.NewReader(payload))
	req.Header.Set("X-Webhook-Signature", "deadbeef")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var commissions int64
	db.Model(&models.Commission{}).Count(&commissions)
	assert.Equal(t, int64(0), commissions)
}

func TestSaleWebhookPermanentRejection(t *testing.T) {
	engine, _, _ := setup(t)

	// Missing customer_id: 4xx so the provider stops redelivering.
	payload := []byte(`{"event_id":"evt_1","amount":"100","currency":"USD"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/sale-events", bytes.NewReader(payload))
	req.Header.Set("X-Webhook-Signature", sign(payload))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaleWebhookUnreferredSaleIsOK(t *testing.T) {
	engine, _, _ := setup(t)

	payload := []byte(`{"event_id":"evt_1","customer_id":"cus_unknown","amount":"100","currency":"USD"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/sale-events", bytes.NewReader(payload))
	req.Header.Set("X-Webhook-Signature", sign(payload))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPayoutEndpointRequiresAdmin(t *testing.T) {
	engine, _, cfg := setup(t)

	body := map[string]interface{}{"payee_id": 1, "amount": "10"}
	w := postJSON(engine, "/api/v1/payouts", "", body, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	operatorToken, err := auth.GenerateAccessToken(&cfg.JWT, 2, "op@tally.local", domain.RoleOperator)
	require.NoError(t, err)
	w = postJSON(engine, "/api/v1/payouts", operatorToken, body, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPayoutEndpointInsufficientBalance(t *testing.T) {
	engine, db, cfg := setup(t)
	p := seedPayeeWithReferral(t, db, "cus_1")

	body := map[string]interface{}{"payee_id": p.ID, "amount": "50", "note": "monthly"}
	w := postJSON(engine, "/api/v1/payouts", adminToken(t, cfg), body, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient_balance")
}

func TestAdjustmentEndpoint(t *testing.T) {
	engine, db, cfg := setup(t)
	p := seedPayeeWithReferral(t, db, "cus_1")

	body := map[string]interface{}{"payee_id": p.ID, "magnitude": "20", "reason": "policy violation"}
	w := postJSON(engine, "/api/v1/adjustments", adminToken(t, cfg), body, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var payee models.Payee
	require.NoError(t, db.First(&payee, p.ID).Error)
	assert.True(t, payee.Balance.Equal(decimal.NewFromInt(-20)))
}

func TestBalanceEndpointReportsLedgerTotals(t *testing.T) {
	engine, db, cfg := setup(t)
	p := seedPayeeWithReferral(t, db, "cus_1")

	payload := []byte(`{"event_id":"evt_1","customer_id":"cus_1","amount":"100","currency":"USD"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/sale-events", bytes.NewReader(payload))
	req.Header.Set("X-Webhook-Signature", sign(payload))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	getReq := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/payees/%d/balance", p.ID), nil)
	getReq.Header.Set("Authorization", "Bearer "+adminToken(t, cfg))
	getW := httptest.NewRecorder()
	engine.ServeHTTP(getW, getReq)

	require.Equal(t, http.StatusOK, getW.Code)
	var resp struct {
		Balance         decimal.Decimal `json:"balance"`
		TotalCommission decimal.Decimal `json:"total_commission"`
		TotalDisbursed  decimal.Decimal `json:"total_disbursed"`
	}
	require.NoError(t, json.Unmarshal(getW.Body.Bytes(), &resp))
	assert.True(t, resp.Balance.Equal(decimal.NewFromInt(40)))
	assert.True(t, resp.Balance.Equal(resp.TotalCommission.Sub(resp.TotalDisbursed)))
}
