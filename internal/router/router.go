package router

import (
	"time"

	"tally/config"
	"tally/internal/handler"
	"tally/internal/middleware"
	"tally/internal/repository"
	"tally/internal/service"
	"tally/pkg/transfer"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, gateway transfer.Gateway) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	payeeRepo := repository.NewPayeeRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)
	payoutRepo := repository.NewPayoutRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	operatorRepo := repository.NewOperatorRepository(db)

	// Services
	notifSvc := service.NewNotificationService(notificationRepo)
	ledgerSvc := service.NewLedgerService(db, payeeRepo, commissionRepo, notifSvc)
	attributionSvc := service.NewAttributionService(db, saleRepo, referralRepo, payeeRepo, ledgerSvc, cfg.Ledger.AffiliateRatePercent)
	adjustmentSvc := service.NewAdjustmentService(ledgerSvc)
	payoutSvc := service.NewPayoutService(db, payeeRepo, payoutRepo, gateway, notifSvc, cfg.Ledger.Currency)
	authSvc := service.NewAuthService(cfg, operatorRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	saleWebhookHandler := handler.NewSaleWebhookHandler(attributionSvc, cfg)
	payoutHandler := handler.NewPayoutHandler(payoutSvc)
	adjustmentHandler := handler.NewAdjustmentHandler(adjustmentSvc)
	payeeHandler := handler.NewPayeeHandler(payeeRepo, referralRepo)
	ledgerHandler := handler.NewLedgerHandler(payeeRepo, commissionRepo, payoutRepo)

	authMw := middleware.AuthRequired(&cfg.JWT)
	adminMw := middleware.AdminRequired()

	api := r.Group("/api/v1")
	{
		api.POST("/auth/login", authHandler.Login)

		// Provider callback: authenticated by HMAC signature, not JWT.
		api.POST("/webhooks/sale-events", saleWebhookHandler.Handle)

		admin := api.Group("")
		admin.Use(authMw, adminMw)
		{
			admin.POST("/payouts", payoutHandler.Create)
			admin.POST("/adjustments", adjustmentHandler.Create)
			admin.POST("/payees", payeeHandler.Create)
			admin.POST("/referrals", payeeHandler.CreateReferral)
		}

		read := api.Group("")
		read.Use(authMw)
		{
			read.GET("/payees/:id", payeeHandler.Get)
			read.GET("/payees/:id/balance", ledgerHandler.GetBalance)
			read.GET("/payees/:id/commissions", ledgerHandler.ListCommissions)
			read.GET("/payees/:id/payouts", ledgerHandler.ListPayouts)
		}
	}
	return r
}
