package domain

const (
	RoleAdmin    = "ADMIN"
	RoleOperator = "OPERATOR"
)

const (
	PayeeTypeAffiliate      = "AFFILIATE"
	PayeeTypeRepresentative = "REPRESENTATIVE"
)

const (
	ReferralStatusPending   = "PENDING"
	ReferralStatusConverted = "CONVERTED"
)

const (
	CommissionStatusPending = "PENDING"
	CommissionStatusPaid    = "PAID"
)

const (
	PayoutStatusPending         = "PENDING"
	PayoutStatusManualCompleted = "MANUAL_COMPLETED"
	PayoutStatusStripeCompleted = "STRIPE_COMPLETED"
	PayoutStatusFailed          = "FAILED"
)

const (
	NotificationCommissionEarned = "COMMISSION_EARNED"
	NotificationAdjustment       = "ADJUSTMENT_APPLIED"
	NotificationPayoutCompleted  = "PAYOUT_COMPLETED"
)
