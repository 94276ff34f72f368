package constants

// User roles
const (
	UserRoleCustomer = "customer"
	UserRoleAdmin    = "admin"
)

// User account status
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// Order status lifecycle
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Custom request status lifecycle
const (
	RequestStatusPending   = "pending"
	RequestStatusReviewed  = "reviewed"
	RequestStatusFulfilled = "fulfilled"
	RequestStatusRejected  = "rejected"
)

// Quick-add match outcomes reported by the external matcher
const (
	MatchStatusMatched   = "matched"
	MatchStatusSuggested = "suggested"
	MatchStatusNotFound  = "not_found"
)

// Payment methods accepted at checkout (recording only, no charging)
const (
	PaymentMethodCashOnDelivery = "cash_on_delivery"
	PaymentMethodBankTransfer   = "bank_transfer"
)

// Queue names
const (
	QueueDefault = "default"
)

// Async task types
const (
	TaskOrderStatusEmail   = "order:status_email"
	TaskRequestStatusEmail = "request:status_email"
)

// Captcha scenes
const (
	CaptchaSceneLogin = "login"
)

// Captcha providers
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)
