package service

import "errors"

// Sentinel errors shared across services. Handlers map these onto
// HTTP status codes; services never touch the transport layer.
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserDisabled       = errors.New("account disabled")
	ErrWeakPassword       = errors.New("password too weak")
	ErrInvalidToken       = errors.New("invalid token")

	ErrProductNotAvailable = errors.New("product not available")
	ErrVariantMismatch     = errors.New("variant does not belong to product")
	ErrCategoryNameTaken   = errors.New("category name already in use")
	ErrCategoryInUse       = errors.New("category still has products")

	ErrEmptyCart      = errors.New("cart is empty")
	ErrInvalidStatus  = errors.New("invalid status transition")
	ErrInvalidRequest = errors.New("invalid custom request")

	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha not configured")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrInvalidEmail              = errors.New("invalid email address")

	ErrMatcherUnavailable = errors.New("matcher unavailable")
)
