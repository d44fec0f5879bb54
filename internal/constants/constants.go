package constants

import "time"

// Context keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyUser   = "current_user"
)

// Auth
const (
	AccessTokenCookieName = "accessToken"
	AccessTokenTTL        = 7 * 24 * time.Hour
	MinPasswordLength     = 8
)

// OTP
const (
	OTPLength = 6
	OTPTTL    = 10 * time.Minute
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)
