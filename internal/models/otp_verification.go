package models

import "time"

// OTPVerification is an ephemeral one-time code. The newest row per email
// wins; rows are never updated in place.
type OTPVerification struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Email     string    `gorm:"type:varchar(255);not null;index" json:"email"`
	OTPCode   string    `gorm:"type:varchar(10);not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
