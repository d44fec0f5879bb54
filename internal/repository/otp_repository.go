package repository

import (
	"github.com/campusconnect/lost-and-found-api/internal/models"
	"gorm.io/gorm"
)

// GormOTPRepository is a GORM implementation of OTPRepository
type GormOTPRepository struct {
	db *gorm.DB
}

// NewOTPRepository creates a new OTPRepository
func NewOTPRepository(db *gorm.DB) OTPRepository {
	return &GormOTPRepository{db: db}
}

// Create stores a new OTP row
func (r *GormOTPRepository) Create(otp *models.OTPVerification) error {
	return r.db.Create(otp).Error
}

// LatestByEmail returns the newest OTP row for an email. Older rows are
// superseded, never deleted.
func (r *GormOTPRepository) LatestByEmail(email string) (*models.OTPVerification, error) {
	var otp models.OTPVerification
	if err := r.db.Where("email = ?", email).
		Order("expires_at DESC").
		First(&otp).Error; err != nil {
		return nil, err
	}
	return &otp, nil
}
