package repository

import (
	"errors"
	"fmt"

	"github.com/campusconnect/lost-and-found-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrCreateUser is returned when creating the user fails inside the registration transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrCreateOTP is returned when storing the verification OTP fails inside the registration transaction.
	ErrCreateOTP = errors.New("user repository: create otp failed")
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// CreateWithOTP creates the user and their verification OTP atomically.
func (r *GormUserRepository) CreateWithOTP(user *models.User, otp *models.OTPVerification) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		otp.Email = user.Email
		if err := tx.Create(otp).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateOTP, err)
		}

		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByEmailOrRoll reports whether a user with the email or roll number exists
func (r *GormUserRepository) ExistsByEmailOrRoll(email, rollNumber string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("email = ? OR roll_number = ?", email, rollNumber).
		Count(&count).Error
	return count > 0, err
}

// MarkEmailVerified flips the verified flag for the given email
func (r *GormUserRepository) MarkEmailVerified(email string) error {
	return r.db.Model(&models.User{}).
		Where("email = ?", email).
		Update("email_verified", true).Error
}

// UpdatePassword replaces the password hash for the given email
func (r *GormUserRepository) UpdatePassword(email, passwordHash string) error {
	return r.db.Model(&models.User{}).
		Where("email = ?", email).
		Update("password_hash", passwordHash).Error
}

// Update persists changes to a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Count returns the total number of registered users
func (r *GormUserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
