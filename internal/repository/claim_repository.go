package repository

import (
	"github.com/campusconnect/lost-and-found-api/internal/models"
	"gorm.io/gorm"
)

// GormClaimRepository is a GORM implementation of ClaimRepository
type GormClaimRepository struct {
	db *gorm.DB
}

// NewClaimRepository creates a new ClaimRepository
func NewClaimRepository(db *gorm.DB) ClaimRepository {
	return &GormClaimRepository{db: db}
}

func (r *GormClaimRepository) Create(claim *models.Claim) error {
	return r.db.Create(claim).Error
}

// FindByID finds a claim by ID with optional preloading
func (r *GormClaimRepository) FindByID(id uint64, preload ...string) (*models.Claim, error) {
	var claim models.Claim
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&claim, id).Error; err != nil {
		return nil, err
	}

	return &claim, nil
}

// ListByItem returns all claims for a found item, newest first
func (r *GormClaimRepository) ListByItem(foundItemID uint64) ([]models.Claim, error) {
	var claims []models.Claim
	if err := r.db.
		Preload("ClaimingUser").
		Preload("FoundItem").
		Preload("FoundItem.Poster").
		Where("found_item_id = ?", foundItemID).
		Order("created_at DESC").
		Find(&claims).Error; err != nil {
		return nil, err
	}
	return claims, nil
}

// ListByUser returns all claims filed by a user, newest first
func (r *GormClaimRepository) ListByUser(userID uint64) ([]models.Claim, error) {
	var claims []models.Claim
	if err := r.db.
		Preload("ClaimingUser").
		Preload("FoundItem").
		Preload("FoundItem.Poster").
		Where("claiming_user_id = ?", userID).
		Order("created_at DESC").
		Find(&claims).Error; err != nil {
		return nil, err
	}
	return claims, nil
}

// Update persists changes to a claim
func (r *GormClaimRepository) Update(claim *models.Claim) error {
	return r.db.Save(claim).Error
}

// Delete hard deletes a claim
func (r *GormClaimRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Claim{}, id).Error
}

// ExistsForUser reports whether the user already has a claim on the item
func (r *GormClaimRepository) ExistsForUser(foundItemID, userID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Claim{}).
		Where("found_item_id = ? AND claiming_user_id = ?", foundItemID, userID).
		Count(&count).Error
	return count > 0, err
}

// HasApproved reports whether any claim on the item is Approved
func (r *GormClaimRepository) HasApproved(foundItemID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Claim{}).
		Where("found_item_id = ? AND status = ?", foundItemID, models.ClaimStatusApproved).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}
