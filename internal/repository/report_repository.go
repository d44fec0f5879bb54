package repository

import (
	"github.com/campusconnect/lost-and-found-api/internal/models"
	"gorm.io/gorm"
)

// GormReportRepository is a GORM implementation of ReportRepository
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &GormReportRepository{db: db}
}

func (r *GormReportRepository) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

// FindByID finds a report by ID with optional preloading
func (r *GormReportRepository) FindByID(id uint64, preload ...string) (*models.Report, error) {
	var report models.Report
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&report, id).Error; err != nil {
		return nil, err
	}

	return &report, nil
}

// ListByFinder returns all reports filed by a user, newest first
func (r *GormReportRepository) ListByFinder(userID uint64) ([]models.Report, error) {
	var reports []models.Report
	if err := r.db.
		Preload("Finder").
		Preload("LostItem").
		Preload("LostItem.Poster").
		Preload("LostItem.Photos").
		Where("user_who_found = ?", userID).
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// ListReceived returns all reports against lost items posted by the user, newest first
func (r *GormReportRepository) ListReceived(ownerID uint64) ([]models.Report, error) {
	var reports []models.Report
	if err := r.db.
		Preload("Finder").
		Preload("LostItem").
		Preload("LostItem.Photos").
		Joins("JOIN lost_items ON lost_items.id = reports.lost_item_id").
		Where("lost_items.posted_by = ?", ownerID).
		Order("reports.created_at DESC").
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// ListByItem returns all reports for a lost item, newest first
func (r *GormReportRepository) ListByItem(lostItemID uint64) ([]models.Report, error) {
	var reports []models.Report
	if err := r.db.
		Preload("Finder").
		Preload("LostItem").
		Preload("LostItem.Poster").
		Preload("LostItem.Photos").
		Where("lost_item_id = ?", lostItemID).
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// Update persists changes to a report
func (r *GormReportRepository) Update(report *models.Report) error {
	return r.db.Save(report).Error
}

// Delete hard deletes a report
func (r *GormReportRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Report{}, id).Error
}

// HasReturned reports whether any report on the lost item is Returned
func (r *GormReportRepository) HasReturned(lostItemID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Report{}).
		Where("lost_item_id = ? AND status = ?", lostItemID, models.ReportStatusReturned).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}
