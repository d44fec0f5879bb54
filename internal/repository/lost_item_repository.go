package repository

import (
	"fmt"

	"github.com/campusconnect/lost-and-found-api/internal/models"
	"gorm.io/gorm"
)

// GormLostItemRepository is a GORM implementation of LostItemRepository
type GormLostItemRepository struct {
	db *gorm.DB
}

// NewLostItemRepository creates a new LostItemRepository
func NewLostItemRepository(db *gorm.DB) LostItemRepository {
	return &GormLostItemRepository{db: db}
}

// CreateWithPhotos creates the item and its photo rows atomically
func (r *GormLostItemRepository) CreateWithPhotos(item *models.LostItem, photoURLs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}

		for _, url := range photoURLs {
			photo := models.LostItemPhoto{LostItemID: item.ID, PhotoURL: url}
			if err := tx.Create(&photo).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// FindByID finds a lost item by ID with optional preloading
func (r *GormLostItemRepository) FindByID(id uint64, preload ...string) (*models.LostItem, error) {
	var item models.LostItem
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&item, id).Error; err != nil {
		return nil, err
	}

	return &item, nil
}

// List retrieves lost items matching the filter
func (r *GormLostItemRepository) List(filter ItemFilter) ([]models.LostItem, error) {
	var items []models.LostItem

	query := r.db.Model(&models.LostItem{}).
		Preload("Poster").
		Preload("Category").
		Preload("Photos")

	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where("name LIKE ? OR description LIKE ? OR lost_location LIKE ?", like, like, like)
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "lost_date"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, direction))

	if filter.Page > 0 && filter.Limit > 0 {
		query = query.Offset((filter.Page - 1) * filter.Limit).Limit(filter.Limit)
	}

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

// ListByUser retrieves all lost items posted by a user, newest lost date first
func (r *GormLostItemRepository) ListByUser(userID uint64) ([]models.LostItem, error) {
	var items []models.LostItem
	if err := r.db.
		Preload("Poster").
		Preload("Category").
		Preload("Photos").
		Where("posted_by = ?", userID).
		Order("lost_date DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update persists changes to a lost item
func (r *GormLostItemRepository) Update(item *models.LostItem) error {
	return r.db.Save(item).Error
}

// ReplacePhotos deletes the item's photos and inserts the new set atomically
func (r *GormLostItemRepository) ReplacePhotos(itemID uint64, photoURLs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lost_item_id = ?", itemID).Delete(&models.LostItemPhoto{}).Error; err != nil {
			return err
		}

		for _, url := range photoURLs {
			photo := models.LostItemPhoto{LostItemID: itemID, PhotoURL: url}
			if err := tx.Create(&photo).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete removes the item together with its reports and photos in one
// transaction, so no orphan rows survive a partial failure.
func (r *GormLostItemRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lost_item_id = ?", id).Delete(&models.Report{}).Error; err != nil {
			return err
		}

		if err := tx.Where("lost_item_id = ?", id).Delete(&models.LostItemPhoto{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.LostItem{}, id).Error
	})
}

// Count returns the total number of lost items
func (r *GormLostItemRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.LostItem{}).Count(&count).Error
	return count, err
}
