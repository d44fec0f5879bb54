package repository

import (
	"fmt"

	"github.com/campusconnect/lost-and-found-api/internal/models"
	"gorm.io/gorm"
)

// GormFoundItemRepository is a GORM implementation of FoundItemRepository
type GormFoundItemRepository struct {
	db *gorm.DB
}

// NewFoundItemRepository creates a new FoundItemRepository
func NewFoundItemRepository(db *gorm.DB) FoundItemRepository {
	return &GormFoundItemRepository{db: db}
}

// CreateWithPhotos creates the item and its photo rows atomically
func (r *GormFoundItemRepository) CreateWithPhotos(item *models.FoundItem, photoURLs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}

		for _, url := range photoURLs {
			photo := models.FoundItemPhoto{FoundItemID: item.ID, PhotoURL: url}
			if err := tx.Create(&photo).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// FindByID finds a found item by ID with optional preloading
func (r *GormFoundItemRepository) FindByID(id uint64, preload ...string) (*models.FoundItem, error) {
	var item models.FoundItem
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&item, id).Error; err != nil {
		return nil, err
	}

	return &item, nil
}

// List retrieves found items matching the filter
func (r *GormFoundItemRepository) List(filter ItemFilter) ([]models.FoundItem, error) {
	var items []models.FoundItem

	query := r.db.Model(&models.FoundItem{}).
		Preload("Poster").
		Preload("Category").
		Preload("Photos")

	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where("name LIKE ? OR description LIKE ? OR found_location LIKE ?", like, like, like)
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "found_date"
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

// ListByUser retrieves all found items posted by a user, newest found date first
func (r *GormFoundItemRepository) ListByUser(userID uint64) ([]models.FoundItem, error) {
	var items []models.FoundItem
	if err := r.db.
		Preload("Poster").
		Preload("Category").
		Preload("Photos").
		Where("posted_by = ?", userID).
		Order("found_date DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update persists changes to a found item
func (r *GormFoundItemRepository) Update(item *models.FoundItem) error {
	return r.db.Save(item).Error
}

// ReplacePhotos deletes the item's photos and inserts the new set atomically
func (r *GormFoundItemRepository) ReplacePhotos(itemID uint64, photoURLs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("found_item_id = ?", itemID).Delete(&models.FoundItemPhoto{}).Error; err != nil {
			return err
		}

		for _, url := range photoURLs {
			photo := models.FoundItemPhoto{FoundItemID: itemID, PhotoURL: url}
			if err := tx.Create(&photo).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete removes the item together with its claims and photos in one
// transaction, so no orphan rows survive a partial failure.
func (r *GormFoundItemRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("found_item_id = ?", id).Delete(&models.Claim{}).Error; err != nil {
			return err
		}

		if err := tx.Where("found_item_id = ?", id).Delete(&models.FoundItemPhoto{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.FoundItem{}, id).Error
	})
}

// Count returns the total number of found items
func (r *GormFoundItemRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.FoundItem{}).Count(&count).Error
	return count, err
}
