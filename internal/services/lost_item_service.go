package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/campusconnect/lost-and-found-api/internal/models"
	"github.com/campusconnect/lost-and-found-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrPhotoRequired     = errors.New("at least one photo URL is required")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrInvalidSortField  = errors.New("invalid sort field")
	ErrLostItemNotOwned  = errors.New("lost item not found or unauthorized")
	ErrFoundItemNotOwned = errors.New("found item not found or unauthorized")
)

// lostItemSortFields is the whitelist of columns the public listing may
// order by. Anything else is rejected before it reaches the query builder.
var lostItemSortFields = map[string]bool{
	"name":       true,
	"lost_date":  true,
	"created_at": true,
}

// LostItemService manages the lost-item registry
type LostItemService struct {
	lostItemRepo repository.LostItemRepository
	categoryRepo repository.CategoryRepository
	status       *StatusResolver
}

// NewLostItemService creates a new LostItemService
func NewLostItemService(lostItemRepo repository.LostItemRepository, categoryRepo repository.CategoryRepository, status *StatusResolver) *LostItemService {
	return &LostItemService{
		lostItemRepo: lostItemRepo,
		categoryRepo: categoryRepo,
		status:       status,
	}
}

// CreateLostItemInput represents input for posting a lost item
type CreateLostItemInput struct {
	Name         string
	Description  string
	LostDate     time.Time
	LostLocation string
	CategoryID   uint64
	PostedBy     uint64
	PhotoURLs    []string
}

// UpdateLostItemInput represents a partial update to a lost item's details.
// Nil fields are left untouched.
type UpdateLostItemInput struct {
	Name         *string
	Description  *string
	LostDate     *time.Time
	LostLocation *string
	CategoryID   *uint64
}

// Create posts a new lost item with its photos
func (s *LostItemService) Create(input CreateLostItemInput) (*models.LostItem, error) {
	if len(input.PhotoURLs) == 0 {
		return nil, ErrPhotoRequired
	}

	if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	item := &models.LostItem{
		Name:         input.Name,
		Description:  input.Description,
		LostDate:     input.LostDate,
		LostLocation: input.LostLocation,
		CategoryID:   input.CategoryID,
		PostedBy:     input.PostedBy,
	}

	if err := s.lostItemRepo.CreateWithPhotos(item, input.PhotoURLs); err != nil {
		return nil, fmt.Errorf("failed to create lost item: %w", err)
	}

	return s.lostItemRepo.FindByID(item.ID, "Photos", "Category", "Poster")
}

// Get returns one lost item with photos, poster, category and derived status
func (s *LostItemService) Get(id uint64) (*models.LostItem, models.DisplayStatus, error) {
	item, err := s.lostItemRepo.FindByID(id, "Photos", "Category", "Poster")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrLostItemNotFound
		}
		return nil, "", fmt.Errorf("failed to find lost item: %w", err)
	}

	status, err := s.status.ForLostItem(item.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to derive status: %w", err)
	}

	return item, status, nil
}

// List returns lost items matching the filter, each with its derived status
func (s *LostItemService) List(filter repository.ItemFilter) ([]models.LostItem, []models.DisplayStatus, error) {
	if filter.SortBy != "" && !lostItemSortFields[filter.SortBy] {
		return nil, nil, ErrInvalidSortField
	}

	items, err := s.lostItemRepo.List(filter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list lost items: %w", err)
	}

	statuses, err := s.statusesFor(items)
	if err != nil {
		return nil, nil, err
	}

	return items, statuses, nil
}

// ListMine returns all lost items posted by the user with derived statuses
func (s *LostItemService) ListMine(userID uint64) ([]models.LostItem, []models.DisplayStatus, error) {
	items, err := s.lostItemRepo.ListByUser(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list lost items: %w", err)
	}

	statuses, err := s.statusesFor(items)
	if err != nil {
		return nil, nil, err
	}

	return items, statuses, nil
}

// UpdateDetails applies a partial update. Only the poster may edit; a missing
// item and someone else's item fail identically.
func (s *LostItemService) UpdateDetails(id, actorID uint64, input UpdateLostItemInput) (*models.LostItem, error) {
	item, err := s.ownedItem(id, actorID)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to find category: %w", err)
		}
		item.CategoryID = *input.CategoryID
	}
	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.LostDate != nil {
		item.LostDate = *input.LostDate
	}
	if input.LostLocation != nil {
		item.LostLocation = *input.LostLocation
	}

	if err := s.lostItemRepo.Update(item); err != nil {
		return nil, fmt.Errorf("failed to update lost item: %w", err)
	}

	return s.lostItemRepo.FindByID(item.ID, "Photos", "Category", "Poster")
}

// ReplacePhotos swaps the item's photo set. Poster only.
func (s *LostItemService) ReplacePhotos(id, actorID uint64, photoURLs []string) (*models.LostItem, error) {
	if len(photoURLs) == 0 {
		return nil, ErrPhotoRequired
	}

	item, err := s.ownedItem(id, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.lostItemRepo.ReplacePhotos(item.ID, photoURLs); err != nil {
		return nil, fmt.Errorf("failed to replace photos: %w", err)
	}

	return s.lostItemRepo.FindByID(item.ID, "Photos", "Category", "Poster")
}

// Delete removes the item together with its reports and photos. Poster only.
func (s *LostItemService) Delete(id, actorID uint64) error {
	item, err := s.ownedItem(id, actorID)
	if err != nil {
		return err
	}

	if err := s.lostItemRepo.Delete(item.ID); err != nil {
		return fmt.Errorf("failed to delete lost item: %w", err)
	}

	return nil
}

func (s *LostItemService) ownedItem(id, actorID uint64) (*models.LostItem, error) {
	item, err := s.lostItemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLostItemNotOwned
		}
		return nil, fmt.Errorf("failed to find lost item: %w", err)
	}
	if item.PostedBy != actorID {
		return nil, ErrLostItemNotOwned
	}
	return item, nil
}

func (s *LostItemService) statusesFor(items []models.LostItem) ([]models.DisplayStatus, error) {
	statuses := make([]models.DisplayStatus, len(items))
	for i := range items {
		status, err := s.status.ForLostItem(items[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to derive status: %w", err)
		}
		statuses[i] = status
	}
	return statuses, nil
}
