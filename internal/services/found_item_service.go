package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/campusconnect/lost-and-found-api/internal/models"
	"github.com/campusconnect/lost-and-found-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var foundItemSortFields = map[string]bool{
	"name":       true,
	"found_date": true,
	"created_at": true,
}

// FoundItemService manages the found-item registry. Security answers are
// stored as bcrypt hashes and never leave the service.
type FoundItemService struct {
	foundItemRepo repository.FoundItemRepository
	categoryRepo  repository.CategoryRepository
	status        *StatusResolver
}

// NewFoundItemService creates a new FoundItemService
func NewFoundItemService(foundItemRepo repository.FoundItemRepository, categoryRepo repository.CategoryRepository, status *StatusResolver) *FoundItemService {
	return &FoundItemService{
		foundItemRepo: foundItemRepo,
		categoryRepo:  categoryRepo,
		status:        status,
	}
}

// CreateFoundItemInput represents input for posting a found item
type CreateFoundItemInput struct {
	Name             string
	Description      string
	FoundDate        time.Time
	FoundLocation    string
	PickupLocation   string
	SecurityQuestion string
	SecurityAnswer   string
	CategoryID       uint64
	PostedBy         uint64
	PhotoURLs        []string
}

// UpdateFoundItemInput represents a partial update to a found item's details
type UpdateFoundItemInput struct {
	Name          *string
	Description   *string
	FoundDate     *time.Time
	FoundLocation *string
	CategoryID    *uint64
}

// Create posts a new found item with its photos
func (s *FoundItemService) Create(input CreateFoundItemInput) (*models.FoundItem, error) {
	if len(input.PhotoURLs) == 0 {
		return nil, ErrPhotoRequired
	}
	if input.PickupLocation == "" {
		return nil, ErrPickupLocationRequired
	}

	if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	item := &models.FoundItem{
		Name:             input.Name,
		Description:      input.Description,
		FoundDate:        input.FoundDate,
		FoundLocation:    input.FoundLocation,
		PickupLocation:   input.PickupLocation,
		SecurityQuestion: input.SecurityQuestion,
		CategoryID:       input.CategoryID,
		PostedBy:         input.PostedBy,
	}

	if input.SecurityAnswer != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.SecurityAnswer), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash security answer: %w", err)
		}
		item.SecurityAnswerHash = string(hash)
	}

	if err := s.foundItemRepo.CreateWithPhotos(item, input.PhotoURLs); err != nil {
		return nil, fmt.Errorf("failed to create found item: %w", err)
	}

	return s.foundItemRepo.FindByID(item.ID, "Photos", "Category", "Poster")
}

// Get returns one found item with photos, poster, category and derived status
func (s *FoundItemService) Get(id uint64) (*models.FoundItem, models.DisplayStatus, error) {
	item, err := s.foundItemRepo.FindByID(id, "Photos", "Category", "Poster")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrFoundItemNotFound
		}
		return nil, "", fmt.Errorf("failed to find found item: %w", err)
	}

	status, err := s.status.ForFoundItem(item.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to derive status: %w", err)
	}

	return item, status, nil
}

// List returns found items matching the filter, each with its derived status
func (s *FoundItemService) List(filter repository.ItemFilter) ([]models.FoundItem, []models.DisplayStatus, error) {
	if filter.SortBy != "" && !foundItemSortFields[filter.SortBy] {
		return nil, nil, ErrInvalidSortField
	}

	items, err := s.foundItemRepo.List(filter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list found items: %w", err)
	}

	statuses, err := s.statusesFor(items)
	if err != nil {
		return nil, nil, err
	}

	return items, statuses, nil
}

// ListMine returns all found items posted by the user with derived statuses
func (s *FoundItemService) ListMine(userID uint64) ([]models.FoundItem, []models.DisplayStatus, error) {
	items, err := s.foundItemRepo.ListByUser(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list found items: %w", err)
	}

	statuses, err := s.statusesFor(items)
	if err != nil {
		return nil, nil, err
	}

	return items, statuses, nil
}

// UpdateDetails applies a partial update. Poster only; missing and not-owned
// fail identically.
func (s *FoundItemService) UpdateDetails(id, actorID uint64, input UpdateFoundItemInput) (*models.FoundItem, error) {
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
	if input.FoundDate != nil {
		item.FoundDate = *input.FoundDate
	}
	if input.FoundLocation != nil {
		item.FoundLocation = *input.FoundLocation
	}

	if err := s.foundItemRepo.Update(item); err != nil {
		return nil, fmt.Errorf("failed to update found item: %w", err)
	}

	return s.foundItemRepo.FindByID(item.ID, "Photos", "Category", "Poster")
}

// ReplacePhotos swaps the item's photo set. Poster only.
func (s *FoundItemService) ReplacePhotos(id, actorID uint64, photoURLs []string) (*models.FoundItem, error) {
	if len(photoURLs) == 0 {
		return nil, ErrPhotoRequired
	}

	item, err := s.ownedItem(id, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.foundItemRepo.ReplacePhotos(item.ID, photoURLs); err != nil {
		return nil, fmt.Errorf("failed to replace photos: %w", err)
	}

	return s.foundItemRepo.FindByID(item.ID, "Photos", "Category", "Poster")
}

// UpdatePickupLocation changes where a claimant can collect the item. Poster only.
func (s *FoundItemService) UpdatePickupLocation(id, actorID uint64, pickupLocation string) (*models.FoundItem, error) {
	if pickupLocation == "" {
		return nil, ErrPickupLocationRequired
	}

	item, err := s.ownedItem(id, actorID)
	if err != nil {
		return nil, err
	}

	item.PickupLocation = pickupLocation
	if err := s.foundItemRepo.Update(item); err != nil {
		return nil, fmt.Errorf("failed to update pickup location: %w", err)
	}

	return item, nil
}

// UpdateSecurityQA replaces the security question and answer. The answer is
// bcrypt hashed; an empty answer clears the challenge. Poster only.
func (s *FoundItemService) UpdateSecurityQA(id, actorID uint64, question, answer string) (*models.FoundItem, error) {
	item, err := s.ownedItem(id, actorID)
	if err != nil {
		return nil, err
	}

	item.SecurityQuestion = question
	if answer == "" {
		item.SecurityAnswerHash = ""
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(answer), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash security answer: %w", err)
		}
		item.SecurityAnswerHash = string(hash)
	}

	if err := s.foundItemRepo.Update(item); err != nil {
		return nil, fmt.Errorf("failed to update security question: %w", err)
	}

	return item, nil
}

// Delete removes the item together with its claims and photos. Poster only.
func (s *FoundItemService) Delete(id, actorID uint64) error {
	item, err := s.ownedItem(id, actorID)
	if err != nil {
		return err
	}

	if err := s.foundItemRepo.Delete(item.ID); err != nil {
		return fmt.Errorf("failed to delete found item: %w", err)
	}

	return nil
}

func (s *FoundItemService) ownedItem(id, actorID uint64) (*models.FoundItem, error) {
	item, err := s.foundItemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFoundItemNotOwned
		}
		return nil, fmt.Errorf("failed to find found item: %w", err)
	}
	if item.PostedBy != actorID {
		return nil, ErrFoundItemNotOwned
	}
	return item, nil
}

func (s *FoundItemService) statusesFor(items []models.FoundItem) ([]models.DisplayStatus, error) {
	statuses := make([]models.DisplayStatus, len(items))
	for i := range items {
		status, err := s.status.ForFoundItem(items[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to derive status: %w", err)
		}
		statuses[i] = status
	}
	return statuses, nil
}
