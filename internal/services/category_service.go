package services

import (
	"errors"
	"fmt"

	"github.com/campusconnect/lost-and-found-api/internal/models"
	"github.com/campusconnect/lost-and-found-api/internal/repository"
	"gorm.io/gorm"
)

var ErrCategoryNameTaken = errors.New("a category with this name already exists")

// CategoryService manages item categories
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create adds a new category. Names are unique.
func (s *CategoryService) Create(name, description string) (*models.Category, error) {
	if _, err := s.categoryRepo.FindByName(name); err == nil {
		return nil, ErrCategoryNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}

	category := &models.Category{Name: name, Description: description}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// List returns all categories ordered by name
func (s *CategoryService) List() ([]models.Category, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Get returns one category
func (s *CategoryService) Get(id uint64) (*models.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return category, nil
}

// Update applies a partial update to a category
func (s *CategoryService) Update(id uint64, name, description *string) (*models.Category, error) {
	category, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if name != nil && *name != category.Name {
		if _, err := s.categoryRepo.FindByName(*name); err == nil {
			return nil, ErrCategoryNameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check category name: %w", err)
		}
		category.Name = *name
	}
	if description != nil {
		category.Description = *description
	}

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

// Delete removes a category
func (s *CategoryService) Delete(id uint64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}
