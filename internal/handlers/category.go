package handlers

import (
	"errors"
	"net/http"
	"strconv"

	apierrors "github.com/campusconnect/lost-and-found-api/internal/errors"
	"github.com/campusconnect/lost-and-found-api/internal/services"
	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categories *services.CategoryService
}

func NewCategoryHandler(categories *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// CreateCategory adds a new category
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	category, err := h.categories.Create(req.Name, req.Description)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNameTaken) {
			apierrors.Conflict(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// ListCategories returns all categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categories.List()
	if err != nil {
		apierrors.InternalError(c, "Failed to list categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetCategory returns one category
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid category ID")
		return
	}

	category, err := h.categories.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to load category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// UpdateCategory applies a partial update
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid category ID")
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	category, err := h.categories.Update(id, req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryNotFound):
			apierrors.NotFound(c, err.Error())
		case errors.Is(err, services.ErrCategoryNameTaken):
			apierrors.Conflict(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to update category")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory removes a category
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.categories.Delete(id); err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to delete category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
