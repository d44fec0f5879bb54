package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/campusconnect/lost-and-found-api/internal/dto"
	apierrors "github.com/campusconnect/lost-and-found-api/internal/errors"
	"github.com/campusconnect/lost-and-found-api/internal/middleware"
	"github.com/campusconnect/lost-and-found-api/internal/repository"
	"github.com/campusconnect/lost-and-found-api/internal/services"
	"github.com/campusconnect/lost-and-found-api/internal/utils"
	"github.com/gin-gonic/gin"
)

type LostItemHandler struct {
	lostItems *services.LostItemService
}

func NewLostItemHandler(lostItems *services.LostItemService) *LostItemHandler {
	return &LostItemHandler{lostItems: lostItems}
}

// itemFilterFromQuery builds the listing filter shared by both item registries
func itemFilterFromQuery(c *gin.Context) repository.ItemFilter {
	params := utils.GetPaginationParams(c)
	return repository.ItemFilter{
		Query:    c.Query("search"),
		SortBy:   c.Query("sort_by"),
		SortDesc: c.DefaultQuery("order", "desc") == "desc",
		Page:     params.Page,
		Limit:    params.Limit,
	}
}

// ReportLostItem posts a new lost item
func (h *LostItemHandler) ReportLostItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req struct {
		Name         string    `json:"name" binding:"required"`
		Description  string    `json:"description" binding:"required"`
		LostDate     time.Time `json:"lost_date" binding:"required"`
		LostLocation string    `json:"lost_location" binding:"required"`
		CategoryID   uint64    `json:"category_id" binding:"required"`
		Photos       []string  `json:"photos" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	item, err := h.lostItems.Create(services.CreateLostItemInput{
		Name:         req.Name,
		Description:  req.Description,
		LostDate:     req.LostDate,
		LostLocation: req.LostLocation,
		CategoryID:   req.CategoryID,
		PostedBy:     userID,
		PhotoURLs:    req.Photos,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPhotoRequired):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrCategoryNotFound):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to create lost item")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": dto.ToLostItemDTO(*item, "Pending")})
}

// ListLostItems returns lost items with search, sort and pagination
func (h *LostItemHandler) ListLostItems(c *gin.Context) {
	filter := itemFilterFromQuery(c)

	items, statuses, err := h.lostItems.List(filter)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSortField) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to list lost items")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": dto.ToLostItemDTOs(items, statuses),
		"page":  filter.Page,
		"limit": filter.Limit,
	})
}

// GetLostItem returns one lost item with its derived status
func (h *LostItemHandler) GetLostItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid item ID")
		return
	}

	item, status, err := h.lostItems.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrLostItemNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to load lost item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": dto.ToLostItemDTO(*item, status)})
}

// ListMyLostItems returns the authenticated user's lost items
func (h *LostItemHandler) ListMyLostItems(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	items, statuses, err := h.lostItems.ListMine(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list lost items")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": dto.ToLostItemDTOs(items, statuses)})
}

// UpdateLostItem applies a partial update to the poster's item
func (h *LostItemHandler) UpdateLostItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid item ID")
		return
	}

	var req struct {
		Name         *string    `json:"name"`
		Description  *string    `json:"description"`
		LostDate     *time.Time `json:"lost_date"`
		LostLocation *string    `json:"lost_location"`
		CategoryID   *uint64    `json:"category_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	item, err := h.lostItems.UpdateDetails(id, userID, services.UpdateLostItemInput{
		Name:         req.Name,
		Description:  req.Description,
		LostDate:     req.LostDate,
		LostLocation: req.LostLocation,
		CategoryID:   req.CategoryID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLostItemNotOwned):
			apierrors.NotFound(c, err.Error())
		case errors.Is(err, services.ErrCategoryNotFound):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to update lost item")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": dto.ToLostItemDTO(*item, "")})
}

// UpdateLostItemImages replaces the item's photo set
func (h *LostItemHandler) UpdateLostItemImages(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid item ID")
		return
	}

	var req struct {
		Photos []string `json:"photos" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	item, err := h.lostItems.ReplacePhotos(id, userID, req.Photos)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPhotoRequired):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrLostItemNotOwned):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to update photos")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": dto.ToLostItemDTO(*item, "")})
}

// DeleteLostItem removes the poster's item and everything hanging off it
func (h *LostItemHandler) DeleteLostItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.lostItems.Delete(id, userID); err != nil {
		if errors.Is(err, services.ErrLostItemNotOwned) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to delete lost item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lost item deleted"})
}
