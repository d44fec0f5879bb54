package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/campusconnect/lost-and-found-api/internal/dto"
	apierrors "github.com/campusconnect/lost-and-found-api/internal/errors"
	"github.com/campusconnect/lost-and-found-api/internal/middleware"
	"github.com/campusconnect/lost-and-found-api/internal/services"
	"github.com/gin-gonic/gin"
)

type FoundItemHandler struct {
	foundItems *services.FoundItemService
}

func NewFoundItemHandler(foundItems *services.FoundItemService) *FoundItemHandler {
	return &FoundItemHandler{foundItems: foundItems}
}

// ReportFoundItem posts a new found item
func (h *FoundItemHandler) ReportFoundItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req struct {
		Name             string    `json:"name" binding:"required"`
		Description      string    `json:"description" binding:"required"`
		FoundDate        time.Time `json:"found_date" binding:"required"`
		FoundLocation    string    `json:"found_location" binding:"required"`
		PickupLocation   string    `json:"pickup_location" binding:"required"`
		SecurityQuestion string    `json:"security_question"`
		SecurityAnswer   string    `json:"security_answer"`
		CategoryID       uint64    `json:"category_id" binding:"required"`
		Photos           []string  `json:"photos" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	item, err := h.foundItems.Create(services.CreateFoundItemInput{
		Name:             req.Name,
		Description:      req.Description,
		FoundDate:        req.FoundDate,
		FoundLocation:    req.FoundLocation,
		PickupLocation:   req.PickupLocation,
		SecurityQuestion: req.SecurityQuestion,
		SecurityAnswer:   req.SecurityAnswer,
		CategoryID:       req.CategoryID,
		PostedBy:         userID,
		PhotoURLs:        req.Photos,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPhotoRequired), errors.Is(err, services.ErrPickupLocationRequired):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrCategoryNotFound):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to create found item")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": dto.ToFoundItemDTO(*item, "Pending")})
}

// ListFoundItems returns found items with search, sort and pagination
func (h *FoundItemHandler) ListFoundItems(c *gin.Context) {
	filter := itemFilterFromQuery(c)

	items, statuses, err := h.foundItems.List(filter)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSortField) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to list found items")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": dto.ToFoundItemDTOs(items, statuses),
		"page":  filter.Page,
		"limit": filter.Limit,
	})
}

// GetFoundItem returns one found item with its derived status
func (h *FoundItemHandler) GetFoundItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid item ID")
		return
	}

	item, status, err := h.foundItems.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrFoundItemNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to load found item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": dto.ToFoundItemDTO(*item, status)})
}

// ListMyFoundItems returns the authenticated user's found items
func (h *FoundItemHandler) ListMyFoundItems(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	items, statuses, err := h.foundItems.ListMine(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list found items")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": dto.ToFoundItemDTOs(items, statuses)})
}

// UpdateFoundItemDetails applies a partial update to the poster's item
func (h *FoundItemHandler) UpdateFoundItemDetails(c *gin.Context) {
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
		Name          *string    `json:"name"`
		Description   *string    `json:"description"`
		FoundDate     *time.Time `json:"found_date"`
		FoundLocation *string    `json:"found_location"`
		CategoryID    *uint64    `json:"category_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	item, err := h.foundItems.UpdateDetails(id, userID, services.UpdateFoundItemInput{
		Name:          req.Name,
		Description:   req.Description,
		FoundDate:     req.FoundDate,
		FoundLocation: req.FoundLocation,
		CategoryID:    req.CategoryID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFoundItemNotOwned), errors.Is(err, services.ErrCategoryNotFound):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to update found item")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": dto.ToFoundItemDTO(*item, "")})
}

// UpdateFoundItemImages replaces the item's photo set
func (h *FoundItemHandler) UpdateFoundItemImages(c *gin.Context) {
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

	item, err := h.foundItems.ReplacePhotos(id, userID, req.Photos)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPhotoRequired):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrFoundItemNotOwned):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to update photos")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": dto.ToFoundItemDTO(*item, "")})
}

// UpdatePickupLocation changes where claimants can collect the item
func (h *FoundItemHandler) UpdatePickupLocation(c *gin.Context) {
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
		PickupLocation string `json:"pickup_location" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	item, err := h.foundItems.UpdatePickupLocation(id, userID, req.PickupLocation)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPickupLocationRequired):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrFoundItemNotOwned):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to update pickup location")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": dto.ToFoundItemDTO(*item, "")})
}

// UpdateSecurityQA replaces the item's ownership challenge
func (h *FoundItemHandler) UpdateSecurityQA(c *gin.Context) {
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
		SecurityQuestion string `json:"security_question" binding:"required"`
		SecurityAnswer   string `json:"security_answer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	item, err := h.foundItems.UpdateSecurityQA(id, userID, req.SecurityQuestion, req.SecurityAnswer)
	if err != nil {
		if errors.Is(err, services.ErrFoundItemNotOwned) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to update security question")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": dto.ToFoundItemDTO(*item, "")})
}

// DeleteFoundItem removes the poster's item and everything hanging off it
func (h *FoundItemHandler) DeleteFoundItem(c *gin.Context) {
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

	if err := h.foundItems.Delete(id, userID); err != nil {
		if errors.Is(err, services.ErrFoundItemNotOwned) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to delete found item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Found item deleted"})
}
