package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/campusconnect/lost-and-found-api/internal/dto"
	apierrors "github.com/campusconnect/lost-and-found-api/internal/errors"
	"github.com/campusconnect/lost-and-found-api/internal/middleware"
	"github.com/campusconnect/lost-and-found-api/internal/models"
	"github.com/campusconnect/lost-and-found-api/internal/services"
	"github.com/gin-gonic/gin"
)

type ClaimHandler struct {
	claims *services.ClaimService
}

func NewClaimHandler(claims *services.ClaimService) *ClaimHandler {
	return &ClaimHandler{claims: claims}
}

// CreateClaim files a new ownership claim against a found item
func (h *ClaimHandler) CreateClaim(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req struct {
		FoundItemID           uint64 `json:"found_item_id" binding:"required"`
		SecurityAnswerAttempt string `json:"security_answer_attempt"`
		Message               string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	claim, err := h.claims.Create(services.CreateClaimInput{
		FoundItemID:           req.FoundItemID,
		ClaimingUserID:        userID,
		SecurityAnswerAttempt: req.SecurityAnswerAttempt,
		Message:               req.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFoundItemRequired):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrFoundItemNotFound):
			apierrors.NotFound(c, err.Error())
		case errors.Is(err, services.ErrDuplicateClaim):
			apierrors.Conflict(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to create claim")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"claim": dto.ToClaimDTO(*claim)})
}

// ListClaimsForItem returns all claims on a found item. Item poster only.
func (h *ClaimHandler) ListClaimsForItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	itemID, err := strconv.ParseUint(c.Param("found_item_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid item ID")
		return
	}

	claims, err := h.claims.ListForItem(itemID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFoundItemNotFound):
			apierrors.NotFound(c, err.Error())
		case errors.Is(err, services.ErrNotFoundItemPoster):
			apierrors.Forbidden(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to list claims")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"claims": dto.ToClaimDTOs(claims)})
}

// ListMyClaims returns the authenticated user's claims
func (h *ClaimHandler) ListMyClaims(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	claims, err := h.claims.ListForUser(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list claims")
		return
	}

	c.JSON(http.StatusOK, gin.H{"claims": dto.ToClaimDTOs(claims)})
}

// GetClaim returns one claim
func (h *ClaimHandler) GetClaim(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid claim ID")
		return
	}

	claim, err := h.claims.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrClaimNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to load claim")
		return
	}

	c.JSON(http.StatusOK, gin.H{"claim": dto.ToClaimDTO(*claim)})
}

// UpdateClaimStatus approves or rejects a claim. Item poster only; the
// claimant is notified after the update.
func (h *ClaimHandler) UpdateClaimStatus(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid claim ID")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	claim, err := h.claims.UpdateStatus(id, userID, models.ClaimStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidClaimStatus):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrClaimNotFound):
			apierrors.NotFound(c, err.Error())
		case errors.Is(err, services.ErrNotFoundItemPoster):
			apierrors.Forbidden(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to update claim status")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"claim": dto.ToClaimDTO(*claim)})
}

// DeleteClaim withdraws the authenticated user's own claim
func (h *ClaimHandler) DeleteClaim(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid claim ID")
		return
	}

	if err := h.claims.Delete(id, userID); err != nil {
		if errors.Is(err, services.ErrClaimNotOwned) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to delete claim")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Claim deleted"})
}
