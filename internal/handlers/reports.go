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

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// CreateReport files a found-it report against someone's lost item
func (h *ReportHandler) CreateReport(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req struct {
		LostItemID     uint64 `json:"lost_item_id" binding:"required"`
		Message        string `json:"message"`
		PickupLocation string `json:"pickup_location" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	report, err := h.reports.Create(services.CreateReportInput{
		LostItemID:     req.LostItemID,
		FinderID:       userID,
		Message:        req.Message,
		PickupLocation: req.PickupLocation,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLostItemRequired), errors.Is(err, services.ErrPickupLocationRequired):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrLostItemNotFound):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to create report")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"report": dto.ToReportDTO(*report)})
}

// ListMyReports returns reports the authenticated user filed as finder
func (h *ReportHandler) ListMyReports(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	reports, err := h.reports.ListFiled(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list reports")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": dto.ToReportDTOs(reports)})
}

// ListReportsAboutMyItems returns reports filed against the user's lost items
func (h *ReportHandler) ListReportsAboutMyItems(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	reports, err := h.reports.ListReceived(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list reports")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": dto.ToReportDTOs(reports)})
}

// ListReportsForItem returns all reports on one lost item
func (h *ReportHandler) ListReportsForItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid item ID")
		return
	}

	reports, err := h.reports.ListForItem(itemID)
	if err != nil {
		if errors.Is(err, services.ErrLostItemNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to list reports")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": dto.ToReportDTOs(reports)})
}

// UpdateReportStatus marks a report Returned or reverts it. Item poster only.
func (h *ReportHandler) UpdateReportStatus(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid report ID")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	report, err := h.reports.UpdateStatus(id, userID, models.ReportStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidReportStatus):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrReportNotFound):
			apierrors.NotFound(c, err.Error())
		case errors.Is(err, services.ErrNotLostItemPoster):
			apierrors.Forbidden(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to update report status")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": dto.ToReportDTO(*report)})
}

// DeleteReport withdraws the authenticated user's own report
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid report ID")
		return
	}

	if err := h.reports.Delete(id, userID); err != nil {
		if errors.Is(err, services.ErrReportNotOwned) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to delete report")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report deleted"})
}
