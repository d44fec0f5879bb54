package dto

import (
	"time"

	"github.com/campusconnect/lost-and-found-api/internal/models"
)

// ReportDTO represents a found-it report in API responses
type ReportDTO struct {
	ID             uint64              `json:"id"`
	LostItemID     uint64              `json:"lost_item_id"`
	UserWhoFound   uint64              `json:"user_who_found"`
	Message        string              `json:"message,omitempty"`
	PickupLocation string              `json:"pickup_location"`
	Status         models.ReportStatus `json:"status"`
	Finder         *UserDTO            `json:"finder,omitempty"`
	LostItem       *LostItemDTO        `json:"lost_item,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// ToReportDTO converts a report to a DTO. Preloaded relations are included.
func ToReportDTO(report models.Report) ReportDTO {
	out := ReportDTO{
		ID:             report.ID,
		LostItemID:     report.LostItemID,
		UserWhoFound:   report.UserWhoFound,
		Message:        report.Message,
		PickupLocation: report.PickupLocation,
		Status:         report.Status,
		CreatedAt:      report.CreatedAt,
		UpdatedAt:      report.UpdatedAt,
	}
	if report.Finder.ID != 0 {
		finder := ToUserDTO(report.Finder)
		out.Finder = &finder
	}
	if report.LostItem.ID != 0 {
		item := ToLostItemDTO(report.LostItem, "")
		out.LostItem = &item
	}
	return out
}

// ToReportDTOs converts a slice of reports
func ToReportDTOs(reports []models.Report) []ReportDTO {
	out := make([]ReportDTO, len(reports))
	for i, r := range reports {
		out[i] = ToReportDTO(r)
	}
	return out
}
