package models

import "time"

type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "Pending"
	ReportStatusReturned ReportStatus = "Returned"
)

// ValidReportStatus reports whether s is a recognized report state.
func ValidReportStatus(s ReportStatus) bool {
	return s == ReportStatusPending || s == ReportStatusReturned
}

// Report records that a user found an item matching someone else's
// lost-item posting.
type Report struct {
	ID             uint64       `gorm:"primarykey" json:"id"`
	LostItemID     uint64       `gorm:"not null;index" json:"lost_item_id"`
	UserWhoFound   uint64       `gorm:"not null;index" json:"user_who_found"`
	Message        string       `gorm:"type:text" json:"message"`
	PickupLocation string       `gorm:"type:varchar(255);not null" json:"pickup_location"`
	Status         ReportStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`

	// Relations
	LostItem LostItem `gorm:"foreignKey:LostItemID" json:"lost_item,omitempty"`
	Finder   User     `gorm:"foreignKey:UserWhoFound" json:"finder,omitempty"`
}
