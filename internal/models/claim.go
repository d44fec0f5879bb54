package models

import "time"

type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "Pending"
	ClaimStatusApproved ClaimStatus = "Approved"
	ClaimStatusRejected ClaimStatus = "Rejected"
)

// ValidClaimStatus reports whether s is one of the three recognized claim states.
func ValidClaimStatus(s ClaimStatus) bool {
	switch s {
	case ClaimStatusPending, ClaimStatusApproved, ClaimStatusRejected:
		return true
	}
	return false
}

// Claim is a user's assertion of ownership over a posted found item.
type Claim struct {
	ID                    uint64      `gorm:"primarykey" json:"id"`
	FoundItemID           uint64      `gorm:"not null;index" json:"found_item_id"`
	ClaimingUserID        uint64      `gorm:"not null;index" json:"claiming_user_id"`
	SecurityAnswerAttempt string      `gorm:"type:varchar(255)" json:"security_answer_attempt"`
	Message               string      `gorm:"type:text" json:"message"`
	Status                ClaimStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`

	// Relations
	FoundItem    FoundItem `gorm:"foreignKey:FoundItemID" json:"found_item,omitempty"`
	ClaimingUser User      `gorm:"foreignKey:ClaimingUserID" json:"claiming_user,omitempty"`
}
