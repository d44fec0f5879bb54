package dto

import (
	"time"

	"github.com/campusconnect/lost-and-found-api/internal/models"
)

// ClaimDTO represents a claim in API responses
type ClaimDTO struct {
	ID                    uint64             `json:"id"`
	FoundItemID           uint64             `json:"found_item_id"`
	ClaimingUserID        uint64             `json:"claiming_user_id"`
	SecurityAnswerAttempt string             `json:"security_answer_attempt,omitempty"`
	Message               string             `json:"message,omitempty"`
	Status                models.ClaimStatus `json:"status"`
	ClaimingUser          *UserDTO           `json:"claiming_user,omitempty"`
	FoundItem             *FoundItemDTO      `json:"found_item,omitempty"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             time.Time          `json:"updated_at"`
}

// ToClaimDTO converts a claim to a DTO. Preloaded relations are included;
// the nested item carries no derived status.
func ToClaimDTO(claim models.Claim) ClaimDTO {
	out := ClaimDTO{
		ID:                    claim.ID,
		FoundItemID:           claim.FoundItemID,
		ClaimingUserID:        claim.ClaimingUserID,
		SecurityAnswerAttempt: claim.SecurityAnswerAttempt,
		Message:               claim.Message,
		Status:                claim.Status,
		CreatedAt:             claim.CreatedAt,
		UpdatedAt:             claim.UpdatedAt,
	}
	if claim.ClaimingUser.ID != 0 {
		user := ToUserDTO(claim.ClaimingUser)
		out.ClaimingUser = &user
	}
	if claim.FoundItem.ID != 0 {
		item := ToFoundItemDTO(claim.FoundItem, "")
		out.FoundItem = &item
	}
	return out
}

// ToClaimDTOs converts a slice of claims
func ToClaimDTOs(claims []models.Claim) []ClaimDTO {
	out := make([]ClaimDTO, len(claims))
	for i, c := range claims {
		out[i] = ToClaimDTO(c)
	}
	return out
}
