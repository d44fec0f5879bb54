package dto

import (
	"time"

	"github.com/campusconnect/lost-and-found-api/internal/models"
)

// LostItemDTO represents a lost item in API responses
type LostItemDTO struct {
	ID           uint64               `json:"id"`
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	LostDate     time.Time            `json:"lost_date"`
	LostLocation string               `json:"lost_location"`
	CategoryID   uint64               `json:"category_id"`
	Category     string               `json:"category,omitempty"`
	Photos       []string             `json:"photos"`
	Status       models.DisplayStatus `json:"status,omitempty"`
	Poster       *UserDTO             `json:"poster,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

// FoundItemDTO represents a found item in API responses. The security answer
// hash never appears; only whether a challenge exists.
type FoundItemDTO struct {
	ID               uint64               `json:"id"`
	Name             string               `json:"name"`
	Description      string               `json:"description"`
	FoundDate        time.Time            `json:"found_date"`
	FoundLocation    string               `json:"found_location"`
	PickupLocation   string               `json:"pickup_location"`
	SecurityQuestion string               `json:"security_question,omitempty"`
	CategoryID       uint64               `json:"category_id"`
	Category         string               `json:"category,omitempty"`
	Photos           []string             `json:"photos"`
	Status           models.DisplayStatus `json:"status,omitempty"`
	Poster           *UserDTO             `json:"poster,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
}

// ToLostItemDTO converts a lost item and its derived status to a DTO
func ToLostItemDTO(item models.LostItem, status models.DisplayStatus) LostItemDTO {
	out := LostItemDTO{
		ID:           item.ID,
		Name:         item.Name,
		Description:  item.Description,
		LostDate:     item.LostDate,
		LostLocation: item.LostLocation,
		CategoryID:   item.CategoryID,
		Category:     item.Category.Name,
		Photos:       lostPhotoURLs(item.Photos),
		Status:       status,
		CreatedAt:    item.CreatedAt,
	}
	if item.Poster.ID != 0 {
		poster := ToUserDTO(item.Poster)
		out.Poster = &poster
	}
	return out
}

// ToLostItemDTOs converts parallel item and status slices
func ToLostItemDTOs(items []models.LostItem, statuses []models.DisplayStatus) []LostItemDTO {
	out := make([]LostItemDTO, len(items))
	for i := range items {
		out[i] = ToLostItemDTO(items[i], statuses[i])
	}
	return out
}

// ToFoundItemDTO converts a found item and its derived status to a DTO
func ToFoundItemDTO(item models.FoundItem, status models.DisplayStatus) FoundItemDTO {
	out := FoundItemDTO{
		ID:               item.ID,
		Name:             item.Name,
		Description:      item.Description,
		FoundDate:        item.FoundDate,
		FoundLocation:    item.FoundLocation,
		PickupLocation:   item.PickupLocation,
		SecurityQuestion: item.SecurityQuestion,
		CategoryID:       item.CategoryID,
		Category:         item.Category.Name,
		Photos:           foundPhotoURLs(item.Photos),
		Status:           status,
		CreatedAt:        item.CreatedAt,
	}
	if item.Poster.ID != 0 {
		poster := ToUserDTO(item.Poster)
		out.Poster = &poster
	}
	return out
}

// ToFoundItemDTOs converts parallel item and status slices
func ToFoundItemDTOs(items []models.FoundItem, statuses []models.DisplayStatus) []FoundItemDTO {
	out := make([]FoundItemDTO, len(items))
	for i := range items {
		out[i] = ToFoundItemDTO(items[i], statuses[i])
	}
	return out
}

func lostPhotoURLs(photos []models.LostItemPhoto) []string {
	urls := make([]string, len(photos))
	for i, p := range photos {
		urls[i] = p.PhotoURL
	}
	return urls
}

func foundPhotoURLs(photos []models.FoundItemPhoto) []string {
	urls := make([]string, len(photos))
	for i, p := range photos {
		urls[i] = p.PhotoURL
	}
	return urls
}
