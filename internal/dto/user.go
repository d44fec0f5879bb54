package dto

import (
	"github.com/campusconnect/lost-and-found-api/internal/models"
)

// UserDTO represents a user's public contact card in API responses
type UserDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	RollNumber  string `json:"roll_number"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Hostel      string `json:"hostel,omitempty"`
	RoomNumber  string `json:"room_number,omitempty"`
	ProfilePic  string `json:"profile_pic,omitempty"`
}

// ToUserDTO converts a user to its public DTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		RollNumber:  user.RollNumber,
		PhoneNumber: user.PhoneNumber,
		Hostel:      user.Hostel,
		RoomNumber:  user.RoomNumber,
		ProfilePic:  user.ProfilePic,
	}
}
