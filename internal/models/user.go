package models

import "time"

type User struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash  string    `gorm:"type:varchar(255);not null" json:"-"`
	RollNumber    string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"roll_number"`
	PhoneNumber   string    `gorm:"type:varchar(20)" json:"phone_number"`
	Hostel        string    `gorm:"type:varchar(100)" json:"hostel"`
	RoomNumber    string    `gorm:"type:varchar(20)" json:"room_number"`
	ProfilePic    string    `gorm:"type:varchar(512)" json:"profile_pic"`
	EmailVerified bool      `gorm:"not null;default:false" json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	LostItems  []LostItem  `gorm:"foreignKey:PostedBy" json:"-"`
	FoundItems []FoundItem `gorm:"foreignKey:PostedBy" json:"-"`
	Claims     []Claim     `gorm:"foreignKey:ClaimingUserID" json:"-"`
	Reports    []Report    `gorm:"foreignKey:UserWhoFound" json:"-"`
}
