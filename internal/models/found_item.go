package models

import "time"

type FoundItem struct {
	ID                 uint64    `gorm:"primarykey" json:"id"`
	Name               string    `gorm:"type:varchar(255);not null" json:"name"`
	Description        string    `gorm:"type:text;not null" json:"description"`
	FoundDate          time.Time `gorm:"not null" json:"found_date"`
	FoundLocation      string    `gorm:"type:varchar(255);not null" json:"found_location"`
	PickupLocation     string    `gorm:"type:varchar(255);not null" json:"pickup_location"`
	SecurityQuestion   string    `gorm:"type:varchar(255)" json:"security_question"`
	SecurityAnswerHash string    `gorm:"type:varchar(255)" json:"-"`
	PostedBy           uint64    `gorm:"not null;index" json:"posted_by"`
	CategoryID         uint64    `gorm:"not null;index" json:"category_id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	// Relations
	Poster   User             `gorm:"foreignKey:PostedBy" json:"poster,omitempty"`
	Category Category         `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Photos   []FoundItemPhoto `gorm:"foreignKey:FoundItemID" json:"photos,omitempty"`
	Claims   []Claim          `gorm:"foreignKey:FoundItemID" json:"claims,omitempty"`
}

type FoundItemPhoto struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	FoundItemID uint64 `gorm:"not null;index" json:"found_item_id"`
	PhotoURL    string `gorm:"type:varchar(512);not null" json:"photo_url"`
}
