package models

import "time"

type LostItem struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	LostDate     time.Time `gorm:"not null" json:"lost_date"`
	LostLocation string    `gorm:"type:varchar(255);not null" json:"lost_location"`
	PostedBy     uint64    `gorm:"not null;index" json:"posted_by"`
	CategoryID   uint64    `gorm:"not null;index" json:"category_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Poster   User            `gorm:"foreignKey:PostedBy" json:"poster,omitempty"`
	Category Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Photos   []LostItemPhoto `gorm:"foreignKey:LostItemID" json:"photos,omitempty"`
	Reports  []Report        `gorm:"foreignKey:LostItemID" json:"reports,omitempty"`
}

type LostItemPhoto struct {
	ID         uint64 `gorm:"primarykey" json:"id"`
	LostItemID uint64 `gorm:"not null;index" json:"lost_item_id"`
	PhotoURL   string `gorm:"type:varchar(512);not null" json:"photo_url"`
}
