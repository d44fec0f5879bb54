package models

type Category struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}
