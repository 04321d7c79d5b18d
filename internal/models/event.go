package models

import "time"

// Event is a calendar entry that is not assigned to anyone.
type Event struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Date        Date      `gorm:"not null;index" json:"date"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	TimeOfDay   string    `gorm:"type:varchar(20)" json:"time"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
