package models

import "time"

// Common interaction types recorded by the front end.
const (
	InteractionTypeClick = "click"
	InteractionTypeHover = "hover"
)

// Interaction is a single UI event reported by a client.
type Interaction struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Type      string    `gorm:"type:varchar(50);not null;index" json:"type"`
	Element   string    `gorm:"type:varchar(255)" json:"element"`
	Position  string    `gorm:"type:varchar(100)" json:"position"`
	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}
