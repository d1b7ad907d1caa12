package models

import "time"

// Note is a free-text annotation attached to any context entity.
type Note struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Content string `gorm:"type:text;not null" json:"content"`
	UserID  string `gorm:"size:255;not null" json:"userId"`

	ContextRefs `gorm:"embedded"`
}
