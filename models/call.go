package models

import "time"

// Call is a telephony record pushed in by the provider webhook.
type Call struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	CallerID        string `gorm:"size:255;not null" json:"callerId"`
	To              string `gorm:"size:255;not null" json:"to"`
	Status          string `gorm:"size:255;not null" json:"status"`
	AgentID         string `gorm:"size:255;not null" json:"agentId"`
	UserNo          string `gorm:"size:255;not null" json:"userNo"`
	Time            int    `gorm:"not null" json:"time"`
	Direction       string `gorm:"size:255;not null" json:"direction"`
	AnsweredSeconds int    `gorm:"not null" json:"answeredSeconds"`
	IsRecorded      bool   `json:"isRecorded"`
	Filename        string `gorm:"size:255;not null" json:"filename"`
}
