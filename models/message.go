package models

import "time"

// Message channel discriminators. These are the only two values the message
// type column accepts.
const (
	MessageTypeText     = "text"
	MessageTypeWhatsapp = "whatsapp"
)

// Message is an outbound SMS or WhatsApp message. ProviderSID is the id the
// messaging provider returned for the send.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	PhoneNumber       string `gorm:"size:20;not null" json:"phoneNumber"`
	ProviderSID       string `gorm:"column:message_id;unique" json:"messageId"`
	MessageContent    string `gorm:"type:text" json:"messageContent"`
	MessageTemplateID *uint  `gorm:"index" json:"messageTemplateId"`
	Type              string `gorm:"size:20;not null" json:"type"`
	UserID            string `gorm:"size:255;index" json:"userId"`

	ContextRefs `gorm:"embedded"`
}

// MessageTemplate is a reusable SMS/WhatsApp body, typed per channel.
type MessageTemplate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name    string `gorm:"size:255;not null" json:"name"`
	Type    string `gorm:"size:20;not null" json:"type"`
	Content string `gorm:"type:text;not null" json:"content"`
	UserID  string `gorm:"size:255;not null" json:"userId"`
}
