package models

import (
	"time"

	"gorm.io/datatypes"
)

// Email is an outbound email record. When a template was used, Subject and
// Body stay empty and EmailTemplateID points at the rendered template.
type Email struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	To              datatypes.JSONSlice[string] `gorm:"not null" json:"to"`
	Bcc             datatypes.JSONSlice[string] `json:"bcc"`
	From            string                      `gorm:"size:255;not null" json:"from"`
	Subject         string                      `gorm:"size:255" json:"subject"`
	Body            string                      `gorm:"type:text" json:"body"`
	EmailTemplateID *uint                       `gorm:"index" json:"emailTemplateId"`
	UserID          string                      `gorm:"size:255;index" json:"userId"`

	ContextRefs `gorm:"embedded"`
}

// EmailTemplate is a reusable HTML email body with {leadName} and {userEmail}
// placeholder tokens.
type EmailTemplate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name        string `gorm:"size:255;not null;unique" json:"name"`
	Subject     string `gorm:"size:255" json:"subject"`
	HTMLContent string `gorm:"type:text" json:"htmlContent"`
	UserID      string `gorm:"size:255;index" json:"userId"`
}
