package models

import "time"

// Campaign is a marketing campaign descriptor.
type Campaign struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name          string     `gorm:"size:255" json:"name"`
	Status        string     `gorm:"size:255;not null;default:upcoming" json:"status"`
	Type          string     `gorm:"size:255" json:"type"`
	CampaignDate  *time.Time `json:"campaignDate"`
	EndDate       *time.Time `json:"endDate"`
	CampaignOwner string     `gorm:"size:255" json:"campaignOwner"`
	Phone         string     `gorm:"size:255" json:"phone"`
	CourseID      string     `gorm:"size:255" json:"courseId"`
	Active        string     `gorm:"size:255" json:"active"`
	AmountSpent   int        `json:"amountSpent"`
	Description   string     `gorm:"type:text" json:"description"`
	UserID        string     `gorm:"size:255;index" json:"userId"`
}
