package models

import (
	"time"

	"gorm.io/datatypes"
)

// Meeting is a scheduled video call backed by a provider-issued meeting id.
// Participants are stored as a JSON array of email addresses.
type Meeting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	MeetingName   string                      `gorm:"size:255;not null" json:"meetingName"`
	Location      string                      `gorm:"size:255" json:"location"`
	ZoomMeetingID string                      `gorm:"size:255;not null" json:"zoomMeetingId"`
	StartTime     time.Time                   `gorm:"not null" json:"startTime"`
	EndTime       time.Time                   `gorm:"not null" json:"endTime"`
	HostID        string                      `gorm:"size:255" json:"hostId"`
	Participants  datatypes.JSONSlice[string] `json:"participants"`
	UserID        string                      `gorm:"size:255;not null" json:"userId"`

	ContextRefs `gorm:"embedded"`
}
