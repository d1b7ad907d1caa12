package models

import "time"

// Trainer is an instructor profile. IDProof holds the public URL of an
// uploaded identity document, or empty when none was uploaded.
type Trainer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	TrainerName string     `gorm:"size:255" json:"trainerName"`
	Phone       string     `gorm:"size:20" json:"phone"`
	Email       string     `gorm:"size:255" json:"email"`
	Location    string     `gorm:"size:255" json:"location"`
	TechStack   string     `gorm:"size:255" json:"techStack"`
	IDProof     string     `gorm:"size:255" json:"idProof"`
	JoiningDate *time.Time `json:"joiningDate"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Slot        string     `gorm:"size:255" json:"slot"`
	Status      string     `gorm:"size:50" json:"status"`
	Description string     `gorm:"type:text" json:"description"`
	UserID      string     `gorm:"size:255;index" json:"userId"`
}
