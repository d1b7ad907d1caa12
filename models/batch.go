package models

import "time"

// Batch is a training cohort, optionally assigned to a trainer.
type Batch struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	BatchName        string     `gorm:"size:255" json:"batchName"`
	Location         string     `gorm:"size:255" json:"location"`
	Slot             string     `gorm:"size:255" json:"slot"`
	TrainerID        *uint      `gorm:"index" json:"trainerId"`
	BatchStatus      string     `gorm:"size:255;default:Upcoming" json:"batchStatus"`
	TopicStatus      string     `gorm:"size:255" json:"topicStatus"`
	NoOfStudents     int        `json:"noOfStudents"`
	Stack            string     `gorm:"size:255" json:"stack"`
	StartDate        *time.Time `json:"startDate"`
	TentativeEndDate *time.Time `json:"tentativeEndDate"`
	ClassMode        string     `gorm:"size:255" json:"classMode"`
	Stage            string     `gorm:"size:255" json:"stage"`
	Comment          string     `gorm:"type:text" json:"comment"`
	Timing           string     `gorm:"size:255" json:"timing"`
	BatchStage       string     `gorm:"size:255" json:"batchStage"`
	Mentor           string     `gorm:"size:255" json:"mentor"`
	ZoomAccount      string     `gorm:"size:255" json:"zoomAccount"`
	StackOwner       string     `gorm:"size:255" json:"stackOwner"`
	Owner            string     `gorm:"size:255" json:"owner"`
	BatchOwner       string     `gorm:"size:255" json:"batchOwner"`
	Description      string     `gorm:"type:text" json:"description"`
	UserID           string     `gorm:"size:255;index" json:"userId"`
}
