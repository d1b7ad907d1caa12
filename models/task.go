package models

import "time"

// Task is a lightweight follow-up to-do attached to any of the context
// entities. Creating one also records a feed activity.
type Task struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Subject  string    `gorm:"type:text;not null" json:"subject"`
	DueDate  time.Time `gorm:"not null" json:"dueDate"`
	Priority string    `gorm:"not null" json:"priority"`
	UserID   string    `gorm:"size:255;index" json:"userId"`

	ContextRefs `gorm:"embedded"`
}

// MainTask is the heavier, standalone to-do with owner/assignee/status
// tracking. It overlaps Task but is a distinct entity with its own surface.
type MainTask struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	TaskOwner   string     `gorm:"size:255" json:"taskOwner"`
	AssignTo    string     `gorm:"size:255" json:"assignTo"`
	DueDate     *time.Time `json:"dueDate"`
	Subject     string     `gorm:"size:255" json:"subject"`
	Source      string     `gorm:"size:255" json:"source"`
	Note        string     `gorm:"type:text" json:"note"`
	LearnerID   *uint      `gorm:"index" json:"learnerId"`
	Batch       string     `gorm:"size:255" json:"batch"`
	Priority    string     `gorm:"size:50" json:"priority"`
	Status      string     `gorm:"size:50" json:"status"`
	Reminder    string     `gorm:"size:255" json:"reminder"`
	TaskType    string     `gorm:"size:255" json:"taskType"`
	Description string     `gorm:"type:text" json:"description"`
}

func (MainTask) TableName() string { return "main_tasks" }
