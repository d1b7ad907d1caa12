package models

import (
	"time"

	"gorm.io/datatypes"
)

// Learner is an enrolled student. Batch membership has two representations:
// the learner_batches join table (authoritative) and the serialized BatchIDs
// column (denormalized view kept in step by the write paths). Both are written
// inside one transaction so they cannot drift.
type Learner struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name           string     `gorm:"size:255" json:"name"`
	Phone          string     `gorm:"size:20" json:"phone"`
	Email          string     `gorm:"size:255" json:"email"`
	Location       string     `gorm:"size:255" json:"location"`
	DateOfBirth    *time.Time `json:"dateOfBirth"`
	RegisteredDate *time.Time `json:"registeredDate"`
	Source         string     `gorm:"size:255" json:"source"`
	Description    string     `gorm:"type:text" json:"description"`

	BatchIDs datatypes.JSONSlice[int64] `gorm:"column:batch_id" json:"batchId"`

	IDProof                  string     `gorm:"size:255" json:"idProof"`
	Instalment1Screenshot    string     `gorm:"size:255" json:"instalment1Screenshot"`
	TotalFees                string     `gorm:"size:255" json:"totalFees"`
	FeesPaid                 string     `gorm:"size:255" json:"feesPaid"`
	DueAmount                string     `gorm:"size:255" json:"dueAmount"`
	DueDate                  *time.Time `json:"dueDate"`
	ModeOfInstallmentPayment string     `gorm:"size:255" json:"modeOfInstallmentPayment"`

	Status string `gorm:"size:50;default:Upcoming" json:"status"`
	UserID string `gorm:"size:255;index" json:"userId"`
}

// LearnerBatch links a learner to a batch. This join table is the source of
// truth for membership queries.
type LearnerBatch struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	LearnerID uint `gorm:"not null;index" json:"learnerId"`
	BatchID   uint `gorm:"not null;index" json:"batchId"`
}

func (LearnerBatch) TableName() string { return "learner_batches" }
