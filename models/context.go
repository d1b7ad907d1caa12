package models

// ContextRefs is the set of optional foreign keys used across tasks, meetings,
// emails, messages, notes and activities to tag a record with the entity it
// relates to. All columns are plain nullable integers; no FK constraint is
// enforced at the schema level.
type ContextRefs struct {
	LeadID     *uint `gorm:"index" json:"leadId"`
	BatchID    *uint `gorm:"index" json:"batchId"`
	TrainerID  *uint `gorm:"index" json:"trainerId"`
	CampaignID *uint `gorm:"index" json:"campaignId"`
	LearnerID  *uint `gorm:"index" json:"learnerId"`
	MainTaskID *uint `gorm:"index" json:"mainTaskId"`
}
