package models

import (
	"time"

	"gorm.io/datatypes"
)

// Lead is a sales prospect moving through the funnel from lead to opportunity
// to learner. Stage and status fields are free-form strings set by the UI.
type Lead struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name             string `gorm:"size:255;not null" json:"name"`
	Email            string `gorm:"size:255" json:"email"`
	Phone            string `gorm:"size:20" json:"phone"`
	CountryCode      string `gorm:"size:10" json:"countryCode"`
	AlternativePhone string `gorm:"size:20" json:"alternativePhone"`
	FullNumber       string `gorm:"size:20" json:"fullNumber"`

	LeadSource        string `gorm:"size:255" json:"leadSource"`
	LeadSourceURL     string `gorm:"size:500" json:"leadSourceURL"`
	LeadScore         string `gorm:"size:50" json:"leadScore"`
	LeadStage         string `gorm:"size:50;default:lead" json:"leadStage"`
	LeadStatus        string `gorm:"size:50;default:Not Contacted" json:"leadStatus"`
	LeadOwner         string `gorm:"size:255" json:"leadOwner"`
	ColdLeadReason    string `gorm:"size:255" json:"coldLeadReason"`
	WarmStage         string `gorm:"size:50" json:"warmStage"`
	OpportunitySource string `gorm:"size:255" json:"opportunitySource"`
	OpportunityStage  string `gorm:"size:255" json:"opportunityStage"`
	OpportunityStatus string `gorm:"size:50;default:Visiting" json:"opportunityStatus"`

	TechStack   string                        `gorm:"size:255" json:"techStack"`
	CourseList  string                        `gorm:"size:255" json:"courseList"`
	ClassMode   string                        `gorm:"size:50" json:"classMode"`
	BatchTiming datatypes.JSONSlice[string]   `json:"batchTiming"`
	Programs    string                        `gorm:"size:255" json:"programs"`
	PriceList   string                        `gorm:"size:255" json:"priceList"`
	FeeQuoted   int                           `json:"feeQuoted"`
	CounselledBy string                       `gorm:"size:255" json:"counselledBy"`
	Description string                        `gorm:"type:text" json:"description"`

	ExpRegistrationDate *time.Time `json:"expRegistrationDate"`
	NextFollowUp        *time.Time `json:"nextFollowUp"`
	DemoAttendedDate    *time.Time `json:"demoAttendedDate"`
	VisitedDate         *time.Time `json:"visitedDate"`
	ExpectedWalkInDate  *time.Time `json:"expectedWalkInDate"`

	UserID string `gorm:"size:255;index" json:"userId"`
}
