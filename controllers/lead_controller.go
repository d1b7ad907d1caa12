package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"skillcapital/models"
	"skillcapital/utils"
)

type LeadController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewLeadController(db *gorm.DB, logger *log.Logger) *LeadController {
	return &LeadController{
		DB:     db,
		Logger: logger,
	}
}

var leadFilters = []utils.QueryFilter{
	{Param: "name", Column: "name", Kind: utils.FilterLike},
	{Param: "email", Column: "email", Kind: utils.FilterEquals},
	{Param: "phone", Column: "phone", Kind: utils.FilterEquals},
	{Param: "leadSource", Column: "lead_source", Kind: utils.FilterEquals},
	{Param: "leadStage", Column: "lead_stage", Kind: utils.FilterEquals},
	{Param: "leadStatus", Column: "lead_status", Kind: utils.FilterEquals},
	{Param: "leadOwner", Column: "lead_owner", Kind: utils.FilterEquals},
	{Param: "techStack", Column: "tech_stack", Kind: utils.FilterEquals},
	{Param: "courseList", Column: "course_list", Kind: utils.FilterEquals},
	{Param: "classMode", Column: "class_mode", Kind: utils.FilterEquals},
	{Param: "opportunityStage", Column: "opportunity_stage", Kind: utils.FilterEquals},
	{Param: "opportunityStatus", Column: "opportunity_status", Kind: utils.FilterEquals},
	{Param: "counselledBy", Column: "counselled_by", Kind: utils.FilterEquals},
	{Param: "userId", Column: "user_id", Kind: utils.FilterEquals},
}

var leadColumns = map[string]string{
	"name":                "name",
	"email":               "email",
	"phone":               "phone",
	"countryCode":         "country_code",
	"alternativePhone":    "alternative_phone",
	"fullNumber":          "full_number",
	"leadSource":          "lead_source",
	"leadSourceURL":       "lead_source_url",
	"leadScore":           "lead_score",
	"leadStage":           "lead_stage",
	"leadStatus":          "lead_status",
	"leadOwner":           "lead_owner",
	"coldLeadReason":      "cold_lead_reason",
	"warmStage":           "warm_stage",
	"opportunitySource":   "opportunity_source",
	"opportunityStage":    "opportunity_stage",
	"opportunityStatus":   "opportunity_status",
	"techStack":           "tech_stack",
	"courseList":          "course_list",
	"classMode":           "class_mode",
	"programs":            "programs",
	"priceList":           "price_list",
	"feeQuoted":           "fee_quoted",
	"counselledBy":        "counselled_by",
	"description":         "description",
	"expRegistrationDate": "exp_registration_date",
	"nextFollowUp":        "next_follow_up",
	"demoAttendedDate":    "demo_attended_date",
	"visitedDate":         "visited_date",
	"expectedWalkInDate":  "expected_walk_in_date",
	"userId":              "user_id",
}

var leadDateFields = map[string]bool{
	"expRegistrationDate": true,
	"nextFollowUp":        true,
	"demoAttendedDate":    true,
	"visitedDate":         true,
	"expectedWalkInDate":  true,
}

// GetLeads lists leads by the registered filters, or returns a single lead
// when id is present.
func (lc *LeadController) GetLeads(c *fiber.Ctx) error {
	if id := c.Query("id"); id != "" {
		var lead models.Lead
		if err := lc.DB.First(&lead, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.ErrorResponse(c, fiber.StatusNotFound, "Lead not found", nil)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch lead", err)
		}
		return utils.DataResponse(c, fiber.StatusOK, "Lead fetched successfully", lead)
	}

	query := utils.ApplyFilters(c, lc.DB.Model(&models.Lead{}), leadFilters)
	query, err := utils.ApplyDateRange(c, query, "created_at")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	if c.Query("todayWalk") == "todays_expected_walkins" {
		start := startOfDay(time.Now())
		query = query.Where("expected_walk_in_date >= ? AND expected_walk_in_date < ?", start, start.AddDate(0, 0, 1))
	}

	var leads []models.Lead
	if err := query.Order("created_at DESC").Find(&leads).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch leads", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Leads fetched successfully", leads)
}

// CreateLead inserts one lead. Date-like fields arrive as strings and are
// coerced here.
func (lc *LeadController) CreateLead(c *fiber.Ctx) error {
	var input struct {
		Name              string   `json:"name" validate:"required"`
		Email             string   `json:"email" validate:"omitempty,email"`
		Phone             string   `json:"phone"`
		CountryCode       string   `json:"countryCode"`
		AlternativePhone  string   `json:"alternativePhone"`
		FullNumber        string   `json:"fullNumber"`
		LeadSource        string   `json:"leadSource"`
		LeadSourceURL     string   `json:"leadSourceURL"`
		LeadScore         string   `json:"leadScore"`
		LeadStage         string   `json:"leadStage"`
		LeadStatus        string   `json:"leadStatus"`
		LeadOwner         string   `json:"leadOwner"`
		ColdLeadReason    string   `json:"coldLeadReason"`
		WarmStage         string   `json:"warmStage"`
		OpportunitySource string   `json:"opportunitySource"`
		OpportunityStage  string   `json:"opportunityStage"`
		OpportunityStatus string   `json:"opportunityStatus"`
		TechStack         string   `json:"techStack"`
		CourseList        string   `json:"courseList"`
		ClassMode         string   `json:"classMode"`
		BatchTiming       []string `json:"batchTiming"`
		Programs          string   `json:"programs"`
		PriceList         string   `json:"priceList"`
		FeeQuoted         int      `json:"feeQuoted"`
		CounselledBy      string   `json:"counselledBy"`
		Description       string   `json:"description"`

		ExpRegistrationDate string `json:"expRegistrationDate"`
		NextFollowUp        string `json:"nextFollowUp"`
		DemoAttendedDate    string `json:"demoAttendedDate"`
		VisitedDate         string `json:"visitedDate"`
		ExpectedWalkInDate  string `json:"expectedWalkInDate"`

		UserID string `json:"userId"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	lead := models.Lead{
		Name:              input.Name,
		Email:             input.Email,
		Phone:             input.Phone,
		CountryCode:       input.CountryCode,
		AlternativePhone:  input.AlternativePhone,
		FullNumber:        input.FullNumber,
		LeadSource:        input.LeadSource,
		LeadSourceURL:     input.LeadSourceURL,
		LeadScore:         input.LeadScore,
		LeadStage:         input.LeadStage,
		LeadStatus:        input.LeadStatus,
		LeadOwner:         input.LeadOwner,
		ColdLeadReason:    input.ColdLeadReason,
		WarmStage:         input.WarmStage,
		OpportunitySource: input.OpportunitySource,
		OpportunityStage:  input.OpportunityStage,
		OpportunityStatus: input.OpportunityStatus,
		TechStack:         input.TechStack,
		CourseList:        input.CourseList,
		ClassMode:         input.ClassMode,
		BatchTiming:       datatypes.NewJSONSlice(input.BatchTiming),
		Programs:          input.Programs,
		PriceList:         input.PriceList,
		FeeQuoted:         input.FeeQuoted,
		CounselledBy:      input.CounselledBy,
		Description:       input.Description,
		UserID:            input.UserID,
	}

	dateInputs := []struct {
		value string
		dst   **time.Time
	}{
		{input.ExpRegistrationDate, &lead.ExpRegistrationDate},
		{input.NextFollowUp, &lead.NextFollowUp},
		{input.DemoAttendedDate, &lead.DemoAttendedDate},
		{input.VisitedDate, &lead.VisitedDate},
		{input.ExpectedWalkInDate, &lead.ExpectedWalkInDate},
	}
	for _, d := range dateInputs {
		t, err := parseDate(d.value)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
		}
		*d.dst = t
	}

	if err := lc.DB.Create(&lead).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create lead", err)
	}
	return utils.DataResponse(c, fiber.StatusCreated, "Lead created successfully", lead)
}

// UpdateLead merges the provided fields onto the lead identified by the id
// query parameter.
func (lc *LeadController) UpdateLead(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "id query parameter is required", nil)
	}

	var raw map[string]interface{}
	if err := c.BodyParser(&raw); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	updates, err := buildUpdates(raw, leadColumns, leadDateFields)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	if v, ok := raw["batchTiming"]; ok {
		updates["batch_timing"] = datatypes.NewJSONSlice(toStringSlice(v))
	}

	result := lc.DB.Model(&models.Lead{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update lead", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Lead not found", nil)
	}

	var lead models.Lead
	if err := lc.DB.First(&lead, "id = ?", id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch updated lead", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Lead updated successfully", lead)
}

// DeleteLeads removes one lead by id or several by the ids CSV parameter.
func (lc *LeadController) DeleteLeads(c *fiber.Ctx) error {
	ids, err := deleteIDs(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	result := lc.DB.Delete(&models.Lead{}, ids)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete leads", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "No leads found for the given ids", nil)
	}
	return utils.MessageResponse(c, fiber.StatusOK, "Leads deleted successfully")
}

// GetLeadStatistics reports today's lead volume: total created today, counts
// per lead status, and an hourly histogram.
func (lc *LeadController) GetLeadStatistics(c *fiber.Ctx) error {
	start := startOfDay(time.Now())
	end := start.AddDate(0, 0, 1)

	var todays []models.Lead
	if err := lc.DB.Where("created_at >= ? AND created_at < ?", start, end).Find(&todays).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch lead statistics", err)
	}

	statusCounts := make(map[string]int)
	hourly := make([]int, 24)
	for _, lead := range todays {
		statusCounts[lead.LeadStatus]++
		hourly[lead.CreatedAt.Hour()]++
	}

	return utils.DataResponse(c, fiber.StatusOK, "Lead statistics fetched successfully", fiber.Map{
		"todayCount":   len(todays),
		"statusCounts": statusCounts,
		"hourlyCounts": hourly,
	})
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
