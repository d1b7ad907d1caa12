package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skillcapital/models"
	"skillcapital/utils"
)

type CampaignController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewCampaignController(db *gorm.DB, logger *log.Logger) *CampaignController {
	return &CampaignController{
		DB:     db,
		Logger: logger,
	}
}

var campaignFilters = []utils.QueryFilter{
	{Param: "name", Column: "name", Kind: utils.FilterLike},
	{Param: "status", Column: "status", Kind: utils.FilterEquals},
	{Param: "type", Column: "type", Kind: utils.FilterEquals},
	{Param: "campaignOwner", Column: "campaign_owner", Kind: utils.FilterEquals},
	{Param: "active", Column: "active", Kind: utils.FilterEquals},
	{Param: "courseId", Column: "course_id", Kind: utils.FilterEquals},
	{Param: "userId", Column: "user_id", Kind: utils.FilterEquals},
}

var campaignColumns = map[string]string{
	"name":          "name",
	"status":        "status",
	"type":          "type",
	"campaignDate":  "campaign_date",
	"endDate":       "end_date",
	"campaignOwner": "campaign_owner",
	"phone":         "phone",
	"courseId":      "course_id",
	"active":        "active",
	"amountSpent":   "amount_spent",
	"description":   "description",
	"userId":        "user_id",
}

var campaignDateFields = map[string]bool{
	"campaignDate": true,
	"endDate":      true,
}

// GetCampaigns lists campaigns newest first, or one campaign when id is set.
func (cc *CampaignController) GetCampaigns(c *fiber.Ctx) error {
	if id := c.Query("id"); id != "" {
		var campaign models.Campaign
		if err := cc.DB.First(&campaign, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", nil)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch campaign", err)
		}
		return utils.DataResponse(c, fiber.StatusOK, "Campaign fetched successfully", campaign)
	}

	query := utils.ApplyFilters(c, cc.DB.Model(&models.Campaign{}), campaignFilters)
	query, err := utils.ApplyDateRange(c, query, "created_at")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var campaigns []models.Campaign
	if err := query.Order("created_at DESC").Find(&campaigns).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch campaigns", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Campaigns fetched successfully", campaigns)
}

type campaignInput struct {
	Name          string `json:"name" validate:"required"`
	Status        string `json:"status" validate:"required"`
	Type          string `json:"type" validate:"required"`
	CampaignDate  string `json:"campaignDate"`
	EndDate       string `json:"endDate"`
	CampaignOwner string `json:"campaignOwner"`
	Phone         string `json:"phone"`
	CourseID      string `json:"courseId"`
	Active        string `json:"active"`
	AmountSpent   int    `json:"amountSpent"`
	Description   string `json:"description"`
	UserID        string `json:"userId"`
}

func (in campaignInput) model() (models.Campaign, error) {
	campaign := models.Campaign{
		Name:          in.Name,
		Status:        in.Status,
		Type:          in.Type,
		CampaignOwner: in.CampaignOwner,
		Phone:         in.Phone,
		CourseID:      in.CourseID,
		Active:        in.Active,
		AmountSpent:   in.AmountSpent,
		Description:   in.Description,
		UserID:        in.UserID,
	}
	var err error
	if campaign.CampaignDate, err = parseDate(in.CampaignDate); err != nil {
		return campaign, err
	}
	if campaign.EndDate, err = parseDate(in.EndDate); err != nil {
		return campaign, err
	}
	return campaign, nil
}

// CreateCampaign inserts one campaign. Status defaults to "upcoming" at the
// schema level when omitted.
func (cc *CampaignController) CreateCampaign(c *fiber.Ctx) error {
	var input campaignInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if input.Name == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "name is required", nil)
	}

	campaign, err := input.model()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	if err := cc.DB.Create(&campaign).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create campaign", err)
	}
	return utils.DataResponse(c, fiber.StatusCreated, "Campaign created successfully", campaign)
}

// ReplaceCampaign is the full update. name, status and type must all be
// present; every field of the row is overwritten from the body.
func (cc *CampaignController) ReplaceCampaign(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "id query parameter is required", nil)
	}

	var input campaignInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	campaign, err := input.model()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	result := cc.DB.Model(&models.Campaign{}).Where("id = ?", id).Select("*").
		Omit("id", "created_at").Updates(campaign)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update campaign", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", nil)
	}

	var updated models.Campaign
	if err := cc.DB.First(&updated, "id = ?", id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch updated campaign", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Campaign updated successfully", updated)
}

// PatchCampaign merges only the provided fields onto the row.
func (cc *CampaignController) PatchCampaign(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "id query parameter is required", nil)
	}

	var raw map[string]interface{}
	if err := c.BodyParser(&raw); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	updates, err := buildUpdates(raw, campaignColumns, campaignDateFields)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	result := cc.DB.Model(&models.Campaign{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update campaign", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", nil)
	}

	var updated models.Campaign
	if err := cc.DB.First(&updated, "id = ?", id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch updated campaign", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Campaign updated successfully", updated)
}

// DeleteCampaigns removes one campaign by id or several by ids.
func (cc *CampaignController) DeleteCampaigns(c *fiber.Ctx) error {
	ids, err := deleteIDs(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	result := cc.DB.Delete(&models.Campaign{}, ids)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete campaigns", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "No campaigns found for the given ids", nil)
	}
	return utils.MessageResponse(c, fiber.StatusOK, "Campaigns deleted successfully")
}
