package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skillcapital/models"
	"skillcapital/utils"
)

// TemplateController serves both email and message template CRUD.
type TemplateController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewTemplateController(db *gorm.DB, logger *log.Logger) *TemplateController {
	return &TemplateController{
		DB:     db,
		Logger: logger,
	}
}

var emailTemplateFilters = []utils.QueryFilter{
	{Param: "name", Column: "name", Kind: utils.FilterLike},
	{Param: "userId", Column: "user_id", Kind: utils.FilterEquals},
}

var messageTemplateFilters = []utils.QueryFilter{
	{Param: "name", Column: "name", Kind: utils.FilterLike},
	{Param: "type", Column: "type", Kind: utils.FilterEquals},
	{Param: "userId", Column: "user_id", Kind: utils.FilterEquals},
}

var emailTemplateColumns = map[string]string{
	"name":        "name",
	"subject":     "subject",
	"htmlContent": "html_content",
	"userId":      "user_id",
}

var messageTemplateColumns = map[string]string{
	"name":    "name",
	"type":    "type",
	"content": "content",
	"userId":  "user_id",
}

// GetEmailTemplates lists email templates, or one when id is set.
func (tc *TemplateController) GetEmailTemplates(c *fiber.Ctx) error {
	if id := c.Query("id"); id != "" {
		var template models.EmailTemplate
		if err := tc.DB.First(&template, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.ErrorResponse(c, fiber.StatusNotFound, "Email template not found", nil)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch email template", err)
		}
		return utils.DataResponse(c, fiber.StatusOK, "Email template fetched successfully", template)
	}

	query := utils.ApplyFilters(c, tc.DB.Model(&models.EmailTemplate{}), emailTemplateFilters)
	var templates []models.EmailTemplate
	if err := query.Order("created_at DESC").Find(&templates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch email templates", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Email templates fetched successfully", templates)
}

// CreateEmailTemplate inserts one email template. Names are unique.
func (tc *TemplateController) CreateEmailTemplate(c *fiber.Ctx) error {
	var input struct {
		Name        string `json:"name" validate:"required"`
		Subject     string `json:"subject"`
		HTMLContent string `json:"htmlContent" validate:"required"`
		UserID      string `json:"userId"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	template := models.EmailTemplate{
		Name:        input.Name,
		Subject:     input.Subject,
		HTMLContent: input.HTMLContent,
		UserID:      input.UserID,
	}
	if err := tc.DB.Create(&template).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create email template", err)
	}
	return utils.DataResponse(c, fiber.StatusCreated, "Email template created successfully", template)
}

// UpdateEmailTemplate merges the provided fields onto the template.
func (tc *TemplateController) UpdateEmailTemplate(c *fiber.Ctx) error {
	return tc.updateTemplate(c, &models.EmailTemplate{}, emailTemplateColumns, "Email template")
}

// DeleteEmailTemplates removes email templates by id/ids.
func (tc *TemplateController) DeleteEmailTemplates(c *fiber.Ctx) error {
	return tc.deleteTemplates(c, &models.EmailTemplate{}, "Email templates")
}

// GetMessageTemplates lists message templates, or one when id is set.
func (tc *TemplateController) GetMessageTemplates(c *fiber.Ctx) error {
	if id := c.Query("id"); id != "" {
		var template models.MessageTemplate
		if err := tc.DB.First(&template, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.ErrorResponse(c, fiber.StatusNotFound, "Message template not found", nil)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch message template", err)
		}
		return utils.DataResponse(c, fiber.StatusOK, "Message template fetched successfully", template)
	}

	query := utils.ApplyFilters(c, tc.DB.Model(&models.MessageTemplate{}), messageTemplateFilters)
	var templates []models.MessageTemplate
	if err := query.Order("created_at DESC").Find(&templates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch message templates", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Message templates fetched successfully", templates)
}

// CreateMessageTemplate inserts one message template.
func (tc *TemplateController) CreateMessageTemplate(c *fiber.Ctx) error {
	var input struct {
		Name    string `json:"name" validate:"required"`
		Type    string `json:"type" validate:"required,oneof=text whatsapp"`
		Content string `json:"content" validate:"required"`
		UserID  string `json:"userId" validate:"required"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	template := models.MessageTemplate{
		Name:    input.Name,
		Type:    input.Type,
		Content: input.Content,
		UserID:  input.UserID,
	}
	if err := tc.DB.Create(&template).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create message template", err)
	}
	return utils.DataResponse(c, fiber.StatusCreated, "Message template created successfully", template)
}

// UpdateMessageTemplate merges the provided fields onto the template.
func (tc *TemplateController) UpdateMessageTemplate(c *fiber.Ctx) error {
	return tc.updateTemplate(c, &models.MessageTemplate{}, messageTemplateColumns, "Message template")
}

// DeleteMessageTemplates removes message templates by id/ids.
func (tc *TemplateController) DeleteMessageTemplates(c *fiber.Ctx) error {
	return tc.deleteTemplates(c, &models.MessageTemplate{}, "Message templates")
}

func (tc *TemplateController) updateTemplate(c *fiber.Ctx, model interface{}, columns map[string]string, label string) error {
	id := c.Query("id")
	if id == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "id query parameter is required", nil)
	}

	var raw map[string]interface{}
	if err := c.BodyParser(&raw); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	updates, err := buildUpdates(raw, columns, nil)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	result := tc.DB.Model(model).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update "+label, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, label+" not found", nil)
	}

	if err := tc.DB.First(model, "id = ?", id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch updated "+label, err)
	}
	return utils.DataResponse(c, fiber.StatusOK, label+" updated successfully", model)
}

func (tc *TemplateController) deleteTemplates(c *fiber.Ctx, model interface{}, label string) error {
	ids, err := deleteIDs(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	result := tc.DB.Delete(model, ids)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete "+label, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "No "+label+" found for the given ids", nil)
	}
	return utils.MessageResponse(c, fiber.StatusOK, label+" deleted successfully")
}
