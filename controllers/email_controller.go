package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"skillcapital/models"
	"skillcapital/utils"
)

type EmailController struct {
	DB     *gorm.DB
	Mail   Mailer
	Logger *log.Logger
}

func NewEmailController(db *gorm.DB, mail Mailer, logger *log.Logger) *EmailController {
	return &EmailController{
		DB:     db,
		Mail:   mail,
		Logger: logger,
	}
}

var emailFilters = []utils.QueryFilter{
	{Param: "from", Column: `"from"`, Kind: utils.FilterEquals},
	{Param: "userId", Column: "user_id", Kind: utils.FilterEquals},
	{Param: "emailTemplateId", Column: "email_template_id", Kind: utils.FilterInt},
	{Param: "leadId", Column: "lead_id", Kind: utils.FilterInt},
	{Param: "batchId", Column: "batch_id", Kind: utils.FilterInt},
	{Param: "trainerId", Column: "trainer_id", Kind: utils.FilterInt},
	{Param: "campaignId", Column: "campaign_id", Kind: utils.FilterInt},
	{Param: "learnerId", Column: "learner_id", Kind: utils.FilterInt},
	{Param: "mainTaskId", Column: "main_task_id", Kind: utils.FilterInt},
}

// emailWithRelations is the list-view row: the email plus its lead and
// template, inlined when the foreign keys are set.
type emailWithRelations struct {
	models.Email
	Lead     *models.Lead          `json:"lead"`
	Template *models.EmailTemplate `json:"template"`
}

// GetEmails lists emails by the registered filters, inlining the referenced
// lead and template per row.
func (ec *EmailController) GetEmails(c *fiber.Ctx) error {
	if id := c.Query("id"); id != "" {
		var email models.Email
		if err := ec.DB.First(&email, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.ErrorResponse(c, fiber.StatusNotFound, "Email not found", nil)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch email", err)
		}
		return utils.DataResponse(c, fiber.StatusOK, "Email fetched successfully", email)
	}

	query := utils.ApplyFilters(c, ec.DB.Model(&models.Email{}), emailFilters)
	query, err := utils.ApplyDateRange(c, query, "created_at")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var emails []models.Email
	if err := query.Order("created_at DESC").Find(&emails).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch emails", err)
	}

	rows := make([]emailWithRelations, 0, len(emails))
	for _, email := range emails {
		row := emailWithRelations{Email: email}
		if email.LeadID != nil {
			var lead models.Lead
			if err := ec.DB.First(&lead, *email.LeadID).Error; err == nil {
				row.Lead = &lead
			}
		}
		if email.EmailTemplateID != nil {
			var template models.EmailTemplate
			if err := ec.DB.First(&template, *email.EmailTemplateID).Error; err == nil {
				row.Template = &template
			}
		}
		rows = append(rows, row)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Emails fetched successfully", rows)
}

// SendEmail substitutes template placeholders, delivers over SMTP, then
// persists the email and its "Email" feed activity in one transaction.
func (ec *EmailController) SendEmail(c *fiber.Ctx) error {
	var input struct {
		To              []string `json:"to" validate:"required,min=1"`
		Bcc             []string `json:"bcc"`
		From            string   `json:"from"`
		Subject         string   `json:"subject"`
		Body            string   `json:"body"`
		EmailTemplateID *uint    `json:"emailTemplateId"`
		UserID          string   `json:"userId" validate:"required"`

		LeadID     *uint `json:"leadId"`
		BatchID    *uint `json:"batchId"`
		TrainerID  *uint `json:"trainerId"`
		CampaignID *uint `json:"campaignId"`
		LearnerID  *uint `json:"learnerId"`
		MainTaskID *uint `json:"mainTaskId"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	subject := input.Subject
	body := input.Body
	if input.EmailTemplateID != nil {
		var template models.EmailTemplate
		if err := ec.DB.First(&template, *input.EmailTemplateID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.ErrorResponse(c, fiber.StatusNotFound, "Email template not found", nil)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch email template", err)
		}
		subject = template.Subject
		body = template.HTMLContent
	}

	// Placeholder substitution is a literal token replace; unmatched tokens
	// stay verbatim.
	if input.LeadID != nil {
		var lead models.Lead
		if err := ec.DB.First(&lead, *input.LeadID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.ErrorResponse(c, fiber.StatusNotFound, "Lead not found", nil)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch lead", err)
		}
		subject = utils.ReplacePlaceholders(subject, lead.Name, lead.Email)
		body = utils.ReplacePlaceholders(body, lead.Name, lead.Email)
	}

	from := input.From
	if from == "" {
		from = ec.Mail.From()
	}

	if err := ec.Mail.Send(input.To, input.Bcc, subject, body); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to send email", err)
	}

	refs := models.ContextRefs{
		LeadID:     input.LeadID,
		BatchID:    input.BatchID,
		TrainerID:  input.TrainerID,
		CampaignID: input.CampaignID,
		LearnerID:  input.LearnerID,
		MainTaskID: input.MainTaskID,
	}
	email := models.Email{
		To:              datatypes.NewJSONSlice(input.To),
		Bcc:             datatypes.NewJSONSlice(input.Bcc),
		From:            from,
		Subject:         subject,
		Body:            body,
		EmailTemplateID: input.EmailTemplateID,
		UserID:          input.UserID,
		ContextRefs:     refs,
	}

	err := ec.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&email).Error; err != nil {
			return err
		}
		activity := models.NewActivity("Email", email.UserID, refs,
			models.ActivityPayload{Kind: models.PayloadEmail, RefID: email.ID})
		return tx.Create(&activity).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save email", err)
	}
	return utils.DataResponse(c, fiber.StatusCreated, "Email sent successfully", email)
}

// DeleteEmails removes one email record by id or several by ids.
func (ec *EmailController) DeleteEmails(c *fiber.Ctx) error {
	ids, err := deleteIDs(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	result := ec.DB.Delete(&models.Email{}, ids)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete emails", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "No emails found for the given ids", nil)
	}
	return utils.MessageResponse(c, fiber.StatusOK, "Emails deleted successfully")
}
