package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skillcapital/models"
	"skillcapital/utils"
)

type MessageController struct {
	DB     *gorm.DB
	Sender MessageSender
	Logger *log.Logger
}

func NewMessageController(db *gorm.DB, sender MessageSender, logger *log.Logger) *MessageController {
	return &MessageController{
		DB:     db,
		Sender: sender,
		Logger: logger,
	}
}

var messageFilters = []utils.QueryFilter{
	{Param: "phoneNumber", Column: "phone_number", Kind: utils.FilterEquals},
	{Param: "type", Column: "type", Kind: utils.FilterEquals},
	{Param: "userId", Column: "user_id", Kind: utils.FilterEquals},
	{Param: "messageTemplateId", Column: "message_template_id", Kind: utils.FilterInt},
	{Param: "leadId", Column: "lead_id", Kind: utils.FilterInt},
	{Param: "batchId", Column: "batch_id", Kind: utils.FilterInt},
	{Param: "trainerId", Column: "trainer_id", Kind: utils.FilterInt},
	{Param: "campaignId", Column: "campaign_id", Kind: utils.FilterInt},
	{Param: "learnerId", Column: "learner_id", Kind: utils.FilterInt},
	{Param: "mainTaskId", Column: "main_task_id", Kind: utils.FilterInt},
}

// GetMessages lists messages by the registered filters, or one when id is
// set.
func (mc *MessageController) GetMessages(c *fiber.Ctx) error {
	if id := c.Query("id"); id != "" {
		var message models.Message
		if err := mc.DB.First(&message, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.ErrorResponse(c, fiber.StatusNotFound, "Message not found", nil)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch message", err)
		}
		return utils.DataResponse(c, fiber.StatusOK, "Message fetched successfully", message)
	}

	query := utils.ApplyFilters(c, mc.DB.Model(&models.Message{}), messageFilters)
	query, err := utils.ApplyDateRange(c, query, "created_at")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var messages []models.Message
	if err := query.Order("created_at DESC").Find(&messages).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch messages", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Messages fetched successfully", messages)
}

// SendMessage dispatches an SMS or WhatsApp message through the provider
// identity matching the requested type, then persists the message and its
// feed activity in one transaction. The activity payload column follows the
// channel: messageId for text, whatsappId for whatsapp.
func (mc *MessageController) SendMessage(c *fiber.Ctx) error {
	var input struct {
		PhoneNumber       string `json:"phoneNumber" validate:"required"`
		Type              string `json:"type" validate:"required,oneof=text whatsapp"`
		MessageContent    string `json:"messageContent"`
		MessageTemplateID *uint  `json:"messageTemplateId"`
		UserID            string `json:"userId" validate:"required"`

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

	content := input.MessageContent
	if input.MessageTemplateID != nil {
		var template models.MessageTemplate
		if err := mc.DB.First(&template, *input.MessageTemplateID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.ErrorResponse(c, fiber.StatusNotFound, "Message template not found", nil)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch message template", err)
		}
		content = template.Content
	}
	if content == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "messageContent or messageTemplateId is required", nil)
	}

	sid, err := mc.Sender.Send(input.PhoneNumber, content, input.Type)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to send message", err)
	}

	refs := models.ContextRefs{
		LeadID:     input.LeadID,
		BatchID:    input.BatchID,
		TrainerID:  input.TrainerID,
		CampaignID: input.CampaignID,
		LearnerID:  input.LearnerID,
		MainTaskID: input.MainTaskID,
	}
	message := models.Message{
		PhoneNumber:       input.PhoneNumber,
		ProviderSID:       sid,
		MessageContent:    content,
		MessageTemplateID: input.MessageTemplateID,
		Type:              input.Type,
		UserID:            input.UserID,
		ContextRefs:       refs,
	}

	activityName := "Message"
	payloadKind := models.PayloadMessage
	if input.Type == models.MessageTypeWhatsapp {
		activityName = "Whatsapp"
		payloadKind = models.PayloadWhatsapp
	}

	err = mc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		activity := models.NewActivity(activityName, message.UserID, refs,
			models.ActivityPayload{Kind: payloadKind, RefID: message.ID})
		return tx.Create(&activity).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save message", err)
	}
	return utils.DataResponse(c, fiber.StatusCreated, "Message sent successfully", message)
}

// DeleteMessages removes one message record by id or several by ids.
func (mc *MessageController) DeleteMessages(c *fiber.Ctx) error {
	ids, err := deleteIDs(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	result := mc.DB.Delete(&models.Message{}, ids)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete messages", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "No messages found for the given ids", nil)
	}
	return utils.MessageResponse(c, fiber.StatusOK, "Messages deleted successfully")
}
