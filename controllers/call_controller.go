package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skillcapital/models"
	"skillcapital/utils"
)

type CallController struct {
	DB        *gorm.DB
	Telephony Telephony
	Logger    *log.Logger
}

func NewCallController(db *gorm.DB, telephony Telephony, logger *log.Logger) *CallController {
	return &CallController{
		DB:        db,
		Telephony: telephony,
		Logger:    logger,
	}
}

var callFilters = []utils.QueryFilter{
	{Param: "callerId", Column: "caller_id", Kind: utils.FilterEquals},
	{Param: "to", Column: `"to"`, Kind: utils.FilterEquals},
	{Param: "status", Column: "status", Kind: utils.FilterEquals},
	{Param: "agentId", Column: "agent_id", Kind: utils.FilterEquals},
	{Param: "direction", Column: "direction", Kind: utils.FilterEquals},
	{Param: "isRecorded", Column: "is_recorded", Kind: utils.FilterEquals},
}

var callColumns = map[string]string{
	"callerId":        "caller_id",
	"to":              "to",
	"status":          "status",
	"agentId":         "agent_id",
	"userNo":          "user_no",
	"time":            "time",
	"direction":       "direction",
	"answeredSeconds": "answered_seconds",
	"isRecorded":      "is_recorded",
	"filename":        "filename",
}

// GetCalls lists call records by the registered filters, or one when id is
// set.
func (cc *CallController) GetCalls(c *fiber.Ctx) error {
	if id := c.Query("id"); id != "" {
		var call models.Call
		if err := cc.DB.First(&call, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.ErrorResponse(c, fiber.StatusNotFound, "Call not found", nil)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch call", err)
		}
		return utils.DataResponse(c, fiber.StatusOK, "Call fetched successfully", call)
	}

	query := utils.ApplyFilters(c, cc.DB.Model(&models.Call{}), callFilters)
	query, err := utils.ApplyDateRange(c, query, "created_at")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var calls []models.Call
	if err := query.Order("created_at DESC").Find(&calls).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch calls", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Calls fetched successfully", calls)
}

// ConnectCall asks the telephony provider to bridge the agent to the
// destination number.
func (cc *CallController) ConnectCall(c *fiber.Ctx) error {
	var input struct {
		AgentID string `json:"agentId" validate:"required"`
		To      string `json:"to" validate:"required"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	if err := cc.Telephony.Connect(c.Context(), input.AgentID, input.To); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to connect call", err)
	}
	return utils.MessageResponse(c, fiber.StatusOK, "Call connected successfully")
}

// RecordCall persists a call pushed in by the provider webhook, normalizing
// the provider's field names onto the call schema.
func (cc *CallController) RecordCall(c *fiber.Ctx) error {
	var input struct {
		CallerID    string `json:"callerid"`
		To          string `json:"to"`
		Status      string `json:"status"`
		AgentID     string `json:"agent_id"`
		UserNo      string `json:"user_no"`
		Time        int    `json:"time"`
		Direction   string `json:"direction"`
		AnsweredSec int    `json:"answeredsec"`
		Record      bool   `json:"record"`
		Filename    string `json:"filename"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if input.CallerID == "" || input.To == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "callerid and to are required", nil)
	}

	call := models.Call{
		CallerID:        input.CallerID,
		To:              input.To,
		Status:          input.Status,
		AgentID:         input.AgentID,
		UserNo:          input.UserNo,
		Time:            input.Time,
		Direction:       input.Direction,
		AnsweredSeconds: input.AnsweredSec,
		IsRecorded:      input.Record,
		Filename:        input.Filename,
	}

	if err := cc.DB.Create(&call).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to record call", err)
	}
	return utils.DataResponse(c, fiber.StatusCreated, "Call recorded successfully", call)
}

// CreateCall inserts one call record from the admin UI.
func (cc *CallController) CreateCall(c *fiber.Ctx) error {
	var input struct {
		CallerID        string `json:"callerId" validate:"required"`
		To              string `json:"to" validate:"required"`
		Status          string `json:"status"`
		AgentID         string `json:"agentId"`
		UserNo          string `json:"userNo"`
		Time            int    `json:"time"`
		Direction       string `json:"direction"`
		AnsweredSeconds int    `json:"answeredSeconds"`
		IsRecorded      bool   `json:"isRecorded"`
		Filename        string `json:"filename"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	call := models.Call{
		CallerID:        input.CallerID,
		To:              input.To,
		Status:          input.Status,
		AgentID:         input.AgentID,
		UserNo:          input.UserNo,
		Time:            input.Time,
		Direction:       input.Direction,
		AnsweredSeconds: input.AnsweredSeconds,
		IsRecorded:      input.IsRecorded,
		Filename:        input.Filename,
	}

	if err := cc.DB.Create(&call).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create call", err)
	}
	return utils.DataResponse(c, fiber.StatusCreated, "Call created successfully", call)
}

// UpdateCall merges the provided fields onto the call identified by id.
func (cc *CallController) UpdateCall(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "id query parameter is required", nil)
	}

	var raw map[string]interface{}
	if err := c.BodyParser(&raw); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	updates, err := buildUpdates(raw, callColumns, nil)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	result := cc.DB.Model(&models.Call{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update call", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Call not found", nil)
	}

	var call models.Call
	if err := cc.DB.First(&call, "id = ?", id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch updated call", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Call updated successfully", call)
}

// DownloadRecording streams a call recording as an audio attachment.
func (cc *CallController) DownloadRecording(c *fiber.Ctx) error {
	filename := c.Query("fileName")
	if filename == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "fileName query parameter is required", nil)
	}

	content, contentType, err := cc.Telephony.DownloadRecording(c.Context(), filename)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to download recording", err)
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(content)
}
