package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skillcapital/models"
	"skillcapital/utils"
)

type NoteController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewNoteController(db *gorm.DB, logger *log.Logger) *NoteController {
	return &NoteController{
		DB:     db,
		Logger: logger,
	}
}

var noteFilters = []utils.QueryFilter{
	{Param: "userId", Column: "user_id", Kind: utils.FilterEquals},
	{Param: "leadId", Column: "lead_id", Kind: utils.FilterInt},
	{Param: "batchId", Column: "batch_id", Kind: utils.FilterInt},
	{Param: "trainerId", Column: "trainer_id", Kind: utils.FilterInt},
	{Param: "campaignId", Column: "campaign_id", Kind: utils.FilterInt},
	{Param: "learnerId", Column: "learner_id", Kind: utils.FilterInt},
	{Param: "mainTaskId", Column: "main_task_id", Kind: utils.FilterInt},
}

var noteColumns = map[string]string{
	"content":    "content",
	"userId":     "user_id",
	"leadId":     "lead_id",
	"batchId":    "batch_id",
	"trainerId":  "trainer_id",
	"campaignId": "campaign_id",
	"learnerId":  "learner_id",
	"mainTaskId": "main_task_id",
}

// GetNotes lists notes by the registered filters, or one when id is set.
func (nc *NoteController) GetNotes(c *fiber.Ctx) error {
	if id := c.Query("id"); id != "" {
		var note models.Note
		if err := nc.DB.First(&note, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.ErrorResponse(c, fiber.StatusNotFound, "Note not found", nil)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch note", err)
		}
		return utils.DataResponse(c, fiber.StatusOK, "Note fetched successfully", note)
	}

	query := utils.ApplyFilters(c, nc.DB.Model(&models.Note{}), noteFilters)
	query, err := utils.ApplyDateRange(c, query, "created_at")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var notes []models.Note
	if err := query.Order("created_at DESC").Find(&notes).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch notes", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Notes fetched successfully", notes)
}

// CreateNote inserts one note.
func (nc *NoteController) CreateNote(c *fiber.Ctx) error {
	var input struct {
		Content string `json:"content" validate:"required"`
		UserID  string `json:"userId" validate:"required"`

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

	note := models.Note{
		Content: input.Content,
		UserID:  input.UserID,
		ContextRefs: models.ContextRefs{
			LeadID:     input.LeadID,
			BatchID:    input.BatchID,
			TrainerID:  input.TrainerID,
			CampaignID: input.CampaignID,
			LearnerID:  input.LearnerID,
			MainTaskID: input.MainTaskID,
		},
	}

	if err := nc.DB.Create(&note).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create note", err)
	}
	return utils.DataResponse(c, fiber.StatusCreated, "Note created successfully", note)
}

// UpdateNote merges the provided fields onto the note identified by id.
func (nc *NoteController) UpdateNote(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "id query parameter is required", nil)
	}

	var raw map[string]interface{}
	if err := c.BodyParser(&raw); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	updates, err := buildUpdates(raw, noteColumns, nil)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	result := nc.DB.Model(&models.Note{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update note", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Note not found", nil)
	}

	var note models.Note
	if err := nc.DB.First(&note, "id = ?", id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch updated note", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Note updated successfully", note)
}

// DeleteNotes removes one note by id or several by ids.
func (nc *NoteController) DeleteNotes(c *fiber.Ctx) error {
	ids, err := deleteIDs(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	result := nc.DB.Delete(&models.Note{}, ids)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete notes", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "No notes found for the given ids", nil)
	}
	return utils.MessageResponse(c, fiber.StatusOK, "Notes deleted successfully")
}
