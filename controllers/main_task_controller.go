package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skillcapital/models"
	"skillcapital/utils"
)

type MainTaskController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewMainTaskController(db *gorm.DB, logger *log.Logger) *MainTaskController {
	return &MainTaskController{
		DB:     db,
		Logger: logger,
	}
}

var mainTaskFilters = []utils.QueryFilter{
	{Param: "taskOwner", Column: "task_owner", Kind: utils.FilterEquals},
	{Param: "assignTo", Column: "assign_to", Kind: utils.FilterEquals},
	{Param: "status", Column: "status", Kind: utils.FilterEquals},
	{Param: "priority", Column: "priority", Kind: utils.FilterEquals},
	{Param: "taskType", Column: "task_type", Kind: utils.FilterEquals},
	{Param: "source", Column: "source", Kind: utils.FilterEquals},
	{Param: "learnerId", Column: "learner_id", Kind: utils.FilterInt},
}

var mainTaskColumns = map[string]string{
	"taskOwner":   "task_owner",
	"assignTo":    "assign_to",
	"dueDate":     "due_date",
	"subject":     "subject",
	"source":      "source",
	"note":        "note",
	"learnerId":   "learner_id",
	"batch":       "batch",
	"priority":    "priority",
	"status":      "status",
	"reminder":    "reminder",
	"taskType":    "task_type",
	"description": "description",
}

var mainTaskDateFields = map[string]bool{
	"dueDate": true,
}

// GetMainTasks lists main tasks by the registered filters, or one when id is
// set.
func (mc *MainTaskController) GetMainTasks(c *fiber.Ctx) error {
	if id := c.Query("id"); id != "" {
		var task models.MainTask
		if err := mc.DB.First(&task, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.ErrorResponse(c, fiber.StatusNotFound, "Main task not found", nil)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch main task", err)
		}
		return utils.DataResponse(c, fiber.StatusOK, "Main task fetched successfully", task)
	}

	query := utils.ApplyFilters(c, mc.DB.Model(&models.MainTask{}), mainTaskFilters)
	query, err := utils.ApplyDateRange(c, query, "created_at")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var tasks []models.MainTask
	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch main tasks", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Main tasks fetched successfully", tasks)
}

// CreateMainTask inserts one main task.
func (mc *MainTaskController) CreateMainTask(c *fiber.Ctx) error {
	var input struct {
		TaskOwner   string `json:"taskOwner"`
		AssignTo    string `json:"assignTo"`
		DueDate     string `json:"dueDate"`
		Subject     string `json:"subject" validate:"required"`
		Source      string `json:"source"`
		Note        string `json:"note"`
		LearnerID   *uint  `json:"learnerId"`
		Batch       string `json:"batch"`
		Priority    string `json:"priority"`
		Status      string `json:"status"`
		Reminder    string `json:"reminder"`
		TaskType    string `json:"taskType"`
		Description string `json:"description"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	task := models.MainTask{
		TaskOwner:   input.TaskOwner,
		AssignTo:    input.AssignTo,
		Subject:     input.Subject,
		Source:      input.Source,
		Note:        input.Note,
		LearnerID:   input.LearnerID,
		Batch:       input.Batch,
		Priority:    input.Priority,
		Status:      input.Status,
		Reminder:    input.Reminder,
		TaskType:    input.TaskType,
		Description: input.Description,
	}

	var err error
	if task.DueDate, err = parseDate(input.DueDate); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	if err := mc.DB.Create(&task).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create main task", err)
	}
	return utils.DataResponse(c, fiber.StatusCreated, "Main task created successfully", task)
}

// UpdateMainTask merges the provided fields onto the main task identified by
// id.
func (mc *MainTaskController) UpdateMainTask(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "id query parameter is required", nil)
	}

	var raw map[string]interface{}
	if err := c.BodyParser(&raw); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	updates, err := buildUpdates(raw, mainTaskColumns, mainTaskDateFields)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	result := mc.DB.Model(&models.MainTask{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update main task", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Main task not found", nil)
	}

	var task models.MainTask
	if err := mc.DB.First(&task, "id = ?", id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch updated main task", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Main task updated successfully", task)
}

// DeleteMainTasks removes one main task by id or several by ids.
func (mc *MainTaskController) DeleteMainTasks(c *fiber.Ctx) error {
	ids, err := deleteIDs(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	result := mc.DB.Delete(&models.MainTask{}, ids)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete main tasks", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "No main tasks found for the given ids", nil)
	}
	return utils.MessageResponse(c, fiber.StatusOK, "Main tasks deleted successfully")
}
