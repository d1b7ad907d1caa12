package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skillcapital/models"
	"skillcapital/utils"
)

type TaskController struct {
	DB        *gorm.DB
	Directory ProfileDirectory
	Logger    *log.Logger
}

func NewTaskController(db *gorm.DB, directory ProfileDirectory, logger *log.Logger) *TaskController {
	return &TaskController{
		DB:        db,
		Directory: directory,
		Logger:    logger,
	}
}

var taskFilters = []utils.QueryFilter{
	{Param: "priority", Column: "priority", Kind: utils.FilterEquals},
	{Param: "userId", Column: "user_id", Kind: utils.FilterEquals},
	{Param: "leadId", Column: "lead_id", Kind: utils.FilterInt},
	{Param: "batchId", Column: "batch_id", Kind: utils.FilterInt},
	{Param: "trainerId", Column: "trainer_id", Kind: utils.FilterInt},
	{Param: "campaignId", Column: "campaign_id", Kind: utils.FilterInt},
	{Param: "learnerId", Column: "learner_id", Kind: utils.FilterInt},
	{Param: "mainTaskId", Column: "main_task_id", Kind: utils.FilterInt},
}

var taskColumns = map[string]string{
	"subject":    "subject",
	"dueDate":    "due_date",
	"priority":   "priority",
	"userId":     "user_id",
	"leadId":     "lead_id",
	"batchId":    "batch_id",
	"trainerId":  "trainer_id",
	"campaignId": "campaign_id",
	"learnerId":  "learner_id",
	"mainTaskId": "main_task_id",
}

var taskDateFields = map[string]bool{
	"dueDate": true,
}

// taskWithUser is the list-view row: the task plus its owning user's public
// profile, when the directory lookup succeeded.
type taskWithUser struct {
	models.Task
	User *utils.UserProfile `json:"user"`
}

// GetTasks lists tasks by the registered filters, enriching each row with the
// owning user's profile. Directory failures degrade to a null profile.
func (tc *TaskController) GetTasks(c *fiber.Ctx) error {
	if id := c.Query("id"); id != "" {
		var task models.Task
		if err := tc.DB.First(&task, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.ErrorResponse(c, fiber.StatusNotFound, "Task not found", nil)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch task", err)
		}
		return utils.DataResponse(c, fiber.StatusOK, "Task fetched successfully", task)
	}

	query := utils.ApplyFilters(c, tc.DB.Model(&models.Task{}), taskFilters)
	query, err := utils.ApplyDateRange(c, query, "created_at")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var tasks []models.Task
	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch tasks", err)
	}

	profiles := make(map[string]*utils.UserProfile)
	rows := make([]taskWithUser, 0, len(tasks))
	for _, task := range tasks {
		profile, seen := profiles[task.UserID]
		if !seen && task.UserID != "" {
			p, err := tc.Directory.GetUser(c.Context(), task.UserID)
			if err != nil {
				tc.Logger.Printf("user lookup failed for %s: %v", task.UserID, err)
			} else {
				profile = p
			}
			profiles[task.UserID] = profile
		}
		rows = append(rows, taskWithUser{Task: task, User: profile})
	}
	return utils.DataResponse(c, fiber.StatusOK, "Tasks fetched successfully", rows)
}

// CreateTask inserts a task and its "Task" feed activity in one transaction.
func (tc *TaskController) CreateTask(c *fiber.Ctx) error {
	var input struct {
		Subject  string `json:"subject" validate:"required"`
		DueDate  string `json:"dueDate" validate:"required"`
		Priority string `json:"priority" validate:"required"`
		UserID   string `json:"userId" validate:"required"`

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

	dueDate, err := requireDate(input.DueDate, "dueDate")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	refs := models.ContextRefs{
		LeadID:     input.LeadID,
		BatchID:    input.BatchID,
		TrainerID:  input.TrainerID,
		CampaignID: input.CampaignID,
		LearnerID:  input.LearnerID,
		MainTaskID: input.MainTaskID,
	}
	task := models.Task{
		Subject:     input.Subject,
		DueDate:     dueDate,
		Priority:    input.Priority,
		UserID:      input.UserID,
		ContextRefs: refs,
	}

	err = tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		activity := models.NewActivity("Task", task.UserID, refs,
			models.ActivityPayload{Kind: models.PayloadTask, RefID: task.ID})
		return tx.Create(&activity).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create task", err)
	}
	return utils.DataResponse(c, fiber.StatusCreated, "Task created successfully", task)
}

// UpdateTask merges the provided fields onto the task identified by id.
func (tc *TaskController) UpdateTask(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "id query parameter is required", nil)
	}

	var raw map[string]interface{}
	if err := c.BodyParser(&raw); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	updates, err := buildUpdates(raw, taskColumns, taskDateFields)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	result := tc.DB.Model(&models.Task{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update task", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Task not found", nil)
	}

	var task models.Task
	if err := tc.DB.First(&task, "id = ?", id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch updated task", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Task updated successfully", task)
}

// DeleteTasks removes one task by id or several by ids.
func (tc *TaskController) DeleteTasks(c *fiber.Ctx) error {
	ids, err := deleteIDs(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	result := tc.DB.Delete(&models.Task{}, ids)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete tasks", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "No tasks found for the given ids", nil)
	}
	return utils.MessageResponse(c, fiber.StatusOK, "Tasks deleted successfully")
}
