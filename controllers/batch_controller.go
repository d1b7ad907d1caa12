package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skillcapital/models"
	"skillcapital/utils"
)

type BatchController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewBatchController(db *gorm.DB, logger *log.Logger) *BatchController {
	return &BatchController{
		DB:     db,
		Logger: logger,
	}
}

var batchFilters = []utils.QueryFilter{
	{Param: "batchName", Column: "batches.batch_name", Kind: utils.FilterLike},
	{Param: "location", Column: "batches.location", Kind: utils.FilterEquals},
	{Param: "slot", Column: "batches.slot", Kind: utils.FilterEquals},
	{Param: "trainerId", Column: "batches.trainer_id", Kind: utils.FilterInt},
	{Param: "batchStatus", Column: "batches.batch_status", Kind: utils.FilterEquals},
	{Param: "stack", Column: "batches.stack", Kind: utils.FilterEquals},
	{Param: "classMode", Column: "batches.class_mode", Kind: utils.FilterEquals},
	{Param: "stage", Column: "batches.stage", Kind: utils.FilterEquals},
	{Param: "owner", Column: "batches.owner", Kind: utils.FilterEquals},
	{Param: "userId", Column: "batches.user_id", Kind: utils.FilterEquals},
}

var batchColumns = map[string]string{
	"batchName":        "batch_name",
	"location":         "location",
	"slot":             "slot",
	"trainerId":        "trainer_id",
	"batchStatus":      "batch_status",
	"topicStatus":      "topic_status",
	"noOfStudents":     "no_of_students",
	"stack":            "stack",
	"startDate":        "start_date",
	"tentativeEndDate": "tentative_end_date",
	"classMode":        "class_mode",
	"stage":            "stage",
	"comment":          "comment",
	"timing":           "timing",
	"batchStage":       "batch_stage",
	"mentor":           "mentor",
	"zoomAccount":      "zoom_account",
	"stackOwner":       "stack_owner",
	"owner":            "owner",
	"batchOwner":       "batch_owner",
	"description":      "description",
	"userId":           "user_id",
}

var batchDateFields = map[string]bool{
	"startDate":        true,
	"tentativeEndDate": true,
}

// batchWithTrainer is the list-view row: the batch plus its trainer's name.
type batchWithTrainer struct {
	models.Batch
	TrainerName string `json:"trainerName"`
}

// GetBatches lists batches joined with their trainer name, or one batch when
// id is set.
func (bc *BatchController) GetBatches(c *fiber.Ctx) error {
	base := bc.DB.Table("batches").
		Select("batches.*, trainers.trainer_name AS trainer_name").
		Joins("LEFT JOIN trainers ON trainers.id = batches.trainer_id")

	if id := c.Query("id"); id != "" {
		var row batchWithTrainer
		if err := base.Where("batches.id = ?", id).Take(&row).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.ErrorResponse(c, fiber.StatusNotFound, "Batch not found", nil)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch batch", err)
		}
		return utils.DataResponse(c, fiber.StatusOK, "Batch fetched successfully", row)
	}

	query := utils.ApplyFilters(c, base, batchFilters)
	query, err := utils.ApplyDateRange(c, query, "batches.created_at")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var rows []batchWithTrainer
	if err := query.Order("batches.created_at DESC").Find(&rows).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch batches", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Batches fetched successfully", rows)
}

// GetBatchesWithLeads lists every batch together with the leads sharing its
// tech stack, for the batch-assignment view.
func (bc *BatchController) GetBatchesWithLeads(c *fiber.Ctx) error {
	var batches []models.Batch
	if err := bc.DB.Order("created_at DESC").Find(&batches).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch batches", err)
	}

	type batchLeads struct {
		models.Batch
		Leads []models.Lead `json:"leads"`
	}

	rows := make([]batchLeads, 0, len(batches))
	for _, batch := range batches {
		var leads []models.Lead
		if batch.Stack != "" {
			if err := bc.DB.Where("tech_stack = ?", batch.Stack).Order("created_at DESC").Find(&leads).Error; err != nil {
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch batch leads", err)
			}
		}
		rows = append(rows, batchLeads{Batch: batch, Leads: leads})
	}
	return utils.DataResponse(c, fiber.StatusOK, "Batches with leads fetched successfully", rows)
}

// GetBatchLearners lists the learners enrolled in the batch given by id,
// resolved through the learner_batches join table.
func (bc *BatchController) GetBatchLearners(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "id query parameter is required", nil)
	}

	var learners []models.Learner
	err := bc.DB.
		Joins("JOIN learner_batches ON learner_batches.learner_id = learners.id").
		Where("learner_batches.batch_id = ?", id).
		Order("learners.created_at DESC").
		Find(&learners).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch batch learners", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Batch learners fetched successfully", learners)
}

// CreateBatch inserts one batch. batchName and userId are required.
func (bc *BatchController) CreateBatch(c *fiber.Ctx) error {
	var input struct {
		BatchName        string `json:"batchName" validate:"required"`
		Location         string `json:"location"`
		Slot             string `json:"slot"`
		TrainerID        *uint  `json:"trainerId"`
		BatchStatus      string `json:"batchStatus"`
		TopicStatus      string `json:"topicStatus"`
		NoOfStudents     int    `json:"noOfStudents"`
		Stack            string `json:"stack"`
		StartDate        string `json:"startDate"`
		TentativeEndDate string `json:"tentativeEndDate"`
		ClassMode        string `json:"classMode"`
		Stage            string `json:"stage"`
		Comment          string `json:"comment"`
		Timing           string `json:"timing"`
		BatchStage       string `json:"batchStage"`
		Mentor           string `json:"mentor"`
		ZoomAccount      string `json:"zoomAccount"`
		StackOwner       string `json:"stackOwner"`
		Owner            string `json:"owner"`
		BatchOwner       string `json:"batchOwner"`
		Description      string `json:"description"`
		UserID           string `json:"userId" validate:"required"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	batch := models.Batch{
		BatchName:    input.BatchName,
		Location:     input.Location,
		Slot:         input.Slot,
		TrainerID:    input.TrainerID,
		BatchStatus:  input.BatchStatus,
		TopicStatus:  input.TopicStatus,
		NoOfStudents: input.NoOfStudents,
		Stack:        input.Stack,
		ClassMode:    input.ClassMode,
		Stage:        input.Stage,
		Comment:      input.Comment,
		Timing:       input.Timing,
		BatchStage:   input.BatchStage,
		Mentor:       input.Mentor,
		ZoomAccount:  input.ZoomAccount,
		StackOwner:   input.StackOwner,
		Owner:        input.Owner,
		BatchOwner:   input.BatchOwner,
		Description:  input.Description,
		UserID:       input.UserID,
	}

	var err error
	if batch.StartDate, err = parseDate(input.StartDate); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	if batch.TentativeEndDate, err = parseDate(input.TentativeEndDate); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	if err := bc.DB.Create(&batch).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create batch", err)
	}
	return utils.DataResponse(c, fiber.StatusCreated, "Batch created successfully", batch)
}

// UpdateBatch merges the provided fields onto the batch identified by id.
func (bc *BatchController) UpdateBatch(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "id query parameter is required", nil)
	}

	var raw map[string]interface{}
	if err := c.BodyParser(&raw); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	updates, err := buildUpdates(raw, batchColumns, batchDateFields)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	result := bc.DB.Model(&models.Batch{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update batch", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Batch not found", nil)
	}

	var batch models.Batch
	if err := bc.DB.First(&batch, "id = ?", id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch updated batch", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Batch updated successfully", batch)
}

// DeleteBatches removes batches and their learner_batches join rows in one
// transaction so membership rows cannot be orphaned.
func (bc *BatchController) DeleteBatches(c *fiber.Ctx) error {
	ids, err := deleteIDs(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var deleted int64
	err = bc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("batch_id IN ?", ids).Delete(&models.LearnerBatch{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Batch{}, ids)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete batches", err)
	}
	if deleted == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "No batches found for the given ids", nil)
	}
	return utils.MessageResponse(c, fiber.StatusOK, "Batches deleted successfully")
}
