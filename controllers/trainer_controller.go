package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"skillcapital/models"
	"skillcapital/utils"
)

type TrainerController struct {
	DB     *gorm.DB
	Store  FileStore
	Logger *log.Logger
}

func NewTrainerController(db *gorm.DB, store FileStore, logger *log.Logger) *TrainerController {
	return &TrainerController{
		DB:     db,
		Store:  store,
		Logger: logger,
	}
}

var trainerFilters = []utils.QueryFilter{
	{Param: "trainerName", Column: "trainer_name", Kind: utils.FilterLike},
	{Param: "phone", Column: "phone", Kind: utils.FilterEquals},
	{Param: "email", Column: "email", Kind: utils.FilterEquals},
	{Param: "location", Column: "location", Kind: utils.FilterEquals},
	{Param: "techStack", Column: "tech_stack", Kind: utils.FilterEquals},
	{Param: "slot", Column: "slot", Kind: utils.FilterEquals},
	{Param: "status", Column: "status", Kind: utils.FilterEquals},
	{Param: "userId", Column: "user_id", Kind: utils.FilterEquals},
}

// trainerColumns maps multipart form field names to columns for updates.
var trainerColumns = map[string]string{
	"trainerName": "trainer_name",
	"phone":       "phone",
	"email":       "email",
	"location":    "location",
	"techStack":   "tech_stack",
	"joiningDate": "joining_date",
	"dateOfBirth": "date_of_birth",
	"slot":        "slot",
	"status":      "status",
	"description": "description",
	"userId":      "user_id",
}

var trainerDateFields = map[string]bool{
	"joiningDate": true,
	"dateOfBirth": true,
}

// GetTrainers lists trainers by the registered filters, or one when id is set.
func (tc *TrainerController) GetTrainers(c *fiber.Ctx) error {
	if id := c.Query("id"); id != "" {
		var trainer models.Trainer
		if err := tc.DB.First(&trainer, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.ErrorResponse(c, fiber.StatusNotFound, "Trainer not found", nil)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch trainer", err)
		}
		return utils.DataResponse(c, fiber.StatusOK, "Trainer fetched successfully", trainer)
	}

	query := utils.ApplyFilters(c, tc.DB.Model(&models.Trainer{}), trainerFilters)
	query, err := utils.ApplyDateRange(c, query, "created_at")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var trainers []models.Trainer
	if err := query.Order("created_at DESC").Find(&trainers).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch trainers", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Trainers fetched successfully", trainers)
}

// GetTrainerBatches lists the batches assigned to the trainer given by id.
func (tc *TrainerController) GetTrainerBatches(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "id query parameter is required", nil)
	}

	var batches []models.Batch
	if err := tc.DB.Where("trainer_id = ?", id).Order("created_at DESC").Find(&batches).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch trainer batches", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Trainer batches fetched successfully", batches)
}

// GetTrainerStatistics reports trainer totals and per-status counts.
func (tc *TrainerController) GetTrainerStatistics(c *fiber.Ctx) error {
	var trainers []models.Trainer
	if err := tc.DB.Find(&trainers).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch trainer statistics", err)
	}

	statusCounts := make(map[string]int)
	stackCounts := make(map[string]int)
	for _, t := range trainers {
		statusCounts[t.Status]++
		if t.TechStack != "" {
			stackCounts[t.TechStack]++
		}
	}

	return utils.DataResponse(c, fiber.StatusOK, "Trainer statistics fetched successfully", fiber.Map{
		"total":        len(trainers),
		"statusCounts": statusCounts,
		"stackCounts":  stackCounts,
	})
}

// CreateTrainer accepts multipart form data. An idProof file field, when
// present, is uploaded to storage and persisted as its public URL.
func (tc *TrainerController) CreateTrainer(c *fiber.Ctx) error {
	name := c.FormValue("trainerName")
	if name == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "trainerName is required", nil)
	}

	trainer := models.Trainer{
		TrainerName: name,
		Phone:       c.FormValue("phone"),
		Email:       c.FormValue("email"),
		Location:    c.FormValue("location"),
		TechStack:   c.FormValue("techStack"),
		Slot:        c.FormValue("slot"),
		Status:      c.FormValue("status"),
		Description: c.FormValue("description"),
		UserID:      c.FormValue("userId"),
	}

	var err error
	if trainer.JoiningDate, err = parseDate(c.FormValue("joiningDate")); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	if trainer.DateOfBirth, err = parseDate(c.FormValue("dateOfBirth")); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	content, filename, contentType, ok, err := formFile(c, "idProof")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to read idProof file", err)
	}
	if ok {
		url, err := tc.Store.Upload(c.Context(), objectPath("trainers", filename), content, contentType)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to upload idProof", err)
		}
		trainer.IDProof = url
	}

	if err := tc.DB.Create(&trainer).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create trainer", err)
	}
	return utils.DataResponse(c, fiber.StatusCreated, "Trainer created successfully", trainer)
}

// UpdateTrainer merges the provided multipart fields onto the trainer. A new
// idProof file replaces the old one: the previous object is deleted best
// effort before the new URL is stored.
func (tc *TrainerController) UpdateTrainer(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "id query parameter is required", nil)
	}

	var trainer models.Trainer
	if err := tc.DB.First(&trainer, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Trainer not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch trainer", err)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid multipart form", err)
	}

	updates := make(map[string]interface{})
	for field, values := range form.Value {
		column, known := trainerColumns[field]
		if !known || len(values) == 0 {
			continue
		}
		if trainerDateFields[field] {
			t, err := parseDate(values[0])
			if err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
			}
			updates[column] = t
			continue
		}
		updates[column] = values[0]
	}

	content, filename, contentType, ok, err := formFile(c, "idProof")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to read idProof file", err)
	}
	if ok {
		if trainer.IDProof != "" {
			if err := tc.Store.Delete(c.Context(), trainer.IDProof); err != nil {
				tc.Logger.Printf("failed to delete old idProof for trainer %s: %v", id, err)
			}
		}
		url, err := tc.Store.Upload(c.Context(), objectPath("trainers", filename), content, contentType)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to upload idProof", err)
		}
		updates["id_proof"] = url
	}

	if len(updates) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "no updatable fields provided", nil)
	}

	if err := tc.DB.Model(&trainer).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update trainer", err)
	}

	var updated models.Trainer
	if err := tc.DB.First(&updated, "id = ?", id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch updated trainer", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Trainer updated successfully", updated)
}

// DeleteTrainers removes trainers by id/ids, then best-effort deletes each
// removed trainer's uploaded idProof file. File-deletion failures are logged,
// never surfaced.
func (tc *TrainerController) DeleteTrainers(c *fiber.Ctx) error {
	ids, err := deleteIDs(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var trainers []models.Trainer
	if err := tc.DB.Where("id IN ?", ids).Find(&trainers).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch trainers", err)
	}
	if len(trainers) == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "No trainers found for the given ids", nil)
	}

	if err := tc.DB.Delete(&models.Trainer{}, ids).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete trainers", err)
	}

	var g errgroup.Group
	ctx := c.Context()
	for _, trainer := range trainers {
		if trainer.IDProof == "" {
			continue
		}
		trainer := trainer
		g.Go(func() error {
			if err := tc.Store.Delete(ctx, trainer.IDProof); err != nil {
				tc.Logger.Printf("failed to delete idProof for trainer %d: %v", trainer.ID, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	return utils.MessageResponse(c, fiber.StatusOK, "Trainers deleted successfully")
}
