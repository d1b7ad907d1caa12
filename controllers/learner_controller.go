package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"skillcapital/models"
	"skillcapital/utils"
)

type LearnerController struct {
	DB     *gorm.DB
	Store  FileStore
	Logger *log.Logger
}

func NewLearnerController(db *gorm.DB, store FileStore, logger *log.Logger) *LearnerController {
	return &LearnerController{
		DB:     db,
		Store:  store,
		Logger: logger,
	}
}

var learnerFilters = []utils.QueryFilter{
	{Param: "name", Column: "name", Kind: utils.FilterLike},
	{Param: "phone", Column: "phone", Kind: utils.FilterEquals},
	{Param: "email", Column: "email", Kind: utils.FilterEquals},
	{Param: "location", Column: "location", Kind: utils.FilterEquals},
	{Param: "source", Column: "source", Kind: utils.FilterEquals},
	{Param: "status", Column: "status", Kind: utils.FilterEquals},
	{Param: "userId", Column: "user_id", Kind: utils.FilterEquals},
}

var learnerColumns = map[string]string{
	"name":                     "name",
	"phone":                    "phone",
	"email":                    "email",
	"location":                 "location",
	"dateOfBirth":              "date_of_birth",
	"registeredDate":           "registered_date",
	"source":                   "source",
	"description":              "description",
	"totalFees":                "total_fees",
	"feesPaid":                 "fees_paid",
	"dueAmount":                "due_amount",
	"dueDate":                  "due_date",
	"modeOfInstallmentPayment": "mode_of_installment_payment",
	"status":                   "status",
	"userId":                   "user_id",
}

var learnerDateFields = map[string]bool{
	"dateOfBirth":    true,
	"registeredDate": true,
	"dueDate":        true,
}

// parseBatchIDs decodes the batchIds form field, a JSON integer array.
func parseBatchIDs(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}
	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("invalid batchIds %q", raw)
	}
	return ids, nil
}

// replaceBatchMemberships rewrites the learner's join rows and the serialized
// batch_id column inside the caller's transaction. The join table is the
// source of truth; the column is a write-through denormalized view.
func replaceBatchMemberships(tx *gorm.DB, learnerID uint, batchIDs []int64) error {
	if err := tx.Where("learner_id = ?", learnerID).Delete(&models.LearnerBatch{}).Error; err != nil {
		return err
	}
	for _, batchID := range batchIDs {
		row := models.LearnerBatch{LearnerID: learnerID, BatchID: uint(batchID)}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return tx.Model(&models.Learner{}).Where("id = ?", learnerID).
		Update("batch_id", datatypes.NewJSONSlice(batchIDs)).Error
}

// GetLearners lists learners by the registered filters, or one when id is set.
func (lc *LearnerController) GetLearners(c *fiber.Ctx) error {
	if id := c.Query("id"); id != "" {
		var learner models.Learner
		if err := lc.DB.First(&learner, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.ErrorResponse(c, fiber.StatusNotFound, "Learner not found", nil)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch learner", err)
		}
		return utils.DataResponse(c, fiber.StatusOK, "Learner fetched successfully", learner)
	}

	query := utils.ApplyFilters(c, lc.DB.Model(&models.Learner{}), learnerFilters)
	query, err := utils.ApplyDateRange(c, query, "created_at")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var learners []models.Learner
	if err := query.Order("created_at DESC").Find(&learners).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch learners", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Learners fetched successfully", learners)
}

// GetLearnerBatches lists the batches a learner belongs to, resolved through
// the join table and annotated with the trainer's name.
func (lc *LearnerController) GetLearnerBatches(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "id query parameter is required", nil)
	}

	var rows []batchWithTrainer
	err := lc.DB.Table("batches").
		Select("batches.*, trainers.trainer_name AS trainer_name").
		Joins("JOIN learner_batches ON learner_batches.batch_id = batches.id").
		Joins("LEFT JOIN trainers ON trainers.id = batches.trainer_id").
		Where("learner_batches.learner_id = ?", id).
		Order("batches.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch learner batches", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Learner batches fetched successfully", rows)
}

// GetLearnerTrainers lists the distinct trainers teaching the learner's
// batches.
func (lc *LearnerController) GetLearnerTrainers(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "id query parameter is required", nil)
	}

	var trainers []models.Trainer
	err := lc.DB.
		Distinct("trainers.*").
		Joins("JOIN batches ON batches.trainer_id = trainers.id").
		Joins("JOIN learner_batches ON learner_batches.batch_id = batches.id").
		Where("learner_batches.learner_id = ?", id).
		Find(&trainers).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch learner trainers", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Learner trainers fetched successfully", trainers)
}

// CreateLearner accepts multipart form data. batchIds is a JSON integer
// array; the learner row, its join rows and the serialized column are written
// in one transaction. File fields are uploaded before the transaction starts.
func (lc *LearnerController) CreateLearner(c *fiber.Ctx) error {
	name := c.FormValue("name")
	if name == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "name is required", nil)
	}

	batchIDs, err := parseBatchIDs(c.FormValue("batchIds"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	learner := models.Learner{
		Name:                     name,
		Phone:                    c.FormValue("phone"),
		Email:                    c.FormValue("email"),
		Location:                 c.FormValue("location"),
		Source:                   c.FormValue("source"),
		Description:              c.FormValue("description"),
		TotalFees:                c.FormValue("totalFees"),
		FeesPaid:                 c.FormValue("feesPaid"),
		DueAmount:                c.FormValue("dueAmount"),
		ModeOfInstallmentPayment: c.FormValue("modeOfInstallmentPayment"),
		Status:                   c.FormValue("status"),
		UserID:                   c.FormValue("userId"),
		BatchIDs:                 datatypes.NewJSONSlice(batchIDs),
	}

	if learner.DateOfBirth, err = parseDate(c.FormValue("dateOfBirth")); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	if learner.RegisteredDate, err = parseDate(c.FormValue("registeredDate")); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	if learner.DueDate, err = parseDate(c.FormValue("dueDate")); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	uploads := []struct {
		field string
		dst   *string
	}{
		{"idProof", &learner.IDProof},
		{"instalment1Screenshot", &learner.Instalment1Screenshot},
	}
	for _, u := range uploads {
		content, filename, contentType, ok, err := formFile(c, u.field)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to read "+u.field+" file", err)
		}
		if !ok {
			continue
		}
		url, err := lc.Store.Upload(c.Context(), objectPath("learners", filename), content, contentType)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to upload "+u.field, err)
		}
		*u.dst = url
	}

	err = lc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&learner).Error; err != nil {
			return err
		}
		for _, batchID := range batchIDs {
			row := models.LearnerBatch{LearnerID: learner.ID, BatchID: uint(batchID)}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create learner", err)
	}
	return utils.DataResponse(c, fiber.StatusCreated, "Learner created successfully", learner)
}

// UpdateLearner merges the provided multipart fields onto the learner. When
// batchIds is present the join rows and serialized column are replaced
// together in one transaction.
func (lc *LearnerController) UpdateLearner(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "id query parameter is required", nil)
	}

	var learner models.Learner
	if err := lc.DB.First(&learner, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Learner not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch learner", err)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid multipart form", err)
	}

	updates := make(map[string]interface{})
	for field, values := range form.Value {
		column, known := learnerColumns[field]
		if !known || len(values) == 0 {
			continue
		}
		if learnerDateFields[field] {
			t, err := parseDate(values[0])
			if err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
			}
			updates[column] = t
			continue
		}
		updates[column] = values[0]
	}

	uploads := []struct {
		field   string
		column  string
		current string
	}{
		{"idProof", "id_proof", learner.IDProof},
		{"instalment1Screenshot", "instalment1_screenshot", learner.Instalment1Screenshot},
	}
	for _, u := range uploads {
		content, filename, contentType, ok, err := formFile(c, u.field)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to read "+u.field+" file", err)
		}
		if !ok {
			continue
		}
		if u.current != "" {
			if err := lc.Store.Delete(c.Context(), u.current); err != nil {
				lc.Logger.Printf("failed to delete old %s for learner %s: %v", u.field, id, err)
			}
		}
		url, err := lc.Store.Upload(c.Context(), objectPath("learners", filename), content, contentType)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to upload "+u.field, err)
		}
		updates[u.column] = url
	}

	var batchIDs []int64
	replaceBatches := false
	if raw, present := form.Value["batchIds"]; present && len(raw) > 0 {
		batchIDs, err = parseBatchIDs(raw[0])
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
		}
		replaceBatches = true
	}

	if len(updates) == 0 && !replaceBatches {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "no updatable fields provided", nil)
	}

	err = lc.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.Learner{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}
		if replaceBatches {
			return replaceBatchMemberships(tx, learner.ID, batchIDs)
		}
		return nil
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update learner", err)
	}

	var updated models.Learner
	if err := lc.DB.First(&updated, "id = ?", id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch updated learner", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Learner updated successfully", updated)
}

// DeleteLearners removes learners and their join rows in one transaction,
// then best-effort deletes each learner's uploaded files.
func (lc *LearnerController) DeleteLearners(c *fiber.Ctx) error {
	ids, err := deleteIDs(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var learners []models.Learner
	if err := lc.DB.Where("id IN ?", ids).Find(&learners).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch learners", err)
	}
	if len(learners) == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "No learners found for the given ids", nil)
	}

	err = lc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("learner_id IN ?", ids).Delete(&models.LearnerBatch{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Learner{}, ids).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete learners", err)
	}

	var g errgroup.Group
	ctx := c.Context()
	for _, learner := range learners {
		for _, url := range []string{learner.IDProof, learner.Instalment1Screenshot} {
			if url == "" {
				continue
			}
			url := url
			learnerID := learner.ID
			g.Go(func() error {
				if err := lc.Store.Delete(ctx, url); err != nil {
					lc.Logger.Printf("failed to delete file for learner %d: %v", learnerID, err)
				}
				return nil
			})
		}
	}
	_ = g.Wait()

	return utils.MessageResponse(c, fiber.StatusOK, "Learners deleted successfully")
}
