package controller

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillcapital/models"
)

func newLearnerApp(t *testing.T) (*fiber.App, *fakeStore, *LearnerController) {
	db := newTestDB(t)
	store := &fakeStore{}
	lc := NewLearnerController(db, store, testLogger())
	app := fiber.New()
	app.Get("/api/learners", lc.GetLearners)
	app.Get("/api/learners/batches", lc.GetLearnerBatches)
	app.Get("/api/learners/trainers", lc.GetLearnerTrainers)
	app.Post("/api/learners", lc.CreateLearner)
	app.Put("/api/learners", lc.UpdateLearner)
	app.Delete("/api/learners", lc.DeleteLearners)
	return app, store, lc
}

func TestCreateLearnerRoundTripsBatchList(t *testing.T) {
	app, _, lc := newLearnerApp(t)

	resp := multipartRequest(t, app, http.MethodPost, "/api/learners", map[string]string{
		"name":     "Ravi",
		"batchIds": "[1,2]",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var learner models.Learner
	require.NoError(t, lc.DB.First(&learner, "name = ?", "Ravi").Error)

	// The serialized column reads back as the list that was sent.
	raw, err := json.Marshal(learner.BatchIDs)
	require.NoError(t, err)
	assert.JSONEq(t, "[1,2]", string(raw))

	var joins []models.LearnerBatch
	require.NoError(t, lc.DB.Where("learner_id = ?", learner.ID).Order("batch_id").Find(&joins).Error)
	require.Len(t, joins, 2)
	assert.Equal(t, uint(1), joins[0].BatchID)
	assert.Equal(t, uint(2), joins[1].BatchID)
}

func TestCreateLearnerRejectsMalformedBatchList(t *testing.T) {
	app, _, lc := newLearnerApp(t)

	resp := multipartRequest(t, app, http.MethodPost, "/api/learners", map[string]string{
		"name":     "Ravi",
		"batchIds": "1,2",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int64
	require.NoError(t, lc.DB.Model(&models.Learner{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateLearnerReplacesBatchMemberships(t *testing.T) {
	app, _, lc := newLearnerApp(t)

	resp := multipartRequest(t, app, http.MethodPost, "/api/learners", map[string]string{
		"name":     "Meena",
		"batchIds": "[1,2]",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = multipartRequest(t, app, http.MethodPut, "/api/learners?id=1", map[string]string{
		"batchIds": "[3]",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var joins []models.LearnerBatch
	require.NoError(t, lc.DB.Where("learner_id = ?", 1).Find(&joins).Error)
	require.Len(t, joins, 1)
	assert.Equal(t, uint(3), joins[0].BatchID)

	var learner models.Learner
	require.NoError(t, lc.DB.First(&learner, 1).Error)
	raw, err := json.Marshal(learner.BatchIDs)
	require.NoError(t, err)
	assert.JSONEq(t, "[3]", string(raw))
}

func TestDeleteLearnersRemovesJoinRowsAndFiles(t *testing.T) {
	app, store, lc := newLearnerApp(t)

	resp := multipartRequest(t, app, http.MethodPost, "/api/learners", map[string]string{
		"name":     "WithProof",
		"batchIds": "[1]",
	}, map[string][]byte{"idProof": []byte("png-bytes")})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = multipartRequest(t, app, http.MethodPost, "/api/learners", map[string]string{
		"name": "NoProof",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodDelete, "/api/learners?ids=1,2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var learnerCount, joinCount int64
	require.NoError(t, lc.DB.Model(&models.Learner{}).Count(&learnerCount).Error)
	require.NoError(t, lc.DB.Model(&models.LearnerBatch{}).Count(&joinCount).Error)
	assert.Zero(t, learnerCount)
	assert.Zero(t, joinCount)

	// Only the learner that had a file triggers a storage delete.
	assert.Equal(t, 1, store.deleteCount())
}

func TestGetLearnerBatchesAnnotatesTrainerName(t *testing.T) {
	app, _, lc := newLearnerApp(t)

	trainer := models.Trainer{TrainerName: "Priya"}
	require.NoError(t, lc.DB.Create(&trainer).Error)
	batch := models.Batch{BatchName: "GoLang Jan", TrainerID: &trainer.ID, UserID: "u1"}
	require.NoError(t, lc.DB.Create(&batch).Error)

	resp := multipartRequest(t, app, http.MethodPost, "/api/learners", map[string]string{
		"name":     "Kiran",
		"batchIds": "[1]",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodGet, "/api/learners/batches?id=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	rows := body["data"].([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, "GoLang Jan", row["batchName"])
	assert.Equal(t, "Priya", row["trainerName"])

	resp = jsonRequest(t, app, http.MethodGet, "/api/learners/trainers?id=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	trainers := body["data"].([]interface{})
	require.Len(t, trainers, 1)
	assert.Equal(t, "Priya", trainers[0].(map[string]interface{})["trainerName"])
}
