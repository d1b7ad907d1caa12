package controller

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillcapital/models"
	"skillcapital/utils"
)

func newActivityApp(t *testing.T) (*fiber.App, *fakeDirectory, *ActivityController) {
	db := newTestDB(t)
	dir := newFakeDirectory()
	ac := NewActivityController(db, dir, testLogger())
	app := fiber.New()
	app.Post("/api/activity", ac.GetActivities)
	return app, dir, ac
}

func TestActivityFeedRequiresExactlyOneContextKey(t *testing.T) {
	app, _, _ := newActivityApp(t)

	cases := []map[string]interface{}{
		{},
		{"leadId": 1, "batchId": 2},
		{"leadId": 0},
		{"trainerId": nil},
	}
	for _, body := range cases {
		resp := jsonRequest(t, app, http.MethodPost, "/api/activity", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "body %v", body)
	}
}

func TestActivityFeedEmptyResultIsNotAnError(t *testing.T) {
	app, _, _ := newActivityApp(t)

	resp := jsonRequest(t, app, http.MethodPost, "/api/activity", map[string]interface{}{"leadId": 42})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "No activities found", body["message"])
	assert.Empty(t, body["data"])
}

func TestActivityFeedResolvesPayloadsNewestFirst(t *testing.T) {
	app, dir, ac := newActivityApp(t)
	db := ac.DB
	dir.users["u1"] = utils.UserProfile{ID: "u1", Email: "owner@test", Username: "owner"}

	leadID := uint(9)
	refs := models.ContextRefs{LeadID: &leadID}

	task := models.Task{Subject: "Follow up", DueDate: time.Now(), Priority: "High", UserID: "u1", ContextRefs: refs}
	require.NoError(t, db.Create(&task).Error)
	message := models.Message{PhoneNumber: "+15550001", ProviderSID: "SM1", Type: models.MessageTypeText, ContextRefs: refs}
	require.NoError(t, db.Create(&message).Error)

	older := models.NewActivity("Task", "u1", refs, models.ActivityPayload{Kind: models.PayloadTask, RefID: task.ID})
	require.NoError(t, db.Create(&older).Error)
	createdAt(db, t, &models.Activity{}, older.ID, time.Now().Add(-2*time.Hour))

	newer := models.NewActivity("Message", "u1", refs, models.ActivityPayload{Kind: models.PayloadMessage, RefID: message.ID})
	require.NoError(t, db.Create(&newer).Error)
	createdAt(db, t, &models.Activity{}, newer.ID, time.Now().Add(-time.Hour))

	bare := models.NewActivity("Note", "u1", refs, models.ActivityPayload{})
	require.NoError(t, db.Create(&bare).Error)

	resp := jsonRequest(t, app, http.MethodPost, "/api/activity", map[string]interface{}{"leadId": 9})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	rows, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, rows, 3)

	first := rows[0].(map[string]interface{})
	second := rows[1].(map[string]interface{})
	third := rows[2].(map[string]interface{})

	// Newest first: the bare activity, then message, then task.
	assert.Equal(t, "Note", first["activityName"])
	assert.Nil(t, first["data"])

	assert.Equal(t, "Message", second["activityName"])
	messageData := second["data"].(map[string]interface{})
	assert.Equal(t, "SM1", messageData["message"].(map[string]interface{})["messageId"])

	assert.Equal(t, "Task", third["activityName"])
	taskData := third["data"].(map[string]interface{})
	assert.Equal(t, "Follow up", taskData["task"].(map[string]interface{})["subject"])
	assert.Equal(t, "owner@test", taskData["user"].(map[string]interface{})["email"])
}

func TestActivityFeedDirectoryFailureDegradesToNullProfile(t *testing.T) {
	app, dir, ac := newActivityApp(t)
	db := ac.DB
	dir.failNext = true

	batchID := uint(3)
	refs := models.ContextRefs{BatchID: &batchID}
	task := models.Task{Subject: "Call learner", DueDate: time.Now(), Priority: "Low", UserID: "u9", ContextRefs: refs}
	require.NoError(t, db.Create(&task).Error)
	activity := models.NewActivity("Task", "u9", refs, models.ActivityPayload{Kind: models.PayloadTask, RefID: task.ID})
	require.NoError(t, db.Create(&activity).Error)

	resp := jsonRequest(t, app, http.MethodPost, "/api/activity", map[string]interface{}{"batchId": 3})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	rows := body["data"].([]interface{})
	require.Len(t, rows, 1)
	data := rows[0].(map[string]interface{})["data"].(map[string]interface{})
	assert.Equal(t, "Call learner", data["task"].(map[string]interface{})["subject"])
	assert.Nil(t, data["user"])
}

func TestActivityFeedInlinesEmailTemplate(t *testing.T) {
	app, _, ac := newActivityApp(t)
	db := ac.DB

	template := models.EmailTemplate{Name: "welcome", Subject: "Hi", HTMLContent: "<p>Hi {leadName}</p>"}
	require.NoError(t, db.Create(&template).Error)

	leadID := uint(4)
	refs := models.ContextRefs{LeadID: &leadID}
	email := models.Email{
		To:              []string{"a@test"},
		From:            "noreply@test",
		EmailTemplateID: &template.ID,
		ContextRefs:     refs,
	}
	require.NoError(t, db.Create(&email).Error)
	activity := models.NewActivity("Email", "u1", refs, models.ActivityPayload{Kind: models.PayloadEmail, RefID: email.ID})
	require.NoError(t, db.Create(&activity).Error)

	resp := jsonRequest(t, app, http.MethodPost, "/api/activity", map[string]interface{}{"leadId": 4})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	rows := body["data"].([]interface{})
	require.Len(t, rows, 1)
	data := rows[0].(map[string]interface{})["data"].(map[string]interface{})
	assert.Equal(t, "welcome", data["template"].(map[string]interface{})["name"])
}
