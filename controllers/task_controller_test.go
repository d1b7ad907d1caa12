package controller

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillcapital/models"
	"skillcapital/utils"
)

func newTaskApp(t *testing.T) (*fiber.App, *fakeDirectory, *TaskController) {
	db := newTestDB(t)
	dir := newFakeDirectory()
	tc := NewTaskController(db, dir, testLogger())
	app := fiber.New()
	app.Get("/api/tasks", tc.GetTasks)
	app.Post("/api/tasks", tc.CreateTask)
	app.Put("/api/tasks", tc.UpdateTask)
	app.Delete("/api/tasks", tc.DeleteTasks)
	return app, dir, tc
}

func TestCreateTaskWritesFeedActivity(t *testing.T) {
	app, _, tc := newTaskApp(t)

	resp := jsonRequest(t, app, http.MethodPost, "/api/tasks", map[string]interface{}{
		"subject":  "Follow up",
		"dueDate":  "2025-01-10",
		"priority": "High",
		"userId":   "u1",
		"leadId":   5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var task models.Task
	require.NoError(t, tc.DB.First(&task, "subject = ?", "Follow up").Error)
	require.NotNil(t, task.LeadID)
	assert.Equal(t, uint(5), *task.LeadID)

	var activity models.Activity
	require.NoError(t, tc.DB.First(&activity, "activity_name = ?", "Task").Error)
	require.NotNil(t, activity.NewTaskID)
	assert.Equal(t, task.ID, *activity.NewTaskID)
	assert.Nil(t, activity.MeetingID)
	assert.Nil(t, activity.EmailID)
	assert.Nil(t, activity.MessageID)
	assert.Nil(t, activity.WhatsappID)
	require.NotNil(t, activity.LeadID)
	assert.Equal(t, uint(5), *activity.LeadID)
}

func TestCreateTaskValidatesRequiredFields(t *testing.T) {
	app, _, tc := newTaskApp(t)

	resp := jsonRequest(t, app, http.MethodPost, "/api/tasks", map[string]interface{}{
		"subject": "Missing bits",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int64
	require.NoError(t, tc.DB.Model(&models.Activity{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetTasksAttachesUserProfiles(t *testing.T) {
	app, dir, _ := newTaskApp(t)
	dir.users["u1"] = utils.UserProfile{ID: "u1", Email: "agent@test", Username: "agent"}

	resp := jsonRequest(t, app, http.MethodPost, "/api/tasks", map[string]interface{}{
		"subject": "Call", "dueDate": "2025-03-01", "priority": "Low", "userId": "u1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = jsonRequest(t, app, http.MethodPost, "/api/tasks", map[string]interface{}{
		"subject": "Mail", "dueDate": "2025-03-02", "priority": "Low", "userId": "unknown",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	rows := body["data"].([]interface{})
	require.Len(t, rows, 2)

	for _, raw := range rows {
		row := raw.(map[string]interface{})
		switch row["subject"] {
		case "Call":
			require.NotNil(t, row["user"])
			assert.Equal(t, "agent@test", row["user"].(map[string]interface{})["email"])
		case "Mail":
			assert.Nil(t, row["user"])
		}
	}
}
