package controller

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillcapital/models"
)

func newTemplateApp(t *testing.T) (*fiber.App, *TemplateController) {
	db := newTestDB(t)
	tc := NewTemplateController(db, testLogger())
	app := fiber.New()
	app.Get("/api/emailTemplates", tc.GetEmailTemplates)
	app.Post("/api/emailTemplates", tc.CreateEmailTemplate)
	app.Put("/api/emailTemplates", tc.UpdateEmailTemplate)
	app.Delete("/api/emailTemplates", tc.DeleteEmailTemplates)
	app.Get("/api/messageTemplate", tc.GetMessageTemplates)
	app.Post("/api/messageTemplate", tc.CreateMessageTemplate)
	app.Put("/api/messageTemplate", tc.UpdateMessageTemplate)
	app.Delete("/api/messageTemplate", tc.DeleteMessageTemplates)
	return app, tc
}

func TestEmailTemplateCRUD(t *testing.T) {
	app, tc := newTemplateApp(t)

	resp := jsonRequest(t, app, http.MethodPost, "/api/emailTemplates", map[string]interface{}{
		"name":        "welcome",
		"subject":     "Hi {leadName}",
		"htmlContent": "<p>Hi</p>",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodPost, "/api/emailTemplates", map[string]interface{}{
		"name": "no body",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodPut, "/api/emailTemplates?id=1", map[string]interface{}{
		"subject": "Welcome aboard",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var template models.EmailTemplate
	require.NoError(t, tc.DB.First(&template, 1).Error)
	assert.Equal(t, "Welcome aboard", template.Subject)
	assert.Equal(t, "welcome", template.Name)

	resp = jsonRequest(t, app, http.MethodDelete, "/api/emailTemplates?id=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = jsonRequest(t, app, http.MethodDelete, "/api/emailTemplates?id=1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMessageTemplateTypeIsConstrained(t *testing.T) {
	app, tc := newTemplateApp(t)

	resp := jsonRequest(t, app, http.MethodPost, "/api/messageTemplate", map[string]interface{}{
		"name":    "reminder",
		"type":    "fax",
		"content": "Fees due",
		"userId":  "u1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodPost, "/api/messageTemplate", map[string]interface{}{
		"name":    "reminder",
		"type":    "whatsapp",
		"content": "Fees due",
		"userId":  "u1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var count int64
	require.NoError(t, tc.DB.Model(&models.MessageTemplate{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMessageTemplateFiltersByType(t *testing.T) {
	app, tc := newTemplateApp(t)

	require.NoError(t, tc.DB.Create(&models.MessageTemplate{Name: "sms", Type: "text", Content: "a", UserID: "u1"}).Error)
	require.NoError(t, tc.DB.Create(&models.MessageTemplate{Name: "wa", Type: "whatsapp", Content: "b", UserID: "u1"}).Error)

	resp := jsonRequest(t, app, http.MethodGet, "/api/messageTemplate?type=whatsapp", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	rows := body["data"].([]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, "wa", rows[0].(map[string]interface{})["name"])
}
