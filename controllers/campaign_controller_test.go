package controller

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillcapital/models"
)

func newCampaignApp(t *testing.T) (*fiber.App, *CampaignController) {
	db := newTestDB(t)
	cc := NewCampaignController(db, testLogger())
	app := fiber.New()
	app.Get("/api/campaigns", cc.GetCampaigns)
	app.Post("/api/campaigns", cc.CreateCampaign)
	app.Put("/api/campaigns", cc.ReplaceCampaign)
	app.Patch("/api/campaigns", cc.PatchCampaign)
	app.Delete("/api/campaigns", cc.DeleteCampaigns)
	return app, cc
}

func TestCampaignFiltersCombineNewestFirst(t *testing.T) {
	app, cc := newCampaignApp(t)

	rows := []models.Campaign{
		{Name: "old-match", Status: "upcoming", UserID: "u1"},
		{Name: "wrong-user", Status: "upcoming", UserID: "u2"},
		{Name: "wrong-status", Status: "completed", UserID: "u1"},
		{Name: "new-match", Status: "upcoming", UserID: "u1"},
	}
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := range rows {
		require.NoError(t, cc.DB.Create(&rows[i]).Error)
		createdAt(cc.DB, t, &models.Campaign{}, rows[i].ID, base.Add(time.Duration(i)*time.Hour))
	}

	resp := jsonRequest(t, app, http.MethodGet, "/api/campaigns?status=upcoming&userId=u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	list := body["data"].([]interface{})
	require.Len(t, list, 2)
	assert.Equal(t, "new-match", list[0].(map[string]interface{})["name"])
	assert.Equal(t, "old-match", list[1].(map[string]interface{})["name"])
}

func TestCampaignPutRequiresFullFieldSet(t *testing.T) {
	app, cc := newCampaignApp(t)

	campaign := models.Campaign{Name: "Spring", Status: "upcoming", Type: "email", UserID: "u1"}
	require.NoError(t, cc.DB.Create(&campaign).Error)

	// Partial body on PUT fails validation.
	resp := jsonRequest(t, app, http.MethodPut, "/api/campaigns?id=1", map[string]interface{}{
		"name": "Spring v2",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodPut, "/api/campaigns?id=1", map[string]interface{}{
		"name":   "Spring v2",
		"status": "live",
		"type":   "email",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var after models.Campaign
	require.NoError(t, cc.DB.First(&after, campaign.ID).Error)
	assert.Equal(t, "Spring v2", after.Name)
	assert.Equal(t, "live", after.Status)
	// Full replace clears fields the body omitted.
	assert.Equal(t, "", after.UserID)
}

func TestCampaignPatchMergesPartialFields(t *testing.T) {
	app, cc := newCampaignApp(t)

	campaign := models.Campaign{Name: "Summer", Status: "upcoming", Type: "sms", UserID: "u1"}
	require.NoError(t, cc.DB.Create(&campaign).Error)

	resp := jsonRequest(t, app, http.MethodPatch, "/api/campaigns?id=1", map[string]interface{}{
		"status": "completed",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var after models.Campaign
	require.NoError(t, cc.DB.First(&after, campaign.ID).Error)
	assert.Equal(t, "completed", after.Status)
	assert.Equal(t, "Summer", after.Name)
	assert.Equal(t, "u1", after.UserID)

	resp = jsonRequest(t, app, http.MethodPatch, "/api/campaigns?id=77", map[string]interface{}{"status": "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateCampaignDefaultsStatus(t *testing.T) {
	app, cc := newCampaignApp(t)

	resp := jsonRequest(t, app, http.MethodPost, "/api/campaigns", map[string]interface{}{
		"name": "Autumn",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var campaign models.Campaign
	require.NoError(t, cc.DB.First(&campaign, "name = ?", "Autumn").Error)
	assert.Equal(t, "upcoming", campaign.Status)

	resp = jsonRequest(t, app, http.MethodPost, "/api/campaigns", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
