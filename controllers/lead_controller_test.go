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

func newLeadApp(t *testing.T) (*fiber.App, *LeadController) {
	db := newTestDB(t)
	lc := NewLeadController(db, testLogger())
	app := fiber.New()
	app.Get("/api/leads", lc.GetLeads)
	app.Get("/api/leads/statistics", lc.GetLeadStatistics)
	app.Post("/api/leads", lc.CreateLead)
	app.Put("/api/leads", lc.UpdateLead)
	app.Delete("/api/leads", lc.DeleteLeads)
	return app, lc
}

func TestLeadIDShortCircuitMatchesListFiltering(t *testing.T) {
	app, lc := newLeadApp(t)

	for _, name := range []string{"Asha", "Bala", "Chitra"} {
		require.NoError(t, lc.DB.Create(&models.Lead{Name: name, LeadStatus: "Not Contacted"}).Error)
	}

	var target models.Lead
	require.NoError(t, lc.DB.First(&target, "name = ?", "Bala").Error)

	resp := jsonRequest(t, app, http.MethodGet, "/api/leads?id=2&leadStatus=bogus", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	row := body["data"].(map[string]interface{})
	// id overrides every other filter.
	assert.Equal(t, float64(target.ID), row["id"])
	assert.Equal(t, "Bala", row["name"])

	resp = jsonRequest(t, app, http.MethodGet, "/api/leads?id=999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLeadDateRangeSingleDayIsInclusive(t *testing.T) {
	app, lc := newLeadApp(t)

	inside := models.Lead{Name: "Inside"}
	require.NoError(t, lc.DB.Create(&inside).Error)
	createdAt(lc.DB, t, &models.Lead{}, inside.ID, time.Date(2025, 1, 1, 15, 30, 0, 0, time.UTC))

	outside := models.Lead{Name: "Outside"}
	require.NoError(t, lc.DB.Create(&outside).Error)
	createdAt(lc.DB, t, &models.Lead{}, outside.ID, time.Date(2025, 1, 2, 0, 15, 0, 0, time.UTC))

	resp := jsonRequest(t, app, http.MethodGet, "/api/leads?fromDate=2025-01-01&toDate=2025-01-01", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	rows := body["data"].([]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, "Inside", rows[0].(map[string]interface{})["name"])
}

func TestLeadCSVDeleteRemovesExactlyThoseRows(t *testing.T) {
	app, lc := newLeadApp(t)

	for _, name := range []string{"a", "b", "c", "d"} {
		require.NoError(t, lc.DB.Create(&models.Lead{Name: name}).Error)
	}

	resp := jsonRequest(t, app, http.MethodDelete, "/api/leads?ids=1,3", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var remaining []models.Lead
	require.NoError(t, lc.DB.Order("id").Find(&remaining).Error)
	require.Len(t, remaining, 2)
	assert.Equal(t, uint(2), remaining[0].ID)
	assert.Equal(t, uint(4), remaining[1].ID)

	resp = jsonRequest(t, app, http.MethodDelete, "/api/leads?ids=1,3", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodDelete, "/api/leads?ids=1,xyz", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLeadUpdateIsIdempotent(t *testing.T) {
	app, lc := newLeadApp(t)

	lead := models.Lead{Name: "Asha", LeadStatus: "Not Contacted"}
	require.NoError(t, lc.DB.Create(&lead).Error)

	update := map[string]interface{}{"leadStatus": "Contacted", "feeQuoted": 25000}

	resp := jsonRequest(t, app, http.MethodPut, "/api/leads?id=1", update)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = jsonRequest(t, app, http.MethodPut, "/api/leads?id=1", update)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var after models.Lead
	require.NoError(t, lc.DB.First(&after, lead.ID).Error)
	assert.Equal(t, "Contacted", after.LeadStatus)
	assert.Equal(t, 25000, after.FeeQuoted)
	assert.Equal(t, "Asha", after.Name)

	resp = jsonRequest(t, app, http.MethodPut, "/api/leads?id=999", update)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateLeadCoercesDates(t *testing.T) {
	app, lc := newLeadApp(t)

	resp := jsonRequest(t, app, http.MethodPost, "/api/leads", map[string]interface{}{
		"name":               "Walkin",
		"expectedWalkInDate": "2025-02-10",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var lead models.Lead
	require.NoError(t, lc.DB.First(&lead, "name = ?", "Walkin").Error)
	require.NotNil(t, lead.ExpectedWalkInDate)
	assert.Equal(t, 2025, lead.ExpectedWalkInDate.Year())

	resp = jsonRequest(t, app, http.MethodPost, "/api/leads", map[string]interface{}{
		"name":               "Bad",
		"expectedWalkInDate": "not-a-date",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
