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

func newMeetingApp(t *testing.T) (*fiber.App, *fakeMeetings, *fakeMailer, *fakeDirectory, *MeetingController) {
	db := newTestDB(t)
	provider := &fakeMeetings{}
	mail := &fakeMailer{}
	dir := newFakeDirectory()
	mc := NewMeetingController(db, provider, mail, dir, testLogger())
	app := fiber.New()
	app.Get("/api/meeting", mc.GetMeetings)
	app.Post("/api/meeting", mc.CreateMeeting)
	app.Delete("/api/meeting", mc.DeleteMeetings)
	return app, provider, mail, dir, mc
}

func TestCreateMeetingDerivesDurationAndInvitesHost(t *testing.T) {
	app, provider, mail, dir, mc := newMeetingApp(t)
	dir.users["u1"] = utils.UserProfile{ID: "u1", Email: "host@test"}

	resp := jsonRequest(t, app, http.MethodPost, "/api/meeting", map[string]interface{}{
		"meetingName":  "Demo class",
		"startTime":    "2025-04-01T10:00",
		"endTime":      "2025-04-01T10:45",
		"participants": []string{"a@test", "b@test"},
		"userId":       "u1",
		"batchId":      2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	assert.Equal(t, "Demo class", provider.lastTopic)
	assert.Equal(t, 45, provider.lastDuration)

	require.Len(t, mail.sends, 1)
	assert.Equal(t, []string{"a@test", "b@test", "host@test"}, mail.sends[0].To)
	assert.Contains(t, mail.sends[0].Body, "https://zoom.test/j/987654321")

	var meeting models.Meeting
	require.NoError(t, mc.DB.First(&meeting).Error)
	assert.Equal(t, "987654321", meeting.ZoomMeetingID)
	assert.Equal(t, "host-1", meeting.HostID)

	var activity models.Activity
	require.NoError(t, mc.DB.First(&activity, "activity_name = ?", "Meeting").Error)
	require.NotNil(t, activity.MeetingID)
	assert.Equal(t, meeting.ID, *activity.MeetingID)
	require.NotNil(t, activity.BatchID)
	assert.Equal(t, uint(2), *activity.BatchID)
}

func TestCreateMeetingRejectsInvertedTimes(t *testing.T) {
	app, _, _, _, mc := newMeetingApp(t)

	resp := jsonRequest(t, app, http.MethodPost, "/api/meeting", map[string]interface{}{
		"meetingName": "Demo",
		"startTime":   "2025-04-01T11:00",
		"endTime":     "2025-04-01T10:00",
		"userId":      "u1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int64
	require.NoError(t, mc.DB.Model(&models.Meeting{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateMeetingProviderFailureWritesNothing(t *testing.T) {
	app, provider, mail, _, mc := newMeetingApp(t)
	provider.err = assert.AnError

	resp := jsonRequest(t, app, http.MethodPost, "/api/meeting", map[string]interface{}{
		"meetingName": "Demo",
		"startTime":   "2025-04-01T10:00",
		"endTime":     "2025-04-01T11:00",
		"userId":      "u1",
	})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Empty(t, mail.sends)

	var meetings, activities int64
	require.NoError(t, mc.DB.Model(&models.Meeting{}).Count(&meetings).Error)
	require.NoError(t, mc.DB.Model(&models.Activity{}).Count(&activities).Error)
	assert.Zero(t, meetings)
	assert.Zero(t, activities)
}

func TestCreateMeetingHostLookupFailureStillDelivers(t *testing.T) {
	app, _, mail, dir, _ := newMeetingApp(t)
	dir.failNext = true

	resp := jsonRequest(t, app, http.MethodPost, "/api/meeting", map[string]interface{}{
		"meetingName":  "Demo",
		"startTime":    "2025-04-01T10:00",
		"endTime":      "2025-04-01T11:00",
		"participants": []string{"a@test"},
		"userId":       "u1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.Len(t, mail.sends, 1)
	assert.Equal(t, []string{"a@test"}, mail.sends[0].To)
}
