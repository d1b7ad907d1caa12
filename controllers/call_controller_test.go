package controller

import (
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillcapital/models"
)

func newCallApp(t *testing.T) (*fiber.App, *fakeTelephony, *CallController) {
	db := newTestDB(t)
	telephony := &fakeTelephony{}
	cc := NewCallController(db, telephony, testLogger())
	app := fiber.New()
	app.Get("/api/calls", cc.GetCalls)
	app.Get("/api/calls/download", cc.DownloadRecording)
	app.Post("/api/calls", cc.CreateCall)
	app.Post("/api/calls/connect", cc.ConnectCall)
	app.Post("/api/calls/create", cc.RecordCall)
	app.Put("/api/calls", cc.UpdateCall)
	return app, telephony, cc
}

func TestConnectCallBridgesAgentToNumber(t *testing.T) {
	app, telephony, _ := newCallApp(t)

	resp := jsonRequest(t, app, http.MethodPost, "/api/calls/connect", map[string]interface{}{
		"agentId": "1001",
		"to":      "+15550001",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, telephony.connects, 1)
	assert.Equal(t, "1001->+15550001", telephony.connects[0])

	resp = jsonRequest(t, app, http.MethodPost, "/api/calls/connect", map[string]interface{}{
		"agentId": "1001",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecordCallNormalizesWebhookFields(t *testing.T) {
	app, _, cc := newCallApp(t)

	resp := jsonRequest(t, app, http.MethodPost, "/api/calls/create", map[string]interface{}{
		"callerid":    "+15550002",
		"to":          "+15550003",
		"status":      "answered",
		"agent_id":    "1001",
		"user_no":     "+15550003",
		"time":        1712000000,
		"direction":   "outbound",
		"answeredsec": 42,
		"record":      true,
		"filename":    "rec-1.mp3",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var call models.Call
	require.NoError(t, cc.DB.First(&call).Error)
	assert.Equal(t, "+15550002", call.CallerID)
	assert.Equal(t, "1001", call.AgentID)
	assert.Equal(t, 42, call.AnsweredSeconds)
	assert.True(t, call.IsRecorded)
	assert.Equal(t, "rec-1.mp3", call.Filename)

	resp = jsonRequest(t, app, http.MethodPost, "/api/calls/create", map[string]interface{}{
		"status": "missed",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDownloadRecordingSetsAttachmentHeaders(t *testing.T) {
	app, _, _ := newCallApp(t)

	resp := jsonRequest(t, app, http.MethodGet, "/api/calls/download?fileName=rec-1.mp3", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "audio/mpeg", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, `attachment; filename="rec-1.mp3"`, resp.Header.Get(fiber.HeaderContentDisposition))

	content, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "audio-bytes-rec-1.mp3", string(content))

	resp = jsonRequest(t, app, http.MethodGet, "/api/calls/download", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetCallsFiltersByRecordingFlag(t *testing.T) {
	app, _, cc := newCallApp(t)

	require.NoError(t, cc.DB.Create(&models.Call{CallerID: "+1", To: "+2", IsRecorded: true}).Error)
	require.NoError(t, cc.DB.Create(&models.Call{CallerID: "+3", To: "+4"}).Error)

	resp := jsonRequest(t, app, http.MethodGet, "/api/calls?isRecorded=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	rows := body["data"].([]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, "+1", rows[0].(map[string]interface{})["callerId"])
}
