package controller

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAIApp(t *testing.T) *fiber.App {
	ac := NewAIController(fakeGenerator{}, testLogger())
	app := fiber.New()
	app.Post("/api/ask-ai", ac.Ask)
	return app
}

func TestAskReturnsGeneratedText(t *testing.T) {
	app := newAIApp(t)

	resp := jsonRequest(t, app, http.MethodPost, "/api/ask-ai", map[string]interface{}{
		"searchQuery": "write a follow-up email",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "draft: write a follow-up email", body["data"])
}

func TestAskRequiresQuery(t *testing.T) {
	app := newAIApp(t)

	resp := jsonRequest(t, app, http.MethodPost, "/api/ask-ai", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
