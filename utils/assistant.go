package utils

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const defaultAssistantModel = "gemini-2.0-flash"

// GeminiAssistant answers free-form prompts through the Gemini API.
type GeminiAssistant struct {
	client *genai.Client
	model  string
}

func NewGeminiAssistant(ctx context.Context, apiKey string) (*GeminiAssistant, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiAssistant{client: client, model: defaultAssistantModel}, nil
}

// GenerateText sends one prompt and returns the concatenated text reply.
func (g *GeminiAssistant) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}
