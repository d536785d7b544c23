package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
)

const (
	DefaultModel = "gemini-3-pro-preview"

	temperature float32 = 0.7
	topP        float32 = 0.95
)

// Client generates text with the Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey string, model string) (*Client, error) {
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	slog.Info("Gemini client initialized", "model", model)
	return &Client{client: client, model: model}, nil
}

// Generate sends one prompt with a system instruction and returns the text of the first candidate.
func (c *Client) Generate(ctx context.Context, systemInstruction string, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr(temperature),
		TopP:              genai.Ptr(topP),
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	return resp.Text(), nil
}
