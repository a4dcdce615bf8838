package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// geminiProvider adapts Google's Gemini API behind the Provider
// capability. Unlike the HTTP adapters it goes through the official genai
// SDK, so the client carries the credential and transport.
type geminiProvider struct {
	client *genai.Client
}

// newGeminiProvider constructs the genai client for the given API key.
// The context covers client construction only, not later calls.
func newGeminiProvider(ctx context.Context, apiKey string) (*geminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiProvider{client: client}, nil
}

// ID implements Provider.
func (p *geminiProvider) ID() ProviderID { return ProviderGemini }

// Generate implements Provider. It unwraps the first candidate's text
// parts into plain generated text.
func (p *geminiProvider) Generate(ctx context.Context, prompt string, req Request) (string, error) {
	temperature := float32(req.Temperature)
	maxTokens := int32(req.MaxTokens)

	resp, err := p.client.Models.GenerateContent(ctx, req.Model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:     &temperature,
			MaxOutputTokens: maxTokens,
		})
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", ErrMalformedResponse)
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty content in candidate", ErrMalformedResponse)
	}

	var text string
	for _, part := range candidate.Content.Parts {
		text += part.Text
	}
	if text == "" {
		return "", fmt.Errorf("%w: no text parts in candidate", ErrMalformedResponse)
	}

	return text, nil
}
