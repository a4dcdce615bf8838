package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const huggingFaceBaseURL = "https://api-inference.huggingface.co/models"

// huggingFaceProvider adapts the Hugging Face serverless inference API.
// Text-generation models there may echo the prompt ahead of the
// completion, so the adapter strips a leading prompt prefix as part of
// normalization.
type huggingFaceProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func newHuggingFaceProvider(apiKey string, client *http.Client) *huggingFaceProvider {
	return &huggingFaceProvider{baseURL: huggingFaceBaseURL, apiKey: apiKey, client: client}
}

// ID implements Provider.
func (p *huggingFaceProvider) ID() ProviderID { return ProviderHuggingFace }

type huggingFaceRequest struct {
	Inputs     string                `json:"inputs"`
	Parameters huggingFaceParameters `json:"parameters"`
}

type huggingFaceParameters struct {
	Temperature    float64 `json:"temperature"`
	MaxNewTokens   int     `json:"max_new_tokens"`
	ReturnFullText bool    `json:"return_full_text"`
}

type huggingFaceResponse []struct {
	GeneratedText string `json:"generated_text"`
}

// Generate implements Provider.
func (p *huggingFaceProvider) Generate(ctx context.Context, prompt string, req Request) (string, error) {
	body, err := json.Marshal(huggingFaceRequest{
		Inputs: prompt,
		Parameters: huggingFaceParameters{
			Temperature:    req.Temperature,
			MaxNewTokens:   req.MaxTokens,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/"+req.Model, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{Code: resp.StatusCode, Body: truncateBody(payload)}
	}

	var generations huggingFaceResponse
	if err := json.Unmarshal(payload, &generations); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(generations) == 0 || generations[0].GeneratedText == "" {
		return "", fmt.Errorf("%w: empty generations", ErrMalformedResponse)
	}

	// Models that ignore return_full_text concatenate prompt and
	// completion; strip the echoed prompt so callers see only new text.
	text := generations[0].GeneratedText
	if stripped := strings.TrimPrefix(text, prompt); stripped != text {
		text = strings.TrimLeft(stripped, "\n")
	}
	if text == "" {
		return "", fmt.Errorf("%w: completion contained only the echoed prompt", ErrMalformedResponse)
	}

	return text, nil
}
