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

// ollamaProvider adapts a local Ollama instance. It needs a reachable
// host rather than an API key; an unreachable host surfaces as a remote
// failure like any other provider error.
type ollamaProvider struct {
	host   string
	client *http.Client
}

func newOllamaProvider(host string, client *http.Client) *ollamaProvider {
	return &ollamaProvider{host: strings.TrimRight(host, "/"), client: client}
}

// ID implements Provider.
func (p *ollamaProvider) ID() ProviderID { return ProviderOllama }

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// Generate implements Provider.
func (p *ollamaProvider) Generate(ctx context.Context, prompt string, req Request) (string, error) {
	body, err := json.Marshal(ollamaRequest{
		Model:  req.Model,
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: req.Temperature,
			NumPredict:  req.MaxTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.host+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

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

	var generation ollamaResponse
	if err := json.Unmarshal(payload, &generation); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if generation.Response == "" {
		return "", fmt.Errorf("%w: empty response field", ErrMalformedResponse)
	}

	return generation.Response, nil
}
