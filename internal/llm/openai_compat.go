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

// Base URLs for the hosted OpenAI-compatible services.
const (
	groqBaseURL     = "https://api.groq.com/openai/v1"
	togetherBaseURL = "https://api.together.xyz/v1"
)

// openAICompatProvider adapts any service exposing the OpenAI
// chat-completions wire contract. Groq and Together both do.
type openAICompatProvider struct {
	id      ProviderID
	baseURL string
	apiKey  string
	client  *http.Client
}

// newOpenAICompatProvider creates an adapter for one OpenAI-compatible
// service. The base URL is everything before /chat/completions.
func newOpenAICompatProvider(id ProviderID, baseURL, apiKey string, client *http.Client) *openAICompatProvider {
	return &openAICompatProvider{
		id:      id,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

// ID implements Provider.
func (p *openAICompatProvider) ID() ProviderID { return p.id }

// chatCompletionRequest is the subset of the chat-completions request
// body this gateway uses.
type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionResponse is the subset of the response envelope needed to
// extract the generated text.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate implements Provider. It issues one chat-completions call and
// unwraps the first choice's message content.
func (p *openAICompatProvider) Generate(ctx context.Context, prompt string, req Request) (string, error) {
	body, err := json.Marshal(chatCompletionRequest{
		Model:       req.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/chat/completions", bytes.NewReader(body))
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

	var completion chatCompletionResponse
	if err := json.Unmarshal(payload, &completion); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty choices", ErrMalformedResponse)
	}

	return completion.Choices[0].Message.Content, nil
}

// maxResponseBytes caps how much of a provider response is read, keeping a
// misbehaving provider from exhausting memory.
const maxResponseBytes = 4 << 20

// truncateBody shortens an error response body for inclusion in an error
// message.
func truncateBody(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
