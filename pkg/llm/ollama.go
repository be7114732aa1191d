package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"bankbot-go/internal/config"
)

type ollamaClient struct {
	cfg    config.LLMConfig
	client *http.Client
}

// NewOllamaClient creates a client for an unauthenticated local Ollama
// server.
func NewOllamaClient(cfg config.LLMConfig) Client {
	return &ollamaClient{
		cfg:    cfg,
		client: newHTTPClient(cfg),
	}
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

func (c *ollamaClient) Ask(ctx context.Context, question string) (string, error) {
	if c.cfg.Ollama.BaseURL == "" {
		return "", ErrNotConfigured
	}

	reqBody := ollamaRequest{
		Model:  c.cfg.Ollama.Model,
		Prompt: buildPrompt(c.cfg.Prompt.Rules, question),
		Stream: false,
		Options: ollamaOptions{
			NumPredict:  c.cfg.Generation.MaxTokens,
			Temperature: c.cfg.Generation.Temperature,
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal ollama request: %w", err)
	}

	body, err := postJSON(ctx, c.client, c.cfg.Ollama.BaseURL+"/api/generate", payload)
	if err != nil {
		return "", err
	}

	var parsed ollamaResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	answer := strings.TrimSpace(parsed.Response)
	if answer == "" {
		return "", fmt.Errorf("%w: empty response field", ErrMalformed)
	}
	return answer, nil
}
