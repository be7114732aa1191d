// Package llm provides clients for the model backends that answer
// banking questions.
package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"bankbot-go/internal/config"
)

// defaultSystemPrompt is used when no prompt rules are configured.
const defaultSystemPrompt = "You are a banking assistant. " +
	"Answer ONLY banking-related questions clearly and professionally."

// defaultTimeout bounds an outbound model call when the config carries none.
const defaultTimeout = 40 * time.Second

// Client is a model backend that answers a single question.
type Client interface {
	Ask(ctx context.Context, question string) (string, error)
}

// NewClients builds every configured provider, keyed by selector name.
// The default provider is cfg.Provider.
func NewClients(cfg config.LLMConfig) map[string]Client {
	clients := make(map[string]Client)
	clients["gemini"] = NewGeminiClient(cfg)
	if cfg.Ollama.BaseURL != "" {
		clients["ollama"] = NewOllamaClient(cfg)
	}
	return clients
}

func newHTTPClient(cfg config.LLMConfig) *http.Client {
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// buildPrompt embeds the system rules and the user question into the flat
// prompt format every backend receives.
func buildPrompt(rules, question string) string {
	if rules == "" {
		rules = defaultSystemPrompt
	}
	return fmt.Sprintf("%s\nUser: %s\nAssistant:", rules, question)
}

// postJSON sends the payload and returns the response body. Transport
// failures are retried once (they carry no application state); HTTP error
// statuses are never retried.
func postJSON(ctx context.Context, client *http.Client, url string, payload []byte) ([]byte, error) {
	resp, err := doPost(ctx, client, url, payload)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		// One bounded retry for transient transport errors.
		resp, err = doPost(ctx, client, url, payload)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d, body: %s", ErrBadStatus, resp.StatusCode, truncateBody(body))
	}
	if readErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, readErr)
	}
	return body, nil
}

func doPost(ctx context.Context, client *http.Client, url string, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return client.Do(req)
}

func truncateBody(body []byte) string {
	const maxLen = 512
	if len(body) > maxLen {
		return string(body[:maxLen]) + "..."
	}
	return string(body)
}
