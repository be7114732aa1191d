package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"bankbot-go/internal/config"
)

type geminiClient struct {
	cfg    config.LLMConfig
	client *http.Client
}

// NewGeminiClient creates a client for the hosted Gemini API. An absent API
// key is not fatal: Ask reports ErrNotConfigured without a network call.
func NewGeminiClient(cfg config.LLMConfig) Client {
	return &geminiClient{
		cfg:    cfg,
		client: newHTTPClient(cfg),
	}
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// geminiCandidateContent covers both known response shapes: a flat "text"
// field (2.5) and a nested "parts" array (1.5).
type geminiCandidateContent struct {
	Text  string       `json:"text"`
	Parts []geminiPart `json:"parts"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiCandidateContent `json:"content"`
	} `json:"candidates"`
}

func (c *geminiClient) Ask(ctx context.Context, question string) (string, error) {
	if c.cfg.Gemini.APIKey == "" {
		return "", ErrNotConfigured
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: buildPrompt(c.cfg.Prompt.Rules, question)}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     c.cfg.Generation.Temperature,
			MaxOutputTokens: c.cfg.Generation.MaxTokens,
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.cfg.Gemini.BaseURL, c.cfg.Gemini.Model, c.cfg.Gemini.APIKey)
	body, err := postJSON(ctx, c.client, url, payload)
	if err != nil {
		return "", err
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return extractGeminiText(parsed)
}

// extractGeminiText tries the known shape variants in order and reports
// ErrMalformed when neither matches.
func extractGeminiText(parsed geminiResponse) (string, error) {
	if len(parsed.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrMalformed)
	}
	content := parsed.Candidates[0].Content
	if content.Text != "" {
		return content.Text, nil
	}
	if len(content.Parts) > 0 && content.Parts[0].Text != "" {
		return content.Parts[0].Text, nil
	}
	return "", fmt.Errorf("%w: unrecognized candidate content shape", ErrMalformed)
}
