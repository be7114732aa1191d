package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bankbot-go/internal/config"
)

func ollamaTestConfig(baseURL string) config.LLMConfig {
	return config.LLMConfig{
		Provider: "ollama",
		Ollama: config.OllamaConfig{
			BaseURL: baseURL,
			Model:   "qwen2.5:0.5b",
		},
		Generation:     config.LLMGenerationConfig{Temperature: 0.2, MaxTokens: 220},
		TimeoutSeconds: 5,
	}
}

func TestOllamaAsk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		var req ollamaRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("request body is not valid JSON: %v", err)
		}
		if req.Stream {
			t.Error("expected stream:false")
		}
		if req.Model != "qwen2.5:0.5b" {
			t.Errorf("unexpected model %q", req.Model)
		}
		if req.Options.NumPredict != 220 {
			t.Errorf("unexpected num_predict %d", req.Options.NumPredict)
		}
		w.Write([]byte(`{"response":"  An IFSC code identifies a branch.  "}`))
	}))
	defer srv.Close()

	client := NewOllamaClient(ollamaTestConfig(srv.URL))
	answer, err := client.Ask(context.Background(), "what is ifsc")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if answer != "An IFSC code identifies a branch." {
		t.Errorf("unexpected answer %q", answer)
	}
}

func TestOllamaAskMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "oops"},
		{"missing response field", `{"done":true}`},
		{"empty response", `{"response":"   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewOllamaClient(ollamaTestConfig(srv.URL))
			_, err := client.Ask(context.Background(), "what is ifsc")
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestOllamaAskBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewOllamaClient(ollamaTestConfig(srv.URL))
	_, err := client.Ask(context.Background(), "what is ifsc")
	if !errors.Is(err, ErrBadStatus) {
		t.Fatalf("expected ErrBadStatus, got %v", err)
	}
}

func TestNewClients(t *testing.T) {
	cfg := config.LLMConfig{
		Provider: "gemini",
		Gemini:   config.GeminiConfig{APIKey: "k", BaseURL: "http://example", Model: "m"},
		Ollama:   config.OllamaConfig{BaseURL: "http://localhost:11434", Model: "m"},
	}
	clients := NewClients(cfg)
	if _, ok := clients["gemini"]; !ok {
		t.Error("expected a gemini client")
	}
	if _, ok := clients["ollama"]; !ok {
		t.Error("expected an ollama client")
	}

	cfg.Ollama.BaseURL = ""
	clients = NewClients(cfg)
	if _, ok := clients["ollama"]; ok {
		t.Error("expected no ollama client without a base URL")
	}
}
