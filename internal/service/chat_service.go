// Package service holds the application's business logic.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"bankbot-go/internal/cache"
	"bankbot-go/internal/gate"
	"bankbot-go/internal/library"
	"bankbot-go/internal/model"
	"bankbot-go/internal/sanitize"
	"bankbot-go/pkg/llm"
	"bankbot-go/pkg/log"
)

// User-facing replies for every locally recovered condition.
const (
	msgEmptyQuestion = "Please enter your question."
	msgSecureInfo    = "Please use your bank's secure channels for account numbers and PINs."
	msgOutOfDomain   = "I am a banking-only assistant.\n\n" +
		"You can ask about:\n" +
		"- Bank accounts\n" +
		"- Loans & EMI\n" +
		"- Interest rates\n" +
		"- Cards & ATM\n" +
		"- Deposits & KYC"
	msgUpstreamError = "The AI service is temporarily unavailable. Please try again."
	msgNotConfigured = "The AI service is not configured. Set GEMINI_API_KEY to enable model answers."
)

// defaultMaxQuestionLen bounds the raw question when no limit is configured.
const defaultMaxQuestionLen = 250

// ChatService answers a single question through the gate -> library ->
// cache -> model pipeline.
type ChatService interface {
	Answer(ctx context.Context, question, provider string) model.ChatAnswer
	HasProvider(name string) bool
}

type chatService struct {
	gate            *gate.Gate
	library         *library.Library
	cache           *cache.ResponseCache
	clients         map[string]llm.Client
	defaultProvider string
	maxQuestionLen  int
	sessions        SessionService
	now             func() time.Time
}

// NewChatService wires the answer pipeline. sessions may be nil when no
// transcript should be kept.
func NewChatService(
	g *gate.Gate,
	lib *library.Library,
	responseCache *cache.ResponseCache,
	clients map[string]llm.Client,
	defaultProvider string,
	maxQuestionLen int,
	sessions SessionService,
) ChatService {
	if maxQuestionLen <= 0 {
		maxQuestionLen = defaultMaxQuestionLen
	}
	return &chatService{
		gate:            g,
		library:         lib,
		cache:           responseCache,
		clients:         clients,
		defaultProvider: defaultProvider,
		maxQuestionLen:  maxQuestionLen,
		sessions:        sessions,
		now:             time.Now,
	}
}

// HasProvider reports whether a provider selector names a configured client.
func (s *chatService) HasProvider(name string) bool {
	_, ok := s.clients[name]
	return ok
}

// Answer runs the question through the pipeline and always returns a
// deliverable reply; upstream failures surface as a polite fallback, never
// as a handler error.
func (s *chatService) Answer(ctx context.Context, question, provider string) model.ChatAnswer {
	start := s.now()

	deliver := func(text, source string, record bool) model.ChatAnswer {
		if record && s.sessions != nil {
			s.sessions.Record(question, text)
		}
		return model.ChatAnswer{
			Answer:    text,
			Source:    source,
			ElapsedMS: s.now().Sub(start).Milliseconds(),
		}
	}

	question = strings.TrimSpace(question)
	if runes := []rune(question); len(runes) > s.maxQuestionLen {
		question = string(runes[:s.maxQuestionLen])
	}
	if question == "" {
		return deliver(msgEmptyQuestion, model.SourceRefused, false)
	}

	// Sensitive lookups belong in secure channels, not a chatbot.
	lower := strings.ToLower(question)
	if strings.Contains(lower, "pin") || strings.Contains(lower, "account number") {
		return deliver(msgSecureInfo, model.SourceRefused, true)
	}

	if !s.gate.InDomain(question) {
		return deliver(msgOutOfDomain, model.SourceRefused, true)
	}

	if answer, ok := s.library.Lookup(question); ok {
		// Library answers are static and pre-vetted; no sanitization.
		return deliver(answer, model.SourceLibrary, true)
	}

	// The cache sits on the model path only: gating happens before any
	// cache consult, and refusals/library hits are cheap to recompute.
	if answer, ok := s.cache.Get(question); ok {
		return deliver(answer, model.SourceCache, true)
	}

	client, ok := s.clients[provider]
	if !ok {
		client = s.clients[s.defaultProvider]
	}
	if client == nil {
		log.Warnw("model query skipped", "code", codeConfigMissing)
		return deliver(msgNotConfigured, model.SourceModelError, true)
	}

	raw, err := client.Ask(ctx, question)
	if err != nil {
		code, msg := classifyModelError(err)
		log.Warnw("model query failed", "code", code, "error", err.Error())
		return deliver(msg, model.SourceModelError, true)
	}

	answer := sanitize.Clean(raw)
	s.cache.Put(question, answer)
	return deliver(answer, model.SourceModel, true)
}

// Internal error codes logged at the orchestrator boundary.
const (
	codeConfigMissing       = "config_missing"
	codeUpstreamUnavailable = "upstream_unavailable"
	codeUpstreamStatus      = "upstream_status"
	codeUpstreamMalformed   = "upstream_malformed"
	codeUpstreamUnknown     = "upstream_unknown"
)

// classifyModelError maps a client error to its log code and the fixed
// user-facing message for that class.
func classifyModelError(err error) (code, userMsg string) {
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		return codeConfigMissing, msgNotConfigured
	case errors.Is(err, llm.ErrUnavailable):
		return codeUpstreamUnavailable, msgUpstreamError
	case errors.Is(err, llm.ErrBadStatus):
		return codeUpstreamStatus, msgUpstreamError
	case errors.Is(err, llm.ErrMalformed):
		return codeUpstreamMalformed, msgUpstreamError
	default:
		return codeUpstreamUnknown, msgUpstreamError
	}
}
