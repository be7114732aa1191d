// Package model holds the application's data types.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Answer sources reported to the caller.
const (
	SourceRefused    = "refused"
	SourceLibrary    = "library"
	SourceCache      = "cache"
	SourceModel      = "model"
	SourceModelError = "model_error"
)

// ChatMessage is a single transcript message.
type ChatMessage struct {
	Role      string    `json:"role"` // "user" or "bot"
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// UnmarshalJSON accepts the current {role, text, timestamp} object as well
// as the (role, text) pair arrays found in histories written before this
// service existed.
func (m *ChatMessage) UnmarshalJSON(data []byte) error {
	type plain ChatMessage
	var p plain
	if err := json.Unmarshal(data, &p); err == nil {
		*m = ChatMessage(p)
		return nil
	}

	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil || len(pair) < 2 {
		return fmt.Errorf("unrecognized chat message shape: %s", data)
	}
	role := strings.ToLower(pair[0])
	if role == "you" {
		role = "user"
	}
	*m = ChatMessage{Role: role, Text: pair[1]}
	return nil
}

// ChatSession is one saved transcript in the persisted session list.
type ChatSession struct {
	ID       string        `json:"id"`
	Time     time.Time     `json:"time"`
	Messages []ChatMessage `json:"messages"`
}

// legacyTimeLayout is the minute-precision layout older history files carry.
const legacyTimeLayout = "2006-01-02 15:04"

// UnmarshalJSON tolerates the legacy time layout so old history files keep
// loading. A timestamp that matches neither layout degrades to the zero time
// instead of failing the whole load.
func (s *ChatSession) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       string          `json:"id"`
		Time     json.RawMessage `json:"time"`
		Messages []ChatMessage   `json:"messages"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.ID = raw.ID
	s.Messages = raw.Messages
	s.Time = time.Time{}

	if len(raw.Time) == 0 {
		return nil
	}
	var ts string
	if err := json.Unmarshal(raw.Time, &ts); err != nil || ts == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
		s.Time = t
		return nil
	}
	if t, err := time.Parse(legacyTimeLayout, ts); err == nil {
		s.Time = t
	}
	return nil
}

// ChatAnswer is the result of answering one question.
type ChatAnswer struct {
	Answer    string `json:"answer"`
	Source    string `json:"source"`
	ElapsedMS int64  `json:"elapsed_ms"`
}

// AskRequest is the inbound chat request body.
type AskRequest struct {
	Question string `json:"question"`
	// Model optionally selects a configured provider ("gemini", "ollama").
	Model string `json:"model"`
}
