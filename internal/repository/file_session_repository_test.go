package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bankbot-go/internal/model"
)

func TestFileRepositoryLoadMissingFile(t *testing.T) {
	repo := NewFileSessionRepository(filepath.Join(t.TempDir(), "chat_history.json"))

	sessions, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("expected an empty list for a missing file, got %d", len(sessions))
	}
}

func TestFileRepositoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat_history.json")
	repo := NewFileSessionRepository(path)
	ctx := context.Background()

	stamp := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	in := []model.ChatSession{
		{
			ID:   "abc",
			Time: stamp,
			Messages: []model.ChatMessage{
				{Role: "user", Text: "what is ifsc", Timestamp: stamp},
				{Role: "bot", Text: "IFSC identifies a branch.", Timestamp: stamp},
			},
		},
	}

	if err := repo.SaveAll(ctx, in); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	out, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 session, got %d", len(out))
	}
	if out[0].ID != "abc" || !out[0].Time.Equal(stamp) {
		t.Errorf("session metadata did not round-trip: %+v", out[0])
	}
	if len(out[0].Messages) != 2 || out[0].Messages[1].Text != "IFSC identifies a branch." {
		t.Errorf("messages did not round-trip: %+v", out[0].Messages)
	}
}

func TestFileRepositoryKeepsSessionsEnvelope(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat_history.json")
	repo := NewFileSessionRepository(path)

	if err := repo.SaveAll(context.Background(), []model.ChatSession{}); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if string(data) == "" || string(data)[0] != '{' {
		t.Fatalf("expected an object envelope, got %s", data)
	}
	if !strings.Contains(string(data), `"sessions"`) {
		t.Errorf("expected the historical \"sessions\" envelope key, got %s", data)
	}
}

func TestFileRepositoryReadsLegacyFormat(t *testing.T) {
	// Histories written by earlier releases store minute-precision
	// timestamps and (role, text) pair arrays. They must keep loading.
	legacy := `{"sessions":[{"time":"2025-06-01 12:00","messages":[["You","what is emi"],["Bot","a monthly payment"]]}]}`
	path := filepath.Join(t.TempDir(), "chat_history.json")
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	repo := NewFileSessionRepository(path)
	sessions, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll failed on a legacy file: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}

	want := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if !sessions[0].Time.Equal(want) {
		t.Errorf("expected legacy timestamp parsed as %v, got %v", want, sessions[0].Time)
	}
	msgs := sessions[0].Messages
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != "user" || msgs[0].Text != "what is emi" {
		t.Errorf("unexpected first message %+v", msgs[0])
	}
	if msgs[1].Role != "bot" || msgs[1].Text != "a monthly payment" {
		t.Errorf("unexpected second message %+v", msgs[1])
	}
}

func TestFileRepositoryToleratesUnknownTimeLayout(t *testing.T) {
	stored := `{"sessions":[{"id":"s1","time":"June 1st","messages":[["You","hi"],["Bot","hello"]]}]}`
	path := filepath.Join(t.TempDir(), "chat_history.json")
	if err := os.WriteFile(path, []byte(stored), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	repo := NewFileSessionRepository(path)
	sessions, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if !sessions[0].Time.IsZero() {
		t.Errorf("expected an unparseable timestamp to degrade to the zero time, got %v", sessions[0].Time)
	}
	if len(sessions[0].Messages) != 2 {
		t.Errorf("expected the messages to survive, got %d", len(sessions[0].Messages))
	}
}

func TestFileRepositoryMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat_history.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	repo := NewFileSessionRepository(path)
	if _, err := repo.LoadAll(context.Background()); err == nil {
		t.Error("expected an error for a malformed file")
	}
}
