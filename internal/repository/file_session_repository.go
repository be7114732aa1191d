package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"bankbot-go/internal/model"
)

type fileSessionRepository struct {
	path string
}

// NewFileSessionRepository creates a SessionRepository backed by a JSON file
// with the historical {"sessions": [...]} shape. Useful for single-node
// deployments without Redis.
func NewFileSessionRepository(path string) SessionRepository {
	return &fileSessionRepository{path: path}
}

func (r *fileSessionRepository) LoadAll(ctx context.Context) ([]model.ChatSession, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return []model.ChatSession{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	var stored sessionList
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session file: %w", err)
	}
	return stored.Sessions, nil
}

func (r *fileSessionRepository) SaveAll(ctx context.Context, sessions []model.ChatSession) error {
	data, err := json.MarshalIndent(sessionList{Sessions: sessions}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session file: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}
