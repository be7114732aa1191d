package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"bankbot-go/internal/model"
	"bankbot-go/internal/repository"

	"github.com/google/uuid"
)

// SessionService keeps the current in-memory transcript and manages the
// persisted list of past sessions.
type SessionService interface {
	// Record appends a question/answer pair to the current transcript.
	Record(question, answer string)
	// Current returns a copy of the current transcript.
	Current() []model.ChatMessage
	// Save appends the current transcript to the persisted session list.
	// An empty transcript is not saved.
	Save(ctx context.Context) error
	// NewChat saves the current transcript, then starts a fresh one.
	NewChat(ctx context.Context) error
	// ClearAll deletes every stored session and resets the transcript.
	ClearAll(ctx context.Context) error
	// List returns stored sessions, optionally filtered to those containing
	// the query substring in any message.
	List(ctx context.Context, query string) ([]model.ChatSession, error)
}

type sessionService struct {
	repo repository.SessionRepository
	now  func() time.Time

	mu      sync.Mutex
	current []model.ChatMessage
}

// NewSessionService creates a SessionService over the given store.
func NewSessionService(repo repository.SessionRepository) SessionService {
	return &sessionService{repo: repo, now: time.Now}
}

func (s *sessionService) Record(question, answer string) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = append(s.current,
		model.ChatMessage{Role: "user", Text: question, Timestamp: now},
		model.ChatMessage{Role: "bot", Text: answer, Timestamp: now},
	)
}

func (s *sessionService) Current() []model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ChatMessage, len(s.current))
	copy(out, s.current)
	return out
}

func (s *sessionService) Save(ctx context.Context) error {
	s.mu.Lock()
	transcript := make([]model.ChatMessage, len(s.current))
	copy(transcript, s.current)
	s.mu.Unlock()

	if len(transcript) == 0 {
		return nil
	}

	sessions, err := s.repo.LoadAll(ctx)
	if err != nil {
		return err
	}
	sessions = append(sessions, model.ChatSession{
		ID:       uuid.NewString(),
		Time:     s.now(),
		Messages: transcript,
	})
	return s.repo.SaveAll(ctx, sessions)
}

func (s *sessionService) NewChat(ctx context.Context) error {
	if err := s.Save(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	return nil
}

func (s *sessionService) ClearAll(ctx context.Context) error {
	if err := s.repo.SaveAll(ctx, []model.ChatSession{}); err != nil {
		return err
	}
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	return nil
}

func (s *sessionService) List(ctx context.Context, query string) ([]model.ChatSession, error) {
	sessions, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return sessions, nil
	}
	query = strings.ToLower(strings.TrimSpace(query))
	var filtered []model.ChatSession
	for _, sess := range sessions {
		for _, msg := range sess.Messages {
			if strings.Contains(strings.ToLower(msg.Text), query) {
				filtered = append(filtered, sess)
				break
			}
		}
	}
	return filtered, nil
}
