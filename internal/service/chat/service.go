package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bazabarbershop/baza/backend/internal/model/chat"
)

var ErrSessionNotFound = errors.New("session not found")

// Config controls session bookkeeping.
type Config struct {
	Greeting string
	// TTL is the idle time after which a session is torn down. Zero disables expiry.
	TTL time.Duration
}

// Service keeps the live widget conversations in memory.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*Conversation
	greeting string
	ttl      time.Duration
	now      func() time.Time
}

// NewService bootstraps the in-memory session registry.
func NewService(cfg Config) *Service {
	return &Service{
		sessions: make(map[string]*Conversation),
		greeting: cfg.Greeting,
		ttl:      cfg.TTL,
		now:      time.Now,
	}
}

// CreateSession provisions an anonymous conversation seeded with the greeting.
func (s *Service) CreateSession(_ context.Context) *Conversation {
	conv := newConversation(uuid.NewString(), s.greeting, s.now)

	s.mu.Lock()
	s.sessions[conv.ID()] = conv
	s.mu.Unlock()

	return conv
}

// GetSession retrieves a conversation by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (*Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return conv, nil
}

// LoadTranscript returns stored messages for the provided session.
func (s *Service) LoadTranscript(ctx context.Context, sessionID string) ([]chat.Message, error) {
	conv, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return conv.Messages(), nil
}

// EndSession tears a conversation down. An in-flight turn sees its context cancelled.
func (s *Service) EndSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	conv, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	conv.close()
	return nil
}

// Len reports the number of live sessions.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep tears down sessions idle for longer than the TTL and returns how many
// were removed. Busy sessions are left alone.
func (s *Service) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	now := s.now()
	s.mu.Lock()
	expired := make([]*Conversation, 0)
	for id, conv := range s.sessions {
		idle, busy := conv.idleSince(now)
		if busy || idle < s.ttl {
			continue
		}
		delete(s.sessions, id)
		expired = append(expired, conv)
	}
	s.mu.Unlock()

	for _, conv := range expired {
		conv.close()
	}
	return len(expired)
}

// RunJanitor sweeps on every interval tick until ctx is done.
func (s *Service) RunJanitor(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Close tears down every session.
func (s *Service) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*Conversation)
	s.mu.Unlock()

	for _, conv := range sessions {
		conv.close()
	}
}
