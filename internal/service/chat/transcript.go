package chat

import (
	"sync"
	"time"

	"github.com/bazabarbershop/baza/backend/internal/model/chat"
)

// Transcript is the append-only message log of one conversation.
type Transcript struct {
	mu       sync.RWMutex
	messages []chat.Message
}

// NewTranscript returns a transcript seeded with one assistant greeting.
func NewTranscript(greeting string, now func() time.Time) *Transcript {
	t := &Transcript{messages: make([]chat.Message, 0, 16)}
	t.Append(chat.Message{Role: chat.RoleAssistant, Text: greeting, CreatedAt: now().UTC()})
	return t
}

// Append adds msg to the end of the log.
func (t *Transcript) Append(msg chat.Message) {
	t.mu.Lock()
	t.messages = append(t.messages, msg)
	t.mu.Unlock()
}

// All returns a copy of the log in order.
func (t *Transcript) All() []chat.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()

	copied := make([]chat.Message, len(t.messages))
	copy(copied, t.messages)
	return copied
}

// Len reports the number of messages.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}
