package chat

import (
	"context"
	"sync"
	"time"

	"github.com/bazabarbershop/baza/backend/internal/model/chat"
)

// Conversation owns one widget session: its transcript and busy flag.
// Turns on a conversation are serialized; the transcript and busy flag
// change together under mu so readers never see a half-finished turn.
type Conversation struct {
	info       chat.Session
	transcript *Transcript
	now        func() time.Time

	// ctx lives until the session is torn down and bounds every turn.
	ctx    context.Context
	cancel context.CancelFunc

	turn sync.Mutex

	mu         sync.Mutex
	busy       bool
	lastActive time.Time
}

// Snapshot is a consistent view of a conversation for rendering.
type Snapshot struct {
	Session  chat.Session   `json:"session"`
	Messages []chat.Message `json:"messages"`
	Busy     bool           `json:"busy"`
}

func newConversation(id, greeting string, now func() time.Time) *Conversation {
	ctx, cancel := context.WithCancel(context.Background())
	created := now().UTC()
	return &Conversation{
		info:       chat.Session{ID: id, CreatedAt: created},
		transcript: NewTranscript(greeting, now),
		now:        now,
		ctx:        ctx,
		cancel:     cancel,
		lastActive: created,
	}
}

// ID returns the session identifier.
func (c *Conversation) ID() string {
	return c.info.ID
}

// Session returns the session metadata.
func (c *Conversation) Session() chat.Session {
	return c.info
}

// Messages returns the transcript in order.
func (c *Conversation) Messages() []chat.Message {
	return c.transcript.All()
}

// Busy reports whether a turn is waiting for its assistant reply.
func (c *Conversation) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Snapshot returns the transcript and busy flag as of one instant.
func (c *Conversation) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{Session: c.info, Messages: c.transcript.All(), Busy: c.busy}
}

// Context is cancelled when the conversation is torn down.
func (c *Conversation) Context() context.Context {
	return c.ctx
}

// beginTurn appends the user message and raises the busy flag.
func (c *Conversation) beginTurn(text string) chat.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg := chat.Message{Role: chat.RoleUser, Text: text, CreatedAt: c.now().UTC()}
	c.transcript.Append(msg)
	c.busy = true
	c.lastActive = msg.CreatedAt
	return msg
}

// finishTurn appends the assistant reply and clears the busy flag.
func (c *Conversation) finishTurn(text string) chat.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg := chat.Message{Role: chat.RoleAssistant, Text: text, CreatedAt: c.now().UTC()}
	c.transcript.Append(msg)
	c.busy = false
	c.lastActive = msg.CreatedAt
	return msg
}

// clearBusy drops the busy flag without appending; it returns the previous value.
func (c *Conversation) clearBusy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	was := c.busy
	c.busy = false
	return was
}

func (c *Conversation) idleSince(now time.Time) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return now.Sub(c.lastActive), c.busy
}

func (c *Conversation) close() {
	c.cancel()
}
