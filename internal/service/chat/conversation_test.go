package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestSweepRemovesIdleSessions(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
	svc := NewService(Config{Greeting: "hi", TTL: 30 * time.Minute})
	svc.now = clock.now

	stale := svc.CreateSession(context.Background())
	clock.advance(20 * time.Minute)
	fresh := svc.CreateSession(context.Background())
	clock.advance(15 * time.Minute)

	assert.Equal(t, 1, svc.Sweep())
	assert.Error(t, stale.Context().Err())
	assert.NoError(t, fresh.Context().Err())

	_, err := svc.GetSession(context.Background(), stale.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSweepKeepsBusySessions(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
	svc := NewService(Config{Greeting: "hi", TTL: time.Minute})
	svc.now = clock.now

	conv := svc.CreateSession(context.Background())
	conv.beginTurn("вопрос")
	clock.advance(time.Hour)

	assert.Equal(t, 0, svc.Sweep())
	assert.Equal(t, 1, svc.Len())
}

func TestSweepDisabledWithoutTTL(t *testing.T) {
	svc := NewService(Config{Greeting: "hi"})
	svc.CreateSession(context.Background())
	assert.Equal(t, 0, svc.Sweep())
}

func TestRunJanitorStopsWithContext(t *testing.T) {
	svc := NewService(Config{Greeting: "hi", TTL: time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		svc.RunJanitor(ctx, time.Millisecond)
		close(done)
	}()

	svc.CreateSession(context.Background())
	require.Eventually(t, func() bool { return svc.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestSnapshotIsConsistent(t *testing.T) {
	svc := NewService(Config{Greeting: "hi"})
	conv := svc.CreateSession(context.Background())

	conv.beginTurn("парковка")
	snap := conv.Snapshot()
	assert.True(t, snap.Busy)
	require.Len(t, snap.Messages, 2)

	conv.finishTurn("ответ")
	snap = conv.Snapshot()
	assert.False(t, snap.Busy)
	require.Len(t, snap.Messages, 3)
	assert.Equal(t, conv.ID(), snap.Session.ID)
}
