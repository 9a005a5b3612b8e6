package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bazabarbershop/baza/backend/internal/model/catalog"
	"github.com/bazabarbershop/baza/backend/internal/model/knowledge"
)

var ErrResponderUnavailable = errors.New("text responder not configured")

// TextResponder produces a free-form reply when the knowledge table has no
// answer. An empty reply with a nil error means the responder had nothing to say.
type TextResponder interface {
	Reply(ctx context.Context, message, siteContext string) (string, error)
}

// ResolverConfig tunes reply resolution.
type ResolverConfig struct {
	SiteContext string
	// PacingDelay holds back local answers so they do not look instant.
	PacingDelay time.Duration
	// ResponderTimeout bounds the remote call; expiry counts as a transport failure.
	ResponderTimeout time.Duration

	FallbackEmptyReply  string
	FallbackUnavailable string
}

const defaultResponderTimeout = 12 * time.Second

// Resolver turns one user utterance into exactly one assistant reply.
type Resolver struct {
	table     *knowledge.Table
	responder TextResponder
	cfg       ResolverConfig
	logger    *zap.Logger
}

// NewResolver wires the knowledge table and the remote responder. responder may be nil,
// in which case every unmatched utterance gets the unavailable fallback.
func NewResolver(table *knowledge.Table, responder TextResponder, cfg ResolverConfig, logger *zap.Logger) *Resolver {
	if cfg.ResponderTimeout <= 0 {
		cfg.ResponderTimeout = defaultResponderTimeout
	}
	if cfg.PacingDelay < 0 {
		cfg.PacingDelay = 0
	}
	if cfg.FallbackEmptyReply == "" {
		cfg.FallbackEmptyReply = catalog.FallbackEmptyReply
	}
	if cfg.FallbackUnavailable == "" {
		cfg.FallbackUnavailable = catalog.FallbackUnavailable
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Resolver{
		table:     table,
		responder: responder,
		cfg:       cfg,
		logger:    logger.Named("resolver"),
	}
}

// HandleUserMessage runs one turn on conv. Blank utterances are ignored.
// Otherwise the trimmed utterance is appended, the reply is resolved locally
// or remotely, and exactly one assistant message is appended. The turn is
// bounded by the conversation's lifetime, not by the caller's.
func (r *Resolver) HandleUserMessage(conv *Conversation, utterance string, obs Observer) Outcome {
	text := strings.TrimSpace(utterance)
	if text == "" {
		return Outcome{Kind: OutcomeSkipped}
	}
	if obs == nil {
		obs = ObserverFuncs{}
	}

	conv.turn.Lock()
	defer conv.turn.Unlock()

	userMsg := conv.beginTurn(text)
	obs.MessageAppended(userMsg)
	obs.BusyChanged(true)

	defer func() {
		if conv.clearBusy() {
			obs.BusyChanged(false)
		}
	}()

	outcome := r.resolve(conv.Context(), text)

	reply := conv.finishTurn(outcome.Reply)
	obs.MessageAppended(reply)
	obs.BusyChanged(false)

	r.logger.Info("turn resolved",
		zap.String("session", conv.ID()),
		zap.String("outcome", string(outcome.Kind)),
		zap.String("reason", string(outcome.Reason)),
	)
	return outcome
}

func (r *Resolver) resolve(ctx context.Context, text string) Outcome {
	if entry, ok := r.table.FindMatch(text); ok {
		r.pace(ctx)
		return Outcome{Kind: OutcomeLocalMatch, Reply: entry.Answer, Question: entry.Question}
	}
	return r.delegate(ctx, text)
}

// pace waits out the pacing delay unless the conversation ends first.
func (r *Resolver) pace(ctx context.Context) {
	if r.cfg.PacingDelay <= 0 {
		return
	}

	timer := time.NewTimer(r.cfg.PacingDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (r *Resolver) delegate(ctx context.Context, text string) (outcome Outcome) {
	if r.responder == nil {
		return r.transportFallback(ErrResponderUnavailable)
	}

	defer func() {
		if p := recover(); p != nil {
			outcome = r.transportFallback(fmt.Errorf("responder panic: %v", p))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, r.cfg.ResponderTimeout)
	defer cancel()

	reply, err := r.responder.Reply(ctx, text, r.cfg.SiteContext)
	if err != nil {
		return r.transportFallback(err)
	}
	if reply == "" {
		return Outcome{Kind: OutcomeRemoteFallback, Reply: r.cfg.FallbackEmptyReply, Reason: ReasonEmptyReply}
	}
	return Outcome{Kind: OutcomeRemoteReply, Reply: reply}
}

func (r *Resolver) transportFallback(err error) Outcome {
	r.logger.Warn("text responder failed, using fallback", zap.Error(err))
	return Outcome{
		Kind:   OutcomeRemoteFallback,
		Reply:  r.cfg.FallbackUnavailable,
		Reason: ReasonTransport,
		Err:    err,
	}
}
