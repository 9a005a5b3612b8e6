package chat

// OutcomeKind tags how a turn was resolved.
type OutcomeKind string

const (
	OutcomeSkipped        OutcomeKind = "skipped"
	OutcomeLocalMatch     OutcomeKind = "local_match"
	OutcomeRemoteReply    OutcomeKind = "remote_reply"
	OutcomeRemoteFallback OutcomeKind = "remote_fallback"
)

// FallbackReason says why a remote turn used a canned reply.
type FallbackReason string

const (
	ReasonNone       FallbackReason = ""
	ReasonEmptyReply FallbackReason = "empty_reply"
	ReasonTransport  FallbackReason = "transport"
)

// Outcome is the result of one turn. Err is set only for transport fallbacks
// and is never shown to the user.
type Outcome struct {
	Kind     OutcomeKind    `json:"kind"`
	Reply    string         `json:"reply,omitempty"`
	Question string         `json:"question,omitempty"`
	Reason   FallbackReason `json:"reason,omitempty"`
	Err      error          `json:"-"`
}

// Skipped reports whether the utterance was blank and nothing happened.
func (o Outcome) Skipped() bool {
	return o.Kind == OutcomeSkipped
}
