package chat

import "github.com/bazabarbershop/baza/backend/internal/model/chat"

// Observer is notified as a turn progresses. Calls arrive in order on the
// goroutine running the turn: user message, busy=true, assistant message,
// busy=false.
type Observer interface {
	MessageAppended(msg chat.Message)
	BusyChanged(busy bool)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnMessage func(chat.Message)
	OnBusy    func(bool)
}

func (o ObserverFuncs) MessageAppended(msg chat.Message) {
	if o.OnMessage != nil {
		o.OnMessage(msg)
	}
}

func (o ObserverFuncs) BusyChanged(busy bool) {
	if o.OnBusy != nil {
		o.OnBusy(busy)
	}
}
