package stream

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bazabarbershop/baza/backend/internal/model/chat"
	chatService "github.com/bazabarbershop/baza/backend/internal/service/chat"
	"github.com/bazabarbershop/baza/backend/pkg/utils"
)

// SSE event names, in the order a turn emits them.
const (
	EventMessage = "message"
	EventBusy    = "busy"
	EventOutcome = "outcome"
	EventEnd     = "end"
	EventError   = "error"
)

// Handler manages turn progress via Server-Sent Events
type Handler struct {
	chatSvc  *chatService.Service
	resolver *chatService.Resolver
	logger   *zap.Logger
}

// New creates a new stream handler
func New(chatSvc *chatService.Service, resolver *chatService.Resolver, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		chatSvc:  chatSvc,
		resolver: resolver,
		logger:   logger.Named("stream"),
	}
}

// RegisterRoutes 注册流式路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stream/{sessionID}", h.handleStream)
}

// BusyEvent is the payload of a busy event.
type BusyEvent struct {
	SessionID string `json:"sessionId"`
	Busy      bool   `json:"busy"`
}

// EndEvent closes the stream.
type EndEvent struct {
	SessionID string `json:"sessionId"`
	Finished  bool   `json:"finished"`
}

// handleStream 运行一轮对话并按顺序推送进度事件
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	userMessage := r.URL.Query().Get("message")
	if strings.TrimSpace(userMessage) == "" {
		utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
		return
	}

	conv, err := h.chatSvc.GetSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, chatService.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	// 观察者在处理本轮的同一个 goroutine 上回调，可以直接写响应。
	obs := chatService.ObserverFuncs{
		OnMessage: func(msg chat.Message) {
			utils.SendSSEEvent(w, flusher, EventMessage, msg)
		},
		OnBusy: func(busy bool) {
			utils.SendSSEEvent(w, flusher, EventBusy, BusyEvent{SessionID: sessionID, Busy: busy})
		},
	}

	outcome := h.resolver.HandleUserMessage(conv, userMessage, obs)
	utils.SendSSEEvent(w, flusher, EventOutcome, outcome)
	utils.SendSSEEvent(w, flusher, EventEnd, EndEvent{SessionID: sessionID, Finished: true})

	h.logger.Debug("stream turn completed",
		zap.String("session_id", sessionID),
		zap.String("outcome", string(outcome.Kind)),
	)
}
