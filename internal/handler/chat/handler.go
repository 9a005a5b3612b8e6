package chat

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	chatService "github.com/bazabarbershop/baza/backend/internal/service/chat"
	"github.com/bazabarbershop/baza/backend/pkg/utils"
)

// Handler 聊天会话的HTTP处理器
type Handler struct {
	chatSvc  *chatService.Service
	resolver *chatService.Resolver
}

// New 创建聊天处理器
func New(chatSvc *chatService.Service, resolver *chatService.Resolver) *Handler {
	return &Handler{
		chatSvc:  chatSvc,
		resolver: resolver,
	}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/sessions", h.handleCreateSession)
	r.Get("/sessions/{sessionID}", h.handleGetSession)
	r.Get("/sessions/{sessionID}/messages", h.handleListMessages)
	r.Post("/sessions/{sessionID}/messages", h.handleSendMessage)
	r.Delete("/sessions/{sessionID}", h.handleEndSession)
}

// TurnResponse is the result of one synchronous turn.
type TurnResponse struct {
	Outcome chatService.Outcome  `json:"outcome"`
	State   chatService.Snapshot `json:"state"`
}

// handleCreateSession 创建会话
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	conv := h.chatSvc.CreateSession(r.Context())
	utils.RespondJSON(w, http.StatusCreated, conv.Snapshot())
}

// handleGetSession 返回会话记录与忙碌状态
func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	conv, ok := h.lookup(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, conv.Snapshot())
}

// handleListMessages 返回会话消息记录
func (h *Handler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.chatSvc.LoadTranscript(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondLookupError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, messages)
}

// handleSendMessage 处理一轮用户消息
func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	conv, ok := h.lookup(w, r)
	if !ok {
		return
	}

	outcome := h.resolver.HandleUserMessage(conv, payload.Text, nil)
	utils.RespondJSON(w, http.StatusOK, TurnResponse{Outcome: outcome, State: conv.Snapshot()})
}

// handleEndSession 结束会话
func (h *Handler) handleEndSession(w http.ResponseWriter, r *http.Request) {
	if err := h.chatSvc.EndSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		respondLookupError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*chatService.Conversation, bool) {
	conv, err := h.chatSvc.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondLookupError(w, err)
		return nil, false
	}
	return conv, true
}

func respondLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, chatService.ErrSessionNotFound) {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	utils.RespondError(w, http.StatusInternalServerError, err.Error())
}
