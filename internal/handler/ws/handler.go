package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/bazabarbershop/baza/backend/internal/model/chat"
	chatservice "github.com/bazabarbershop/baza/backend/internal/service/chat"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 54 * time.Second
	writeWait    = 10 * time.Second
)

// Outbound frame types.
const (
	FrameSnapshot = "snapshot"
	FrameMessage  = "message"
	FrameBusy     = "busy"
	FrameOutcome  = "outcome"
	FrameError    = "error"
)

// Handler WebSocket聊天处理器
type Handler struct {
	chatSvc  *chatservice.Service
	resolver *chatservice.Resolver
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// New 创建WebSocket处理器
func New(chatSvc *chatservice.Service, resolver *chatservice.Resolver, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		chatSvc:  chatSvc,
		resolver: resolver,
		logger:   logger.Named("websocket"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type inboundMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// connWriter serializes writes; gorilla allows one concurrent writer per connection.
type connWriter struct {
	mu        sync.Mutex
	conn      *websocket.Conn
	sessionID string
	logger    *zap.Logger
}

func (c *connWriter) send(frameType string, data interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	msg := outgoingMessage{
		Type:      frameType,
		SessionID: c.sessionID,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}
	if err := c.conn.WriteJSON(msg); err != nil {
		c.logger.Debug("write frame failed", zap.String("type", frameType), zap.Error(err))
	}
}

func (c *connWriter) sendError(message string) {
	c.send(FrameError, map[string]string{"message": message})
}

func (c *connWriter) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// handleWebSocket 处理WebSocket连接
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	conv, err := h.chatSvc.GetSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, chatservice.ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	h.logger.Info("new connection", zap.String("session_id", sessionID))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	writer := &connWriter{conn: conn, sessionID: sessionID, logger: h.logger}

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go h.pingLoop(ctx, writer)
	go closeOnEnd(ctx, conv, conn)

	writer.send(FrameSnapshot, conv.Snapshot())

	obs := chatservice.ObserverFuncs{
		OnMessage: func(msg chat.Message) {
			writer.send(FrameMessage, msg)
		},
		OnBusy: func(busy bool) {
			writer.send(FrameBusy, map[string]bool{"busy": busy})
		},
	}

	for {
		var raw json.RawMessage
		if err := conn.ReadJSON(&raw); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("read error", zap.String("session_id", sessionID), zap.Error(err))
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		var msg inboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			writer.sendError("invalid message payload")
			continue
		}

		switch msg.Type {
		case "text":
			// 同一连接上的消息按到达顺序逐轮处理。
			outcome := h.resolver.HandleUserMessage(conv, msg.Text, obs)
			writer.send(FrameOutcome, outcome)
		default:
			writer.sendError("unsupported message type: " + msg.Type)
		}
	}
}

// closeOnEnd closes the socket once the session is ended or expired.
func closeOnEnd(ctx context.Context, conv *chatservice.Conversation, conn *websocket.Conn) {
	select {
	case <-ctx.Done():
	case <-conv.Context().Done():
		_ = conn.Close()
	}
}

// pingLoop 定期发送ping消息
func (h *Handler) pingLoop(ctx context.Context, writer *connWriter) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := writer.ping(); err != nil {
				return
			}
		}
	}
}
