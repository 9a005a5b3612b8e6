package reply

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bazabarbershop/baza/backend/internal/service/ai"
	"github.com/bazabarbershop/baza/backend/internal/service/responder"
	"github.com/bazabarbershop/baza/backend/pkg/utils"
)

// Generator produces a reply grounded on siteContext.
type Generator interface {
	GenerateReply(ctx context.Context, message, siteContext string) (string, error)
}

// Handler 文本应答端点
type Handler struct {
	generator   Generator
	siteContext string
	logger      *zap.Logger
}

// New 创建应答处理器；generator 为 nil 时端点返回 503。
func New(generator Generator, siteContext string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		generator:   generator,
		siteContext: siteContext,
		logger:      logger.Named("reply"),
	}
}

// RegisterRoutes 注册应答路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleReply)
}

// handleReply 处理 {message, context}，返回 {success, reply}
func (h *Handler) handleReply(w http.ResponseWriter, r *http.Request) {
	if h.generator == nil {
		utils.RespondJSON(w, http.StatusServiceUnavailable, responder.Response{
			Success: false,
			Error:   "reply generation unavailable",
		})
		return
	}

	var req responder.Request
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondJSON(w, http.StatusBadRequest, responder.Response{Success: false, Error: "invalid request body"})
		return
	}

	siteContext := strings.TrimSpace(req.Context)
	if siteContext == "" {
		siteContext = h.siteContext
	}

	reply, err := h.generator.GenerateReply(r.Context(), req.Message, siteContext)
	if err != nil {
		if errors.Is(err, ai.ErrEmptyMessage) {
			utils.RespondJSON(w, http.StatusBadRequest, responder.Response{Success: false, Error: err.Error()})
			return
		}
		h.logger.Warn("reply generation failed", zap.Error(err))
		utils.RespondJSON(w, http.StatusBadGateway, responder.Response{Success: false, Error: "reply generation failed"})
		return
	}

	utils.RespondJSON(w, http.StatusOK, responder.Response{Success: true, Reply: reply})
}
