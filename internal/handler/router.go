package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/bazabarbershop/baza/backend/internal/handler/booking"
	"github.com/bazabarbershop/baza/backend/internal/handler/catalog"
	"github.com/bazabarbershop/baza/backend/internal/handler/chat"
	"github.com/bazabarbershop/baza/backend/internal/handler/reply"
	"github.com/bazabarbershop/baza/backend/internal/handler/stream"
	"github.com/bazabarbershop/baza/backend/internal/handler/ws"
	middlewarePkg "github.com/bazabarbershop/baza/backend/internal/middleware"
	catalogModel "github.com/bazabarbershop/baza/backend/internal/model/catalog"
	"github.com/bazabarbershop/baza/backend/internal/model/knowledge"
	chatService "github.com/bazabarbershop/baza/backend/internal/service/chat"
	"github.com/bazabarbershop/baza/backend/pkg/utils"
)

// Deps are the services the HTTP layer is built on. Replier and Booker may be
// nil; their endpoints then answer 503.
type Deps struct {
	Services  catalogModel.Store
	Knowledge *knowledge.Table
	Site      catalogModel.Site
	Chat      *chatService.Service
	Resolver  *chatService.Resolver
	Replier   reply.Generator
	Booker    booking.Submitter
	Logger    *zap.Logger
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"status":   "ok",
			"sessions": deps.Chat.Len(),
		})
	})

	// Create handlers
	catalogHandler := catalog.New(deps.Services, deps.Knowledge, deps.Site)
	chatHandler := chat.New(deps.Chat, deps.Resolver)
	streamHandler := stream.New(deps.Chat, deps.Resolver, logger)
	wsHandler := ws.New(deps.Chat, deps.Resolver, logger)
	replyHandler := reply.New(deps.Replier, deps.Site.Context, logger)
	bookingHandler := booking.New(deps.Booker, deps.Services, logger)

	r.Route("/api", func(api chi.Router) {
		catalogHandler.RegisterRoutes(api)
		chatHandler.RegisterRoutes(api)
		streamHandler.RegisterRoutes(api)
		wsHandler.RegisterRoutes(api)
		replyHandler.RegisterRoutes(api)
		bookingHandler.RegisterRoutes(api)
	})

	return r
}
