package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bazabarbershop/baza/backend/internal/config"
	"github.com/bazabarbershop/baza/backend/internal/model/catalog"
	"github.com/bazabarbershop/baza/backend/internal/model/knowledge"
	"github.com/bazabarbershop/baza/backend/internal/service/ai"
	"github.com/bazabarbershop/baza/backend/internal/service/booking"
	"github.com/bazabarbershop/baza/backend/internal/service/chat"
	"github.com/bazabarbershop/baza/backend/internal/service/responder"
)

// components are the services shared by every subcommand.
type components struct {
	table    *knowledge.Table
	site     catalog.Site
	resolver *chat.Resolver
}

func buildComponents(cfg *config.Config, log *zap.Logger) (*components, error) {
	table, err := knowledge.Load(cfg.Chat.KnowledgeFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge table: %w", err)
	}

	client, err := responder.NewClient(cfg.Responder.URL, cfg.Responder.Timeout)
	if err != nil {
		return nil, err
	}

	site := catalog.DefaultSite()
	resolver := chat.NewResolver(table, client, chat.ResolverConfig{
		SiteContext:      site.Context,
		PacingDelay:      cfg.Chat.PacingDelay,
		ResponderTimeout: cfg.Responder.Timeout,
	}, log)

	log.Info("knowledge table loaded",
		zap.Int("entries", table.Len()),
		zap.String("responder", cfg.Responder.URL),
	)

	return &components{table: table, site: site, resolver: resolver}, nil
}

// buildReplier returns nil when no model credentials are configured.
func buildReplier(ctx context.Context, cfg config.AIConfig, log *zap.Logger) *ai.Service {
	if !cfg.Enabled() {
		log.Info("Ark 凭证未配置，跳过 AI 功能初始化")
		return nil
	}

	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		log.Warn("failed to create chat model, continuing without AI functionality", zap.Error(err))
		return nil
	}

	svc, err := ai.NewService(ctx, chatModel, log)
	if err != nil {
		log.Warn("failed to initialize AI service", zap.Error(err))
		return nil
	}

	log.Info("AI service initialized successfully", zap.String("model", cfg.Model))
	return svc
}

// buildBooker returns nil when the form relay has no access key.
func buildBooker(cfg config.BookingConfig, log *zap.Logger) *booking.Client {
	if !cfg.Enabled() {
		log.Info("booking relay disabled: BOOKING_ACCESS_KEY not set")
		return nil
	}

	client, err := booking.NewClient(cfg.Endpoint, cfg.AccessKey, cfg.Subject, cfg.Timeout)
	if err != nil {
		log.Warn("failed to initialize booking relay", zap.Error(err))
		return nil
	}
	return client
}
