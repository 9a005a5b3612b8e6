package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bazabarbershop/baza/backend/internal/handler"
	"github.com/bazabarbershop/baza/backend/internal/model/catalog"
	"github.com/bazabarbershop/baza/backend/internal/service/chat"
)

const shutdownTimeout = 10 * time.Second

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	comps, err := buildComponents(cfg, log)
	if err != nil {
		log.Error("startup failed", zap.Error(err))
		return err
	}

	chatSvc := chat.NewService(chat.Config{
		Greeting: catalog.Greeting,
		TTL:      cfg.Chat.SessionTTL,
	})
	defer chatSvc.Close()

	deps := handler.Deps{
		Services:  catalog.NewMemoryStore(catalog.Seed()),
		Knowledge: comps.table,
		Site:      comps.site,
		Chat:      chatSvc,
		Resolver:  comps.resolver,
		Logger:    log,
	}
	// Assign only non-nil values so the handlers see a nil interface.
	if replier := buildReplier(ctx, cfg.AI, log); replier != nil {
		deps.Replier = replier
	}
	if booker := buildBooker(cfg.Booking, log); booker != nil {
		deps.Booker = booker
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		chatSvc.RunJanitor(gctx, janitorInterval(cfg.Chat.SessionTTL))
		return nil
	})
	g.Go(func() error {
		log.Info("BAZA backend listening", zap.String("addr", srv.Addr))
		return runServer(gctx, srv)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", zap.Error(err))
		return err
	}
	log.Info("server stopped")
	return nil
}

// janitorInterval sweeps a few times per TTL so sessions do not outlive it by much.
func janitorInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return time.Minute
	}
	interval := ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
