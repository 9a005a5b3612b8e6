package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bazabarbershop/baza/backend/internal/config"
	"github.com/bazabarbershop/baza/backend/pkg/logger"
)

var envFile string

// rootCmd runs the server when no subcommand is given
var rootCmd = &cobra.Command{
	Use:   "baza",
	Short: "BAZA Barbershop site backend",
	Long: `Backend for the BAZA Barbershop landing page.

Available subcommands:
  serve - Run the HTTP API (default)
  ask   - Resolve one chat question from the command line
  faq   - Print the knowledge table`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file loaded before the environment")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(faqCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("command failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

// loadConfig reads the dotenv file, the environment and sets up the global logger.
func loadConfig() (*config.Config, *zap.Logger, error) {
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", envFile, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := logger.Init(cfg.Log.Level); err != nil {
		return nil, nil, fmt.Errorf("failed to init logger: %w", err)
	}
	return cfg, logger.Get(), nil
}
