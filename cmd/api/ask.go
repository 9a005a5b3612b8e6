package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bazabarbershop/baza/backend/internal/model/catalog"
	"github.com/bazabarbershop/baza/backend/internal/service/chat"
)

var askResponderURL string

// askCmd resolves a single question the way the chat widget would
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Resolve one chat question from the command line",
	Long: `Run a single chat turn and print the assistant's reply.

Local answers come from the knowledge table; anything else is sent to the
configured text responder (RESPONDER_URL, or --responder).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askResponderURL, "responder", "", "Override RESPONDER_URL for this call")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if askResponderURL != "" {
		cfg.Responder.URL = askResponderURL
	}

	comps, err := buildComponents(cfg, log)
	if err != nil {
		return err
	}

	chatSvc := chat.NewService(chat.Config{Greeting: catalog.Greeting})
	defer chatSvc.Close()

	conv := chatSvc.CreateSession(cmd.Context())
	outcome := comps.resolver.HandleUserMessage(conv, strings.Join(args, " "), nil)
	if outcome.Skipped() {
		return fmt.Errorf("question is blank")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, outcome.Reply)
	switch outcome.Kind {
	case chat.OutcomeLocalMatch:
		fmt.Fprintf(out, "(%s: %s)\n", outcome.Kind, outcome.Question)
	case chat.OutcomeRemoteFallback:
		fmt.Fprintf(out, "(%s: %s)\n", outcome.Kind, outcome.Reason)
	default:
		fmt.Fprintf(out, "(%s)\n", outcome.Kind)
	}
	return nil
}
