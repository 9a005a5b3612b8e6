package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"
)

var ErrEmptyMessage = errors.New("message is required")

// Service answers free-form visitor questions with a chat model, grounded on
// the site context the widget sends along.
type Service struct {
	chain  compose.Runnable[map[string]any, *schema.Message]
	logger *zap.Logger
}

// NewService compiles the prompt chain around chatModel.
func NewService(ctx context.Context, chatModel model.BaseChatModel, logger *zap.Logger) (*Service, error) {
	if chatModel == nil {
		return nil, errors.New("chat model is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile reply chain: %w", err)
	}

	return &Service{chain: runnable, logger: logger.Named("ai")}, nil
}

// GenerateReply answers message using siteContext as the only source of facts.
func (s *Service) GenerateReply(ctx context.Context, message, siteContext string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}

	response, err := s.chain.Invoke(ctx, buildChainInput(message, siteContext))
	if err != nil {
		return "", fmt.Errorf("failed to run reply chain: %w", err)
	}
	if response == nil {
		return "", nil
	}

	reply := strings.TrimSpace(response.Content)
	s.logger.Debug("generated reply", zap.Int("length", len(reply)))
	return reply, nil
}

func buildChainInput(message, siteContext string) map[string]any {
	siteContext = strings.TrimSpace(siteContext)
	if siteContext == "" {
		siteContext = "Нет дополнительной информации."
	}
	return map[string]any{
		"context": siteContext,
		"query":   message,
	}
}

const systemPrompt = "Ты вежливый ассистент барбершопа на сайте. Отвечай кратко, по-русски, только на основе фактов ниже. " +
	"Если ответа в фактах нет, предложи позвонить или записаться через форму на сайте.\n\nФакты:\n{context}"
