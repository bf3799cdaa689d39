package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/strideapp/stride/backend/internal/config"
)

const systemPrompt = "You are the supportive companion inside a stroke rehabilitation app. " +
	"The user just described how they are feeling today. Reply with a short, warm, " +
	"empathetic acknowledgment of two to three sentences. Validate the feeling, do not " +
	"diagnose, do not give medical advice, and do not ask a question — the app asks the " +
	"next scripted question itself."

// Service generates the single empathetic acknowledgment used by the
// triage dialogue's open-ended turn.
type Service struct {
	cfg   config.AIConfig
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewService compiles the acknowledgment chain against the configured
// Ark chat model.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.UserMessage("{feeling}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile acknowledgment chain: %w", err)
	}

	return &Service{cfg: cfg, chain: runnable}, nil
}

// GenerateAcknowledgment produces the empathetic reply for the user's
// free-text feeling. Any failure mode (transport, status, empty payload)
// surfaces as an error; the caller substitutes the fixed fallback text.
func (s *Service) GenerateAcknowledgment(ctx context.Context, feeling string) (string, error) {
	input := map[string]any{"feeling": feeling}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run acknowledgment chain: %w", err)
	}
	if response == nil || strings.TrimSpace(response.Content) == "" {
		return "", fmt.Errorf("acknowledgment response missing text payload")
	}

	log.Printf("[ai] generated acknowledgment, length=%d", len(response.Content))
	return strings.TrimSpace(response.Content), nil
}
