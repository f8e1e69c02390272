// Package advisor hosts the conversation client that speaks as the travel
// advisor persona.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rahhal-app/rahhal/backend/internal/model/advisor"
	"github.com/rahhal-app/rahhal/backend/pkg/tokencount"
)

// ErrEmptyCompletion reports a completion that arrived without usable text.
var ErrEmptyCompletion = errors.New("chat completion returned no content")

// Service is the single conversation client for the advisor persona. One
// instance serves every session and request.
type Service struct {
	chatModel    model.BaseChatModel
	profile      advisor.Profile
	systemPrompt string
	modelName    string
}

// NewService wires the conversation client to its chat model and persona.
// The persona instructions are rendered once and reused verbatim on every
// request.
func NewService(chatModel model.BaseChatModel, profile advisor.Profile, modelName string) *Service {
	return &Service{
		chatModel:    chatModel,
		profile:      profile,
		systemPrompt: SystemPrompt(profile),
		modelName:    modelName,
	}
}

// Profile returns the persona this client speaks as.
func (s *Service) Profile() advisor.Profile {
	return s.profile
}

// GenerateResponse produces the advisor's reply to prompt. contextSummary,
// when non-empty, is passed to the model as prior conversation context.
// The boolean reports success; on failure the returned text describes the
// failure and must not be shown as advisor output.
func (s *Service) GenerateResponse(ctx context.Context, prompt, contextSummary string) (string, bool) {
	reply, err := s.generate(ctx, prompt, contextSummary)
	if err != nil {
		log.Printf("[advisor] generation failed: %v", err)
		return err.Error(), false
	}
	return reply, true
}

func (s *Service) generate(ctx context.Context, prompt, contextSummary string) (string, error) {
	messages := s.buildMessages(prompt, contextSummary)

	if estimate, err := tokencount.Estimate(messages, s.modelName); err == nil {
		log.Printf("[advisor] sending %d messages, ~%d prompt tokens", len(messages), estimate)
	}

	response, err := s.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate completion: %w", err)
	}
	if response == nil || strings.TrimSpace(response.Content) == "" {
		return "", ErrEmptyCompletion
	}

	log.Printf("[advisor] generated reply, length=%d", len(response.Content))
	return response.Content, nil
}

// buildMessages assembles the request in fixed order: persona instructions,
// prior context when present, then the user prompt verbatim.
func (s *Service) buildMessages(prompt, contextSummary string) []*schema.Message {
	messages := make([]*schema.Message, 0, 3)
	messages = append(messages, schema.SystemMessage(s.systemPrompt))
	if contextSummary != "" {
		messages = append(messages, schema.SystemMessage("Previous context: "+contextSummary))
	}
	messages = append(messages, schema.UserMessage(prompt))
	return messages
}
