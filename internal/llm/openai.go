package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIChatModelConfig configures the OpenAI-backed chat model.
type OpenAIChatModelConfig struct {
	// APIKey authenticates against the completion endpoint.
	APIKey string
	// BaseURL overrides the default endpoint, mainly for tests and proxies.
	BaseURL string
	// Model is the completion model id, e.g. "gpt-4".
	Model string
	// Temperature and MaxTokens are the default sampling parameters.
	// Either can be overridden per call through model options.
	Temperature *float32
	MaxTokens   *int
}

// OpenAIChatModel adapts the OpenAI chat completion API to eino's
// model.BaseChatModel interface.
type OpenAIChatModel struct {
	client      *openai.Client
	model       string
	temperature *float32
	maxTokens   *int
}

// NewOpenAIChatModel builds a chat model backed by the OpenAI API.
func NewOpenAIChatModel(config *OpenAIChatModelConfig) (*OpenAIChatModel, error) {
	if config == nil {
		return nil, errors.New("openai chat model config is required")
	}
	if strings.TrimSpace(config.APIKey) == "" {
		return nil, errors.New("openai api key is required")
	}
	if strings.TrimSpace(config.Model) == "" {
		return nil, errors.New("openai model id is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIChatModel{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       config.Model,
		temperature: config.Temperature,
		maxTokens:   config.MaxTokens,
	}, nil
}

// Generate sends the messages as one chat completion request and returns the
// assistant reply.
func (m *OpenAIChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	if len(input) == 0 {
		return nil, errors.New("no messages to send")
	}

	options := model.GetCommonOptions(&model.Options{
		Model:       &m.model,
		Temperature: m.temperature,
		MaxTokens:   m.maxTokens,
	}, opts...)

	messages, err := toOpenAIMessages(input)
	if err != nil {
		return nil, err
	}

	req := openai.ChatCompletionRequest{
		Model:    *options.Model,
		Messages: messages,
	}
	if options.Temperature != nil {
		req.Temperature = *options.Temperature
	}
	if options.MaxTokens != nil {
		req.MaxTokens = *options.MaxTokens
	}

	resp, err := m.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("chat completion returned no choices")
	}

	return schema.AssistantMessage(resp.Choices[0].Message.Content, nil), nil
}

// Stream satisfies model.BaseChatModel. The OpenAI client is driven in
// blocking mode, so the reply arrives as a single frame.
func (m *OpenAIChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}

	sr, sw := schema.Pipe[*schema.Message](1)
	sw.Send(msg, nil)
	sw.Close()
	return sr, nil
}

func toOpenAIMessages(input []*schema.Message) ([]openai.ChatCompletionMessage, error) {
	out := make([]openai.ChatCompletionMessage, 0, len(input))
	for _, msg := range input {
		if msg == nil {
			continue
		}
		var role string
		switch msg.Role {
		case schema.System:
			role = openai.ChatMessageRoleSystem
		case schema.User:
			role = openai.ChatMessageRoleUser
		case schema.Assistant:
			role = openai.ChatMessageRoleAssistant
		default:
			return nil, fmt.Errorf("unsupported message role %q", msg.Role)
		}
		out = append(out, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}
	if len(out) == 0 {
		return nil, errors.New("no messages to send")
	}
	return out, nil
}
