// Package llm constructs the chat model the conversation client talks to.
// Every provider is exposed through eino's model.BaseChatModel so the rest
// of the backend never sees a concrete SDK.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Supported provider identifiers.
const (
	ProviderOpenAI = "openai"
	ProviderArk    = "ark"
)

const (
	defaultArkBaseURL = "https://ark.cn-beijing.volces.com/api/v3"
	defaultArkRegion  = "cn-beijing"
)

// Config carries everything needed to build a chat model: the resolved
// credential plus the fixed sampling parameters from configuration.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Region      string
	Temperature float32
}

// New builds the chat model for the configured provider. The conversation
// service cannot run without one, so construction errors are fatal to the
// caller.
func New(ctx context.Context, cfg Config) (model.BaseChatModel, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("llm model id is required")
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderOpenAI:
		temperature := cfg.Temperature
		return NewOpenAIChatModel(&OpenAIChatModelConfig{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: &temperature,
		})

	case ProviderArk:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = defaultArkBaseURL
		}
		region := cfg.Region
		if region == "" {
			region = defaultArkRegion
		}
		temperature := cfg.Temperature
		return ark.NewChatModel(ctx, &ark.ChatModelConfig{
			BaseURL:     baseURL,
			Region:      region,
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Temperature: &temperature,
		})

	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}
