// Package config loads service configuration from an optional YAML file
// overlaid with environment variables.
package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rahhal-app/rahhal/backend/internal/llm"
)

// Config aggregates every tunable of the service.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	LLM     LLMConfig     `yaml:"llm"`
	Advisor AdvisorConfig `yaml:"advisor"`
	Chat    ChatConfig    `yaml:"chat"`
}

// Load reads configuration from path when provided and overlays environment
// variables either way.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from environment: %w", err)
		}
		return &cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return &cfg, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Port string `yaml:"port" env:"PORT" env-default:"8080"`
}

// Addr normalizes the configured port into a net/http listen address.
// Values like ":8080" or "127.0.0.1:8080" pass through unchanged.
func (c ServerConfig) Addr() (string, error) {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		return port, nil
	}
	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid port value: %q", port)
	}
	return ":" + port, nil
}

// LLMConfig describes the chat completion backend. The credential is not
// part of this struct; it is resolved separately and passed in explicitly.
type LLMConfig struct {
	Provider    string  `yaml:"provider" env:"LLM_PROVIDER" env-default:"openai"`
	Model       string  `yaml:"model" env:"LLM_MODEL" env-default:"gpt-4"`
	BaseURL     string  `yaml:"base_url" env:"LLM_BASE_URL"`
	Region      string  `yaml:"region" env:"LLM_REGION"`
	Temperature float32 `yaml:"temperature" env:"LLM_TEMPERATURE" env-default:"0.7"`
}

// NewChatModel builds the configured chat model using the resolved credential.
func (c LLMConfig) NewChatModel(ctx context.Context, apiKey string) (model.BaseChatModel, error) {
	return llm.New(ctx, llm.Config{
		Provider:    c.Provider,
		APIKey:      apiKey,
		Model:       c.Model,
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		Temperature: c.Temperature,
	})
}

// AdvisorConfig points at the optional persona profile file.
type AdvisorConfig struct {
	ProfileFile string `yaml:"profile_file" env:"PROFILE_FILE"`
}

// ChatConfig tunes conversation handling.
type ChatConfig struct {
	// ContextWindow is the number of trailing transcript messages summarized
	// into the model's context for follow-up questions.
	ContextWindow int `yaml:"context_window" env:"CONTEXT_WINDOW" env-default:"5"`
}
