package provider

import (
	"context"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/auraos/aibridge/internal/domain"
	"github.com/auraos/aibridge/internal/ports"
)

type openAIProvider struct {
	cfg    domain.ProviderConfig
	client *openai.Client
}

func newOpenAIProvider(cfg domain.ProviderConfig) ports.Provider {
	apiKey := resolveAPIKey(cfg.APIKeyEnvVar, "OPENAI_API_KEY")
	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.Endpoint != "" {
		clientCfg.BaseURL = cfg.Endpoint
	}
	return &openAIProvider{
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientCfg),
	}
}

func (p *openAIProvider) Name() string {
	return p.cfg.Name
}

func (p *openAIProvider) Send(ctx context.Context, prompt string, contextData map[string]any) (domain.ProviderResponse, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}
	if extra, ok := contextMessage(contextData); ok {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: extra,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       valueOrDefault(p.cfg.ModelID, openai.GPT4oMini),
		Messages:    messages,
		MaxTokens:   valueOrDefaultInt(p.cfg.MaxTokens, 512),
		Temperature: p.cfg.Temperature,
	})
	if err != nil {
		return domain.ProviderResponse{}, domain.WrapError(domain.CodeProviderError, err, "openai request failed")
	}
	if len(resp.Choices) == 0 {
		return domain.ProviderResponse{}, domain.NewError(domain.CodeEmptyResponse, "no choices in openai response")
	}

	choice := resp.Choices[0]
	return domain.ProviderResponse{
		Provider:     p.cfg.Name,
		Model:        resp.Model,
		Content:      choice.Message.Content,
		FinishReason: string(choice.FinishReason),
		Usage: domain.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

func resolveAPIKey(envVar, fallbackVar string) string {
	if envVar != "" {
		if key := os.Getenv(envVar); key != "" {
			return key
		}
	}
	return os.Getenv(fallbackVar)
}

func valueOrDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func valueOrDefaultInt(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}

func timeoutFor(cfg domain.ProviderConfig) time.Duration {
	if cfg.TimeoutSecs > 0 {
		return time.Duration(cfg.TimeoutSecs) * time.Second
	}
	return 30 * time.Second
}

var _ ports.Provider = (*openAIProvider)(nil)
