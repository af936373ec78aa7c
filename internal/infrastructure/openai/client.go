package openai

import (
	"context"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/yourusername/ferdie-assistant/internal/domain/entity"
	"github.com/yourusername/ferdie-assistant/internal/domain/repository"
)

// chatCompleter the slice of *goopenai.Client this package uses
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error)
}

type openAIClient struct {
	api   chatCompleter
	model string
}

// NewOpenAIClient OpenAI (or compatible, via baseURL) completion service
func NewOpenAIClient(apiKey, baseURL, model string) repository.CompletionRepository {
	cfg := goopenai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &openAIClient{api: goopenai.NewClientWithConfig(cfg), model: model}
}

// Complete one chat completion with the full sampling parameter set
func (c *openAIClient) Complete(ctx context.Context, messages []entity.ChatMessage, params entity.CompletionParams) (string, error) {
	req := buildRequest(messages, params, c.model)
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices returned")
	}
	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("openai: empty response (finish_reason=%s)", resp.Choices[0].FinishReason)
	}
	return text, nil
}

func buildRequest(messages []entity.ChatMessage, params entity.CompletionParams, defaultModel string) goopenai.ChatCompletionRequest {
	model := params.Model
	if model == "" {
		model = defaultModel
	}
	out := make([]goopenai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, goopenai.ChatCompletionMessage{Role: role(m.Role), Content: m.Content})
	}
	return goopenai.ChatCompletionRequest{
		Model:            model,
		Messages:         out,
		Temperature:      params.Temperature,
		TopP:             params.TopP,
		PresencePenalty:  params.PresencePenalty,
		FrequencyPenalty: params.FrequencyPenalty,
		MaxTokens:        params.MaxTokens,
	}
}

func role(r entity.Role) string {
	switch r {
	case entity.RoleSystem:
		return goopenai.ChatMessageRoleSystem
	case entity.RoleAssistant:
		return goopenai.ChatMessageRoleAssistant
	default:
		return goopenai.ChatMessageRoleUser
	}
}
