package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/yourusername/ferdie-assistant/internal/domain/entity"
	"github.com/yourusername/ferdie-assistant/internal/domain/repository"
	"github.com/yourusername/ferdie-assistant/pkg/logger"
	"google.golang.org/api/option"
)

// ErrBlocked the response was stopped by the safety filter
var ErrBlocked = errors.New("response blocked by safety filter")

type geminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient Gemini backed completion service
func NewGeminiClient(ctx context.Context, apiKey, model string) (repository.CompletionRepository, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiClient{client: client, model: model}, nil
}

// Complete maps the system block to the system instruction, prior turns to
// the chat history and sends the last user message.
func (g *geminiClient) Complete(ctx context.Context, messages []entity.ChatMessage, params entity.CompletionParams) (string, error) {
	name := params.Model
	if name == "" {
		name = g.model
	}
	model := g.client.GenerativeModel(name)
	model.SetTemperature(params.Temperature)
	if params.TopP > 0 {
		model.SetTopP(params.TopP)
	}
	if params.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(params.MaxTokens))
	}
	if params.PresencePenalty != 0 || params.FrequencyPenalty != 0 {
		logger.Debug("presence/frequency penalties are not sent to Gemini")
	}

	system, history, last, err := splitMessages(messages)
	if err != nil {
		return "", err
	}
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	cs := model.StartChat()
	cs.History = history

	resp, err := cs.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini: no response candidates")
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		logger.Warn("🚫 Gemini response blocked by safety filter")
		return "", ErrBlocked
	}

	text := extractText(resp)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return text, nil
}

// splitMessages system text, chat history (user/model turns) and the final user text
func splitMessages(messages []entity.ChatMessage) (string, []*genai.Content, string, error) {
	var (
		system  []string
		history []*genai.Content
	)
	if len(messages) == 0 || messages[len(messages)-1].Role != entity.RoleUser {
		return "", nil, "", fmt.Errorf("gemini: last message must be from the user")
	}
	for _, m := range messages[:len(messages)-1] {
		switch m.Role {
		case entity.RoleSystem:
			system = append(system, m.Content)
		case entity.RoleAssistant:
			history = append(history, &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(m.Content)}})
		default:
			history = append(history, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(m.Content)}})
		}
	}
	return strings.Join(system, "\n\n"), history, messages[len(messages)-1].Content, nil
}

// extractText concatenates the text parts of all candidates
func extractText(resp *genai.GenerateContentResponse) string {
	var result strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					result.WriteString(string(t))
				}
			}
		}
	}
	return result.String()
}

// Close releases the underlying client
func (g *geminiClient) Close() error {
	return g.client.Close()
}
