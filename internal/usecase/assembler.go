package usecase

import (
	"strings"

	"github.com/yourusername/ferdie-assistant/internal/domain/constants"
	"github.com/yourusername/ferdie-assistant/internal/domain/entity"
)

const (
	knowledgeHeader = "Aqui estão os textos do site Ferdie que você deve usar para responder:"
	catalogHeader   = "Produtos disponíveis para esta conversa:"
	noCandidates    = "(nenhum produto disponível no momento)"
)

// assistantRules appended to every system block
var assistantRules = []string{
	"Sugira somente produtos da lista acima; nunca ofereça itens que não estejam nela.",
	"Não invente preços, links, prazos, materiais ou qualquer dado que não esteja no contexto.",
	"Se não souber a resposta, diga que vai verificar com a equipe Ferdie.",
	"Responda em português, sem markdown e sem links, em no máximo 4 frases curtas.",
}

type assembleOptions struct {
	styleHint     string
	historyWindow int
}

// AssembleOption tunes AssembleContext
type AssembleOption func(*assembleOptions)

// WithStyleHint adds a tone line to the rules block
func WithStyleHint(hint string) AssembleOption {
	return func(o *assembleOptions) { o.styleHint = strings.TrimSpace(hint) }
}

// WithHistoryWindow overrides constants.HistoryWindow
func WithHistoryWindow(n int) AssembleOption {
	return func(o *assembleOptions) {
		if n > 0 {
			o.historyWindow = n
		}
	}
}

// AssembleContext builds the message list for the completion call, in fixed
// order: one system block (prompt, knowledge, candidate summary, rules), the
// trailing history window oldest first, then the current user message.
func AssembleContext(systemPrompt, knowledge string, ranked []entity.CatalogEntry, history []entity.HistoryEntry, userMessage string, opts ...AssembleOption) []entity.ChatMessage {
	o := assembleOptions{historyWindow: constants.HistoryWindow}
	for _, opt := range opts {
		opt(&o)
	}

	window := WindowHistory(history, o.historyWindow)
	messages := make([]entity.ChatMessage, 0, len(window)+2)
	messages = append(messages, entity.ChatMessage{
		Role:    entity.RoleSystem,
		Content: buildSystemBlock(systemPrompt, knowledge, ranked, o.styleHint),
	})
	for _, h := range window {
		messages = append(messages, entity.ChatMessage{
			Role:    historyRole(h.Role),
			Content: h.Content,
		})
	}
	messages = append(messages, entity.ChatMessage{Role: entity.RoleUser, Content: userMessage})
	return messages
}

// WindowHistory returns the last n entries, oldest first
func WindowHistory(history []entity.HistoryEntry, n int) []entity.HistoryEntry {
	if n <= 0 || len(history) == 0 {
		return []entity.HistoryEntry{}
	}
	if len(history) > n {
		history = history[len(history)-n:]
	}
	out := make([]entity.HistoryEntry, len(history))
	copy(out, history)
	return out
}

// CatalogSummary one "- <title> | category: <category>" line per candidate
func CatalogSummary(ranked []entity.CatalogEntry) string {
	if len(ranked) == 0 {
		return noCandidates
	}
	lines := make([]string, 0, len(ranked))
	for _, e := range ranked {
		line := "- " + e.Title
		if cat := strings.TrimSpace(e.CategoryName()); e.Category != nil && cat != "" {
			line += " | category: " + cat
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func buildSystemBlock(systemPrompt, knowledge string, ranked []entity.CatalogEntry, styleHint string) string {
	var sections []string
	if p := strings.TrimSpace(systemPrompt); p != "" {
		sections = append(sections, p)
	}
	if k := strings.TrimSpace(knowledge); k != "" {
		sections = append(sections, knowledgeHeader+"\n"+k)
	}
	sections = append(sections, catalogHeader+"\n"+CatalogSummary(ranked))

	var rules strings.Builder
	rules.WriteString("Regras:")
	for _, r := range assistantRules {
		rules.WriteString("\n- ")
		rules.WriteString(r)
	}
	if styleHint != "" {
		rules.WriteString("\n- Tom desta resposta: ")
		rules.WriteString(styleHint)
	}
	sections = append(sections, rules.String())

	return strings.Join(sections, "\n\n")
}

// historyRole callers cannot inject system blocks; anything that is not the
// assistant is the user
func historyRole(role string) entity.Role {
	if strings.EqualFold(strings.TrimSpace(role), string(entity.RoleAssistant)) {
		return entity.RoleAssistant
	}
	return entity.RoleUser
}
