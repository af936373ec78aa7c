package constants

import "time"

// Conversation and context constants
const (
	// HistoryWindow number of trailing history entries used per turn
	HistoryWindow = 6

	// DefaultMaxCandidates ranked catalog entries injected into the prompt
	DefaultMaxCandidates = 8

	// MaxReplySentences replies are truncated to this many sentences
	MaxReplySentences = 4
)

// Relevance weights per matched field
const (
	TitleWeight    = 3
	CategoryWeight = 2
	TagsWeight     = 1
)

// AI model constants
const (
	// DefaultOpenAIModel model used with the OpenAI-compatible backend
	DefaultOpenAIModel = "gpt-4o"

	// DefaultGeminiModel model used with the Gemini backend
	DefaultGeminiModel = "gemini-2.5-flash"

	// AITemperature sampling temperature (0.0-2.0)
	AITemperature = 0.7

	// AITopP nucleus sampling threshold
	AITopP = 1.0

	// AIMaxTokens max output length
	AIMaxTokens = 400

	// AITimeout deadline for one completion call
	AITimeout = 45 * time.Second
)

// File locations
const (
	DefaultPromptPath    = "./prompts/system_ptbr.txt"
	DefaultCatalogPath   = "./knowledge/produtos.json"
	DefaultKnowledgePath = "./knowledge/conteudo_ferdie.json"
)

// User-facing texts
const (
	// EmptyMessageText returned with HTTP 400
	EmptyMessageText = "Mensagem vazia."

	// FallbackReply returned with HTTP 500 when the completion service fails
	FallbackReply = "Desculpe, tive um problema para responder agora. Pode tentar novamente em instantes?"
)
