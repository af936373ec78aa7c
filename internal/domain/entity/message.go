package entity

// Role of a message block sent to the completion service
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// HistoryEntry one prior turn as supplied by the caller. Nothing is stored server side.
type HistoryEntry struct {
	Role      string  `json:"role"`
	Content   string  `json:"content"`
	ProductID *string `json:"productId,omitempty"`
}

// ChatMessage role-tagged block for the completion service
type ChatMessage struct {
	Role    Role
	Content string
}

// CompletionParams sampling parameters for one completion call
type CompletionParams struct {
	Model            string
	Temperature      float32
	TopP             float32
	PresencePenalty  float32
	FrequencyPenalty float32
	MaxTokens        int
}

// ChatRequest inbound turn
type ChatRequest struct {
	Message string
	History []HistoryEntry
}

// TurnContext ephemeral per-request state
type TurnContext struct {
	UserMessage      string
	History          []HistoryEntry
	RankedCandidates []CatalogEntry
	ResolvedEntity   *CatalogEntry
	GenericFollowUp  bool
}

// ReplyMeta diagnostic fields returned next to the reply
type ReplyMeta struct {
	Model        string `json:"model"`
	SourcesTotal int    `json:"sources_total"`
	Candidates   int    `json:"candidates"`
}

// Reply outbound turn
type Reply struct {
	Text      string
	Image     *string
	ProductID *string
	Meta      ReplyMeta
}
