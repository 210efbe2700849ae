package llm

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    Role
	Content string
}

// SafetySetting asks the backend to block content of a harm category at or
// above a threshold. Only the Google provider enforces these.
type SafetySetting struct {
	Category  string
	Threshold string
}

// CompletionRequest contains the parameters for an LLM completion request.
type CompletionRequest struct {
	Model          string
	Messages       []Message
	MaxTokens      int
	Temperature    *float64 // nil leaves the backend default
	SafetySettings []SafetySetting
}

// CompletionResponse contains the result of an LLM completion request.
type CompletionResponse struct {
	Content      string
	InputTokens  int
	OutputTokens int
	Model        string
	FinishReason string
}
