package llm

import "context"

// Role is a chat message author.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is one chat turn.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest is a single JSON-mode completion call.
type CompletionRequest struct {
	Messages    []Message
	Temperature float32
	MaxTokens   int
}

// Client abstracts LLM providers. Complete returns the raw text of the first choice.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
