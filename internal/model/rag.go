package model

import "context"

// Embedder turns text into a vector using the deployment's embedding model.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// VectorIndex is a pre-built similarity index over document chunks.
// The service only searches it; building and refreshing the index happen
// elsewhere.
type VectorIndex interface {
	Search(ctx context.Context, vector []float32, topK int) ([]Passage, error)
}

// Completer produces a chat completion for an assembled prompt.
type Completer interface {
	Complete(ctx context.Context, messages []ChatMessage, temperature float32) (string, error)
}

// Passage is one retrieved document chunk.
type Passage struct {
	Content string
	Source  string
	Score   float32
}

// Role identifies the author of a chat message.
type Role string

const (
	// RoleSystem is the fixed instruction turn.
	RoleSystem Role = "system"
	// RoleUser carries the operator's question.
	RoleUser Role = "user"
	// RoleAssistant marks model output.
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn of a completion prompt.
type ChatMessage struct {
	Role    Role
	Content string
}

// QueryScope is the set of customers and files a question is nominally
// issued about. It is echoed back to the caller; it does not constrain
// which documents the index searches.
type QueryScope struct {
	Customers []Customer
	Files     []ReferenceFile
}

// RetrievalAnswer is the outcome of one grounded query.
type RetrievalAnswer struct {
	Question string
	Answer   string
	Scope    QueryScope
}
