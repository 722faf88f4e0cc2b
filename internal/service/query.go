package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/telemark/telemark-server/internal/logger"
	"github.com/telemark/telemark-server/internal/model"
)

// systemInstruction constrains the assistant to the retrieved context:
// answer only from it, admit not knowing instead of fabricating, and
// keep answers to at most three sentences.
const systemInstruction = `다음과 같은 맥락을 사용하여 마지막 질문에 대답하십시오.
만약 답을 모르면 모른다고만 말하고 답을 지어내려고 하지 마십시오.
답변은 최대 세 문장으로 하고 가능한 한 간결하게 유지하십시오.`

// Query answers operator questions from the pre-built vector index.
//
// The supplied scope is echoed back with the answer only; retrieval
// always searches the full index regardless of which customers or files
// were selected.
type Query struct {
	embedder  model.Embedder
	index     model.VectorIndex
	completer model.Completer
	topK      int
	logger    *logger.Logger
}

// NewQuery creates a Query engine from its injected collaborators.
func NewQuery(
	embedder model.Embedder,
	index model.VectorIndex,
	completer model.Completer,
	topK int,
	logger *logger.Logger,
) *Query {
	return &Query{
		embedder:  embedder,
		index:     index,
		completer: completer,
		topK:      topK,
		logger:    logger,
	}
}

// Answer embeds the question, retrieves the top matching passages,
// and generates a grounded completion at temperature zero. Embedding,
// index and completion failures all surface as a RetrievalError; none
// are retried.
func (s *Query) Answer(ctx context.Context, question string, scope model.QueryScope) (model.RetrievalAnswer, error) {
	vector, err := s.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return model.RetrievalAnswer{}, model.NewRetrievalError(model.RetrievalStageEmbed, err)
	}

	passages, err := s.index.Search(ctx, vector, s.topK)
	if err != nil {
		return model.RetrievalAnswer{}, model.NewRetrievalError(model.RetrievalStageSearch, err)
	}

	messages := []model.ChatMessage{
		{Role: model.RoleSystem, Content: buildSystemMessage(passages)},
		{Role: model.RoleUser, Content: question},
	}

	answer, err := s.completer.Complete(ctx, messages, 0)
	if err != nil {
		return model.RetrievalAnswer{}, model.NewRetrievalError(model.RetrievalStageComplete, err)
	}

	s.logger.Info("query answered",
		"passages", len(passages),
		"customers", len(scope.Customers),
		"files", len(scope.Files))

	return model.RetrievalAnswer{
		Question: question,
		Answer:   answer,
		Scope:    scope,
	}, nil
}

// buildSystemMessage appends the retrieved passages to the fixed
// instruction. Source attribution stays out of the answer; sources are
// carried on the passages for callers that opt in.
func buildSystemMessage(passages []model.Passage) string {
	var b strings.Builder
	b.WriteString(systemInstruction)
	b.WriteString("\n\n")
	for i, p := range passages {
		fmt.Fprintf(&b, "[%d] %s\n\n", i+1, p.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}
