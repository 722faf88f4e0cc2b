package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/telemark/telemark-server/internal/model"
	"github.com/telemark/telemark-server/internal/testutil"
)

// MockEmbedder mocks the Embedder interface.
type MockEmbedder struct {
	mock.Mock
}

func (m *MockEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	return args.Get(0).([]float32), args.Error(1)
}

// MockVectorIndex mocks the VectorIndex interface.
type MockVectorIndex struct {
	mock.Mock
}

func (m *MockVectorIndex) Search(ctx context.Context, vector []float32, topK int) ([]model.Passage, error) {
	args := m.Called(ctx, vector, topK)
	return args.Get(0).([]model.Passage), args.Error(1)
}

// MockCompleter mocks the Completer interface.
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, messages []model.ChatMessage, temperature float32) (string, error) {
	args := m.Called(ctx, messages, temperature)
	return args.String(0), args.Error(1)
}

func TestQuery_Answer(t *testing.T) {
	ctx := context.Background()
	question := "이번 분기 카드 혜택이 뭐예요?"
	vector := []float32{0.1, 0.2, 0.3}
	passages := []model.Passage{
		{Content: "카드 혜택 안내문", Source: "kcards.pdf", Score: 0.92},
		{Content: "분기별 프로모션", Source: "promo.pdf", Score: 0.81},
	}

	t.Run("answers with echoed scope", func(t *testing.T) {
		scope := model.QueryScope{
			Customers: []model.Customer{{Name: "kim"}},
			Files:     []model.ReferenceFile{{Name: "kcards.pdf"}},
		}

		embedder := &MockEmbedder{}
		embedder.On("EmbedQuery", ctx, question).Return(vector, nil)

		index := &MockVectorIndex{}
		index.On("Search", ctx, vector, 4).Return(passages, nil)

		completer := &MockCompleter{}
		completer.On("Complete", ctx, mock.MatchedBy(func(messages []model.ChatMessage) bool {
			if len(messages) != 2 {
				return false
			}
			system, user := messages[0], messages[1]
			return system.Role == model.RoleSystem &&
				user.Role == model.RoleUser &&
				user.Content == question &&
				// The system turn carries the instruction plus every passage.
				len(system.Content) > len(systemInstruction)
		}), float32(0)).Return("모른다고 말씀드리기 어렵네요.", nil)

		engine := NewQuery(embedder, index, completer, 4, testutil.MakeNoopLogger())
		answer, err := engine.Answer(ctx, question, scope)

		require.NoError(t, err)
		assert.Equal(t, question, answer.Question)
		assert.Equal(t, "모른다고 말씀드리기 어렵네요.", answer.Answer)
		assert.Equal(t, scope, answer.Scope)
	})

	t.Run("embedding failure", func(t *testing.T) {
		embedder := &MockEmbedder{}
		embedder.On("EmbedQuery", ctx, question).Return([]float32(nil), errors.New("model not loaded"))

		engine := NewQuery(embedder, &MockVectorIndex{}, &MockCompleter{}, 4, testutil.MakeNoopLogger())
		_, err := engine.Answer(ctx, question, model.QueryScope{})

		var retrievalErr *model.RetrievalError
		require.ErrorAs(t, err, &retrievalErr)
		assert.Equal(t, model.RetrievalStageEmbed, retrievalErr.Stage)
	})

	t.Run("index failure", func(t *testing.T) {
		embedder := &MockEmbedder{}
		embedder.On("EmbedQuery", ctx, question).Return(vector, nil)

		index := &MockVectorIndex{}
		index.On("Search", ctx, vector, 4).Return([]model.Passage(nil), errors.New("collection unreadable"))

		engine := NewQuery(embedder, index, &MockCompleter{}, 4, testutil.MakeNoopLogger())
		_, err := engine.Answer(ctx, question, model.QueryScope{})

		var retrievalErr *model.RetrievalError
		require.ErrorAs(t, err, &retrievalErr)
		assert.Equal(t, model.RetrievalStageSearch, retrievalErr.Stage)
	})

	t.Run("completion failure", func(t *testing.T) {
		embedder := &MockEmbedder{}
		embedder.On("EmbedQuery", ctx, question).Return(vector, nil)

		index := &MockVectorIndex{}
		index.On("Search", ctx, vector, 4).Return(passages, nil)

		completer := &MockCompleter{}
		completer.On("Complete", ctx, mock.Anything, float32(0)).
			Return("", errors.New("service unavailable"))

		engine := NewQuery(embedder, index, completer, 4, testutil.MakeNoopLogger())
		_, err := engine.Answer(ctx, question, model.QueryScope{})

		var retrievalErr *model.RetrievalError
		require.ErrorAs(t, err, &retrievalErr)
		assert.Equal(t, model.RetrievalStageComplete, retrievalErr.Stage)
	})
}

func TestBuildSystemMessage(t *testing.T) {
	message := buildSystemMessage([]model.Passage{
		{Content: "첫 번째 맥락"},
		{Content: "두 번째 맥락"},
	})

	assert.Contains(t, message, systemInstruction)
	assert.Contains(t, message, "[1] 첫 번째 맥락")
	assert.Contains(t, message, "[2] 두 번째 맥락")
}
