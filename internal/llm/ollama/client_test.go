package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telemark/telemark-server/internal/model"
)

func TestClient_EmbedQuery(t *testing.T) {
	t.Run("returns first embedding", func(t *testing.T) {
		var got EmbedRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/embed", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			json.NewEncoder(w).Encode(EmbedResponse{
				Embeddings: [][]float32{{0.1, 0.2}},
			})
		}))
		defer server.Close()

		c := New(server.URL, "nomic-embed-text", "llama3", time.Minute)
		vector, err := c.EmbedQuery(context.Background(), "카드 혜택")

		require.NoError(t, err)
		assert.Equal(t, []float32{0.1, 0.2}, vector)
		assert.Equal(t, "nomic-embed-text", got.Model)
		assert.Equal(t, []string{"카드 혜택"}, got.Input)
	})

	t.Run("empty response is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(EmbedResponse{})
		}))
		defer server.Close()

		c := New(server.URL, "nomic-embed-text", "llama3", time.Minute)
		_, err := c.EmbedQuery(context.Background(), "text")
		assert.ErrorContains(t, err, "no embedding returned")
	})

	t.Run("server error surfaces", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model not found", http.StatusNotFound)
		}))
		defer server.Close()

		c := New(server.URL, "nomic-embed-text", "llama3", time.Minute)
		_, err := c.EmbedQuery(context.Background(), "text")
		assert.ErrorContains(t, err, "status 404")
	})
}

func TestClient_Complete(t *testing.T) {
	var got ChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(ChatResponse{
			Message: ChatMessage{Role: "assistant", Content: "세 문장 이내의 답변입니다."},
			Done:    true,
		})
	}))
	defer server.Close()

	c := New(server.URL, "nomic-embed-text", "llama3", time.Minute)
	answer, err := c.Complete(context.Background(), []model.ChatMessage{
		{Role: model.RoleSystem, Content: "지시문"},
		{Role: model.RoleUser, Content: "질문"},
	}, 0)

	require.NoError(t, err)
	assert.Equal(t, "세 문장 이내의 답변입니다.", answer)
	assert.Equal(t, "llama3", got.Model)
	assert.False(t, got.Stream)
	assert.Zero(t, got.Options.Temperature)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "질문", got.Messages[1].Content)
}
