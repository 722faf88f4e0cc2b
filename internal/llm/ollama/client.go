// Package ollama provides an Ollama API client for embedding and chat
// completion.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/telemark/telemark-server/internal/model"
)

var (
	_ model.Embedder  = (*Client)(nil)
	_ model.Completer = (*Client)(nil)
)

// Client is an Ollama API client bound to fixed embedding and chat models.
type Client struct {
	baseURL    string
	httpClient *http.Client
	embedModel string
	chatModel  string
}

// New creates a new Ollama client.
func New(baseURL, embedModel, chatModel string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		embedModel: embedModel,
		chatModel:  chatModel,
	}
}

// EmbedRequest is the request body for embedding.
type EmbedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// EmbedResponse is the response from embedding.
type EmbedResponse struct {
	Model      string      `json:"model"`
	Embeddings [][]float32 `json:"embeddings"`
}

// EmbedQuery generates an embedding for a single text.
func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	reqBody := EmbedRequest{
		Model: c.embedModel,
		Input: []string{text},
	}

	var embedResp EmbedResponse
	if err := c.post(ctx, "/api/embed", reqBody, &embedResp); err != nil {
		return nil, fmt.Errorf("embed request failed: %w", err)
	}

	if len(embedResp.Embeddings) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}
	return embedResp.Embeddings[0], nil
}

// ChatMessage represents a message in a chat conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatOptions carries sampling parameters. Temperature has no omitempty
// so an explicit zero reaches the server.
type ChatOptions struct {
	Temperature float32 `json:"temperature"`
}

// ChatRequest is the request body for chat completion.
type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  ChatOptions   `json:"options"`
}

// ChatResponse is the response from chat completion.
type ChatResponse struct {
	Model     string      `json:"model"`
	CreatedAt string      `json:"created_at"`
	Message   ChatMessage `json:"message"`
	Done      bool        `json:"done"`
}

// Complete generates a chat completion for the assembled prompt at the
// given temperature.
func (c *Client) Complete(ctx context.Context, messages []model.ChatMessage, temperature float32) (string, error) {
	chatMessages := make([]ChatMessage, len(messages))
	for i, msg := range messages {
		chatMessages[i] = ChatMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
	}

	reqBody := ChatRequest{
		Model:    c.chatModel,
		Messages: chatMessages,
		Stream:   false,
		Options:  ChatOptions{Temperature: temperature},
	}

	var chatResp ChatResponse
	if err := c.post(ctx, "/api/chat", reqBody, &chatResp); err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}

	return chatResp.Message.Content, nil
}

// Ping checks if the Ollama server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to create ping request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ping failed with status %d", resp.StatusCode)
	}

	return nil
}

func (c *Client) post(ctx context.Context, endpoint string, reqBody, respBody any) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, bodyBytes)
	}

	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
