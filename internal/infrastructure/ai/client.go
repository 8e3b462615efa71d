// Package ai wraps the external text completion API used for reply
// suggestions, translation and summarization. The endpoint speaks the
// common chat-completions JSON shape.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pigeon_chat_server/internal/config"
	"pigeon_chat_server/pkg/errorx"
)

// Completer produces a completion for a system/user prompt pair. The
// service layer depends on this interface so tests can stub the API.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Client is the HTTP implementation of Completer.
type Client struct {
	endpoint string
	apiKey   string
	model    string
	http     *http.Client
}

// NewClient builds a client from config.
func NewClient(cfg *config.AIConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		http:     &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends one prompt pair and returns the first choice's text.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	reqBody := completionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", errorx.Wrap(err, errorx.CodeUpstreamError, "marshal completion request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", errorx.Wrap(err, errorx.CodeUpstreamError, "build completion request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errorx.Wrap(err, errorx.CodeUpstreamError, "completion request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", errorx.Wrap(err, errorx.CodeUpstreamError, "read completion response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", errorx.Newf(errorx.CodeUpstreamError, "completion API status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var parsed completionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", errorx.Wrap(err, errorx.CodeUpstreamError, "decode completion response")
	}
	if parsed.Error != nil {
		return "", errorx.Newf(errorx.CodeUpstreamError, "completion API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", errorx.New(errorx.CodeUpstreamError, "completion API returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return fmt.Sprintf("%s...", s[:n])
}

var _ Completer = (*Client)(nil)
