package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
)

const completionsPath = "/chat/completions"

// dialTimeout bounds connection establishment separately from the overall
// request deadline so a dead endpoint fails fast.
const dialTimeout = 30 * time.Second

// TransportError reports a failed HTTP exchange with the model endpoint.
// StatusCode is zero when the request never produced a response.
type TransportError struct {
	StatusCode int
	Message    string
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("model endpoint unreachable: %s", e.Message)
	}
	return fmt.Sprintf("model endpoint returned status %d: %s", e.StatusCode, e.Message)
}

// ErrEmptyChoices means the provider answered with a well-formed envelope
// that contains no choices. Treated as a hard failure, never as an empty
// result.
var ErrEmptyChoices = errors.New("model reply contains no choices")

// Client is a thin transport for an OpenAI-compatible chat-completions
// endpoint. One Client is shared across requests; it holds no per-request
// state. The client performs no retries; a failed call is the caller's
// problem.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL, apiKey string, requestTimeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		panic("llm: nil logger")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: dialTimeout}).DialContext,
			},
		},
		logger: logger,
	}
}

// Complete sends one chat-completion request and decodes the reply.
func (c *Client) Complete(ctx context.Context, req Request) (*Reply, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("model call failed", "model", req.Model.String(), "error", err)
		return nil, &TransportError{Message: err.Error()}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close model response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("model call rejected",
			"model", req.Model.String(),
			"status", resp.StatusCode,
			"endpoint", c.baseURL,
		)
		return nil, &TransportError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	var reply Reply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("decode model reply: %w", err)
	}
	if len(reply.Choices) == 0 {
		return nil, ErrEmptyChoices
	}

	c.logger.Info("model call completed",
		"model", req.Model.String(),
		"duration_ms", time.Since(start).Milliseconds(),
		"total_tokens", reply.Usage.TotalTokens,
	)
	return &reply, nil
}

// Chat is a single-turn text completion against the text model. An empty
// system prompt sends only the user message.
func (c *Client) Chat(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error) {
	var messages []Message
	if system != "" {
		messages = append(messages, Message{Role: RoleSystem, Content: TextContent(system)})
	}
	messages = append(messages, Message{Role: RoleUser, Content: TextContent(user)})

	reply, err := c.Complete(ctx, Request{
		Model:       TextModel,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}
	return reply.Choices[0].Message.Content.ExtractText(), nil
}
