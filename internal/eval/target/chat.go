package target

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultTimeout = 30 * time.Second

// ChatTarget talks to a /chat endpoint that answers a question from a
// provided context passage.
type ChatTarget struct {
	name    string
	baseURL string
	client  *http.Client
}

func NewChatTarget(name, baseURL string) *ChatTarget {
	return NewChatTargetWithTimeout(name, baseURL, DefaultTimeout)
}

func NewChatTargetWithTimeout(name, baseURL string, timeout time.Duration) *ChatTarget {
	return &ChatTarget{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

func (t *ChatTarget) Ask(ctx context.Context, question string, contexts []string) (*Answer, error) {
	payload, err := json.Marshal(chatRequest{
		Question: question,
		Context:  strings.Join(contexts, "\n\n"),
	})
	if err != nil {
		return nil, fmt.Errorf("chat marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/chat", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("chat create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()
	latency := time.Since(start)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("chat read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chat status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("chat parse response: %w", err)
	}

	return &Answer{
		Text:    chatResp.Answer,
		Latency: latency,
	}, nil
}

func (t *ChatTarget) Name() string { return t.name }
func (t *ChatTarget) Close() error { return nil }
