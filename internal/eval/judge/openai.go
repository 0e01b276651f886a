package judge

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sashabaranov/go-openai"
)

const (
	DefaultModel       = "gpt-4o-mini"
	DefaultMaxAttempts = 3

	retryBaseDelay = 500 * time.Millisecond
)

type OpenAIJudge struct {
	client      *openai.Client
	model       string
	maxAttempts int
}

type OpenAIOption func(*OpenAIJudge)

func WithModel(model string) OpenAIOption {
	return func(j *OpenAIJudge) {
		if model != "" {
			j.model = model
		}
	}
}

func WithMaxAttempts(n int) OpenAIOption {
	return func(j *OpenAIJudge) {
		if n > 0 {
			j.maxAttempts = n
		}
	}
}

// NewOpenAIJudge builds a judge from OPENAI_API_KEY and OPENAI_MODEL.
func NewOpenAIJudge(opts ...OpenAIOption) (*OpenAIJudge, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = DefaultModel
		slog.Warn("OPENAI_MODEL not set, defaulting", "model", model)
	}

	j := &OpenAIJudge{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(j)
	}

	slog.Info("Initializing judge", "provider", "openai", "model", j.model)
	return j, nil
}

func (j *OpenAIJudge) Complete(ctx context.Context, system, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       j.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	var lastErr error
	for attempt := 1; attempt <= j.maxAttempts; attempt++ {
		resp, err := j.client.CreateChatCompletion(ctx, req)
		if err == nil {
			if len(resp.Choices) == 0 {
				lastErr = fmt.Errorf("judge returned no choices")
			} else {
				return resp.Choices[0].Message.Content, nil
			}
		} else {
			lastErr = err
		}

		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %w", ErrExhausted, ctx.Err())
		}

		slog.Warn("Judge call failed", "attempt", attempt, "error", lastErr)
		if attempt < j.maxAttempts {
			select {
			case <-time.After(retryBaseDelay * time.Duration(attempt)):
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %w", ErrExhausted, ctx.Err())
			}
		}
	}

	return "", fmt.Errorf("%w: %w", ErrExhausted, lastErr)
}
