package target

import (
	"context"
	"time"
)

// Target is a question-answering service under evaluation.
type Target interface {
	Ask(ctx context.Context, question string, contexts []string) (*Answer, error)
	Name() string
	Close() error
}

type Answer struct {
	Text    string
	Latency time.Duration
}
