package judge

import (
	"context"
	"errors"
)

// Judge produces a completion for an evaluation prompt. Implementations
// are expected to answer with the JSON shape the prompt asks for.
type Judge interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Func adapts a plain function to the Judge interface.
type Func func(ctx context.Context, system, prompt string) (string, error)

func (f Func) Complete(ctx context.Context, system, prompt string) (string, error) {
	return f(ctx, system, prompt)
}

// ErrExhausted reports that all judge attempts failed. Callers decide
// whether that fails or skips the evaluation.
var ErrExhausted = errors.New("judge attempts exhausted")
