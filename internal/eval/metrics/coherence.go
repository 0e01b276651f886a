package metrics

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/rag-bench/internal/eval/judge"
)

// Coherence grades the answer's logical flow with a single rubric call.
type Coherence struct {
	threshold float64
}

func (m *Coherence) Name() string       { return CoherenceName }
func (m *Coherence) Threshold() float64 { return m.threshold }

func (m *Coherence) Evaluate(ctx context.Context, j judge.Judge, tc *TestCase) (*Result, error) {
	raw, err := j.Complete(ctx, systemPrompt, coherencePrompt(tc.Input, tc.ActualOutput))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Name(), err)
	}

	score, err := judge.ParseScore(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Name(), err)
	}

	return newResult(m.Name(), score.Score, m.threshold, score.Reason), nil
}
