package metrics

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/rag-bench/internal/eval/judge"
)

// Faithfulness measures the share of answer claims that do not
// contradict the retrieval context. Claims the context is silent about
// ("idk") are not counted against the answer.
type Faithfulness struct {
	threshold float64
}

func (m *Faithfulness) Name() string       { return FaithfulnessName }
func (m *Faithfulness) Threshold() float64 { return m.threshold }

func (m *Faithfulness) Evaluate(ctx context.Context, j judge.Judge, tc *TestCase) (*Result, error) {
	claims, err := extractStatements(ctx, j, tc.ActualOutput)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Name(), err)
	}
	if len(claims) == 0 {
		return newResult(m.Name(), 1, m.threshold, "answer contains no claims"), nil
	}

	verdicts, err := collectVerdicts(ctx, j, faithfulnessVerdictsPrompt(tc.RetrievalContext, claims), len(claims))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Name(), err)
	}

	var contradicted int
	for _, v := range verdicts {
		if v.Is(judge.VerdictNo) {
			contradicted++
		}
	}
	score := 1 - float64(contradicted)/float64(len(verdicts))

	return newResult(m.Name(), score, m.threshold, verdictReasons(verdicts, judge.VerdictNo)), nil
}
