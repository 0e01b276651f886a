package metrics

import (
	"context"
	"fmt"
	"strings"

	"github.com/DjordjeVuckovic/rag-bench/internal/eval/judge"
)

// AnswerRelevancy measures the share of answer statements that address
// the question. Ambiguous statements count as relevant, contradictions
// of topic ("no" verdicts) do not.
type AnswerRelevancy struct {
	threshold float64
}

func (m *AnswerRelevancy) Name() string       { return AnswerRelevancyName }
func (m *AnswerRelevancy) Threshold() float64 { return m.threshold }

func (m *AnswerRelevancy) Evaluate(ctx context.Context, j judge.Judge, tc *TestCase) (*Result, error) {
	statements, err := extractStatements(ctx, j, tc.ActualOutput)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Name(), err)
	}
	if len(statements) == 0 {
		return newResult(m.Name(), 1, m.threshold, "answer contains no statements"), nil
	}

	verdicts, err := collectVerdicts(ctx, j, relevancyVerdictsPrompt(tc.Input, statements), len(statements))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Name(), err)
	}

	var irrelevant int
	for _, v := range verdicts {
		if v.Is(judge.VerdictNo) {
			irrelevant++
		}
	}
	score := 1 - float64(irrelevant)/float64(len(verdicts))

	return newResult(m.Name(), score, m.threshold, verdictReasons(verdicts, judge.VerdictNo)), nil
}

func extractStatements(ctx context.Context, j judge.Judge, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	raw, err := j.Complete(ctx, systemPrompt, statementsPrompt(text))
	if err != nil {
		return nil, err
	}
	return judge.ParseStatements(raw)
}

func collectVerdicts(ctx context.Context, j judge.Judge, prompt string, want int) ([]judge.Verdict, error) {
	raw, err := j.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, err
	}
	verdicts, err := judge.ParseVerdicts(raw)
	if err != nil {
		return nil, err
	}
	if len(verdicts) != want {
		return nil, fmt.Errorf("judge returned %d verdicts, want %d", len(verdicts), want)
	}
	return verdicts, nil
}

// verdictReasons joins the reasons of verdicts matching kind, for the
// human-readable failure summary.
func verdictReasons(verdicts []judge.Verdict, kind string) string {
	var reasons []string
	for _, v := range verdicts {
		if v.Is(kind) && v.Reason != "" {
			reasons = append(reasons, v.Reason)
		}
	}
	return strings.Join(reasons, "; ")
}
