package metrics

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/rag-bench/internal/eval/judge"
)

// ContextualRelevancy measures the share of context statements that are
// useful for answering the question.
type ContextualRelevancy struct {
	threshold float64
}

func (m *ContextualRelevancy) Name() string       { return ContextualRelevancyName }
func (m *ContextualRelevancy) Threshold() float64 { return m.threshold }

func (m *ContextualRelevancy) Evaluate(ctx context.Context, j judge.Judge, tc *TestCase) (*Result, error) {
	var statements []string
	for _, passage := range tc.RetrievalContext {
		extracted, err := extractStatements(ctx, j, passage)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.Name(), err)
		}
		statements = append(statements, extracted...)
	}
	if len(statements) == 0 {
		return newResult(m.Name(), 0, m.threshold, "context contains no statements"), nil
	}

	verdicts, err := collectVerdicts(ctx, j, contextualRelevancyVerdictsPrompt(tc.Input, statements), len(statements))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Name(), err)
	}

	var relevant int
	for _, v := range verdicts {
		if v.Is(judge.VerdictYes) {
			relevant++
		}
	}
	score := float64(relevant) / float64(len(verdicts))

	return newResult(m.Name(), score, m.threshold, verdictReasons(verdicts, judge.VerdictNo)), nil
}

// ContextualPrecision measures whether relevant context passages are
// ranked above irrelevant ones, as weighted cumulative precision over
// the passage order.
type ContextualPrecision struct {
	threshold float64
}

func (m *ContextualPrecision) Name() string       { return ContextualPrecisionName }
func (m *ContextualPrecision) Threshold() float64 { return m.threshold }

func (m *ContextualPrecision) Evaluate(ctx context.Context, j judge.Judge, tc *TestCase) (*Result, error) {
	if len(tc.RetrievalContext) == 0 {
		return newResult(m.Name(), 0, m.threshold, "no retrieval context"), nil
	}

	prompt := contextualPrecisionVerdictsPrompt(tc.Input, tc.reference(), tc.RetrievalContext)
	verdicts, err := collectVerdicts(ctx, j, prompt, len(tc.RetrievalContext))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Name(), err)
	}

	var relevantSoFar int
	var sum float64
	for k, v := range verdicts {
		if v.Is(judge.VerdictYes) {
			relevantSoFar++
			sum += float64(relevantSoFar) / float64(k+1)
		}
	}
	var score float64
	if relevantSoFar > 0 {
		score = sum / float64(relevantSoFar)
	}

	return newResult(m.Name(), score, m.threshold, verdictReasons(verdicts, judge.VerdictNo)), nil
}

// ContextualRecall measures the share of reference-answer sentences the
// retrieval context can back up.
type ContextualRecall struct {
	threshold float64
}

func (m *ContextualRecall) Name() string       { return ContextualRecallName }
func (m *ContextualRecall) Threshold() float64 { return m.threshold }

func (m *ContextualRecall) Evaluate(ctx context.Context, j judge.Judge, tc *TestCase) (*Result, error) {
	sentences, err := extractStatements(ctx, j, tc.reference())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Name(), err)
	}
	if len(sentences) == 0 {
		return newResult(m.Name(), 0, m.threshold, "reference answer contains no sentences"), nil
	}

	verdicts, err := collectVerdicts(ctx, j, contextualRecallVerdictsPrompt(tc.RetrievalContext, sentences), len(sentences))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Name(), err)
	}

	var attributable int
	for _, v := range verdicts {
		if v.Is(judge.VerdictYes) {
			attributable++
		}
	}
	score := float64(attributable) / float64(len(verdicts))

	return newResult(m.Name(), score, m.threshold, verdictReasons(verdicts, judge.VerdictNo)), nil
}
