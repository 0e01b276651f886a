package metrics

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/rag-bench/internal/eval/judge"
)

// TestCase bundles one evaluated exchange: the question sent to the
// target, the answer it returned, and the context it was given.
type TestCase struct {
	Input            string
	ActualOutput     string
	ExpectedOutput   string
	RetrievalContext []string
}

// reference returns the text recall/precision metrics measure against:
// the expected output when the suite provides one, the actual answer
// otherwise.
func (tc *TestCase) reference() string {
	if tc.ExpectedOutput != "" {
		return tc.ExpectedOutput
	}
	return tc.ActualOutput
}

type Result struct {
	Metric    string  `json:"metric"`
	Score     float64 `json:"score"`
	Threshold float64 `json:"threshold"`
	Passed    bool    `json:"passed"`
	Skipped   bool    `json:"skipped,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

// Metric scores one test case in [0,1] and compares it to a threshold.
type Metric interface {
	Name() string
	Threshold() float64
	Evaluate(ctx context.Context, j judge.Judge, tc *TestCase) (*Result, error)
}

const (
	AnswerRelevancyName     = "answer_relevancy"
	FaithfulnessName        = "faithfulness"
	ContextualRelevancyName = "contextual_relevancy"
	ContextualPrecisionName = "contextual_precision"
	ContextualRecallName    = "contextual_recall"
	CoherenceName           = "coherence"
	KeywordCoverageName     = "keyword_coverage"
)

// DefaultThresholds apply when neither the suite nor the spec sets one:
// relevancy tolerates partially on-topic answers, the rest demand 0.7.
var DefaultThresholds = map[string]float64{
	AnswerRelevancyName:     0.5,
	FaithfulnessName:        0.7,
	ContextualRelevancyName: 0.7,
	ContextualPrecisionName: 0.7,
	ContextualRecallName:    0.7,
	CoherenceName:           0.7,
	KeywordCoverageName:     0.7,
}

// DefaultNames lists the metric set used when a job does not pick its own.
func DefaultNames() []string {
	return []string{
		AnswerRelevancyName,
		FaithfulnessName,
		ContextualRelevancyName,
		ContextualPrecisionName,
		ContextualRecallName,
		CoherenceName,
		KeywordCoverageName,
	}
}

// New builds a metric by name. A non-positive threshold selects the
// metric's default.
func New(name string, threshold float64) (Metric, error) {
	if threshold <= 0 {
		threshold = DefaultThresholds[name]
	}
	switch name {
	case AnswerRelevancyName:
		return &AnswerRelevancy{threshold: threshold}, nil
	case FaithfulnessName:
		return &Faithfulness{threshold: threshold}, nil
	case ContextualRelevancyName:
		return &ContextualRelevancy{threshold: threshold}, nil
	case ContextualPrecisionName:
		return &ContextualPrecision{threshold: threshold}, nil
	case ContextualRecallName:
		return &ContextualRecall{threshold: threshold}, nil
	case CoherenceName:
		return &Coherence{threshold: threshold}, nil
	case KeywordCoverageName:
		return &KeywordCoverage{threshold: threshold}, nil
	default:
		return nil, fmt.Errorf("unknown metric %q", name)
	}
}

func newResult(name string, score, threshold float64, reason string) *Result {
	return &Result{
		Metric:    name,
		Score:     score,
		Threshold: threshold,
		Passed:    score >= threshold,
		Reason:    reason,
	}
}
