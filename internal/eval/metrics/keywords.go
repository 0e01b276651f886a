package metrics

import (
	"context"
	"fmt"
	"strings"

	"github.com/DjordjeVuckovic/rag-bench/internal/eval/judge"
)

// KeywordCoverage is the one deterministic metric: the share of expected
// keywords present in the answer, case-insensitive. It needs no judge.
type KeywordCoverage struct {
	threshold float64

	// Keywords come from the suite case, set by the runner.
	Keywords []string
}

func (m *KeywordCoverage) Name() string       { return KeywordCoverageName }
func (m *KeywordCoverage) Threshold() float64 { return m.threshold }

func (m *KeywordCoverage) Evaluate(_ context.Context, _ judge.Judge, tc *TestCase) (*Result, error) {
	if len(m.Keywords) == 0 {
		return &Result{
			Metric:    m.Name(),
			Threshold: m.threshold,
			Skipped:   true,
			Reason:    "case defines no expected keywords",
		}, nil
	}

	answer := strings.ToLower(tc.ActualOutput)

	var found int
	var missing []string
	for _, kw := range m.Keywords {
		if strings.Contains(answer, strings.ToLower(kw)) {
			found++
		} else {
			missing = append(missing, kw)
		}
	}
	score := float64(found) / float64(len(m.Keywords))

	var reason string
	if len(missing) > 0 {
		reason = fmt.Sprintf("missing keywords: %s", strings.Join(missing, ", "))
	}

	return newResult(m.Name(), score, m.threshold, reason), nil
}
