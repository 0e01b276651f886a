package runner

import (
	"github.com/DjordjeVuckovic/rag-bench/internal/eval/metrics"
)

type CaseResult struct {
	CaseID     string
	CaseName   string
	JobName    string
	TargetName string
	Answer     string
	Latency    LatencyStats
	Metrics    []metrics.Result
	Error      error
}

// Passed reports whether every non-skipped metric met its threshold and
// the target call succeeded.
func (cr *CaseResult) Passed() bool {
	if cr.Error != nil {
		return false
	}
	for _, m := range cr.Metrics {
		if !m.Skipped && !m.Passed {
			return false
		}
	}
	return true
}

type JobResult struct {
	JobName     string
	SuiteName   string
	Results     map[string]map[string]CaseResult // [caseID][targetName]
	CaseOrder   []string
	TargetNames []string
}

type EvalResult struct {
	Jobs   []*JobResult
	Config Config
}

func (er *EvalResult) AllTargetNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, jr := range er.Jobs {
		for _, name := range jr.TargetNames {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
