package runner

import (
	"github.com/DjordjeVuckovic/rag-bench/internal/eval/metrics"
	"github.com/DjordjeVuckovic/rag-bench/internal/eval/spec"
)

const (
	DefaultWarmupRuns = 0
	DefaultRuns       = 1
)

type Config struct {
	MetricNames  []string
	Thresholds   map[string]float64
	WarmupRuns   int
	Runs         int
	OnJudgeError string
}

func DefaultConfig() Config {
	return Config{
		MetricNames:  metrics.DefaultNames(),
		WarmupRuns:   DefaultWarmupRuns,
		Runs:         DefaultRuns,
		OnJudgeError: spec.OnErrorSkip,
	}
}

// FromSpec derives a runner config from a loaded eval spec.
func FromSpec(s *spec.EvalSpec) Config {
	cfg := DefaultConfig()
	cfg.Thresholds = s.Metrics.Thresholds
	cfg.OnJudgeError = s.Judge.OnError
	if s.Runs.Warmup > 0 {
		cfg.WarmupRuns = s.Runs.Warmup
	}
	if s.Runs.Iterations > 0 {
		cfg.Runs = s.Runs.Iterations
	}
	return cfg
}

// threshold resolves the effective threshold for a metric: spec-level
// override or the metric default. Per-case overrides are applied later.
func (c Config) threshold(name string) float64 {
	if v, ok := c.Thresholds[name]; ok {
		return v
	}
	return metrics.DefaultThresholds[name]
}
