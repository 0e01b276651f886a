package report

import (
	"runtime"
	"time"

	"github.com/DjordjeVuckovic/rag-bench/internal/eval/metrics"
	"github.com/DjordjeVuckovic/rag-bench/internal/eval/runner"
	"github.com/google/uuid"
)

type Report struct {
	Meta   Meta         `json:"meta"`
	Jobs   []JobReport  `json:"jobs"`
	Config ReportConfig `json:"config"`
}

type Meta struct {
	RunID       uuid.UUID       `json:"run_id"`
	Timestamp   time.Time       `json:"timestamp"`
	Environment EnvironmentInfo `json:"environment"`
}

type EnvironmentInfo struct {
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	NumCPU    int    `json:"num_cpu"`
}

func NewEnvironmentInfo() EnvironmentInfo {
	return EnvironmentInfo{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
	}
}

type JobReport struct {
	JobName     string            `json:"job_name"`
	SuiteName   string            `json:"suite_name"`
	MetricNames []string          `json:"metric_names"`
	Aggregated  []AggregatedEntry `json:"aggregated"`
	PerCase     []Entry           `json:"per_case"`
}

type ReportConfig struct {
	Runs       int                `json:"runs"`
	Warmup     int                `json:"warmup"`
	Thresholds map[string]float64 `json:"thresholds,omitempty"`
}

type Entry struct {
	CaseID     string           `json:"case_id"`
	TargetName string           `json:"target_name"`
	Answer     string           `json:"answer,omitempty"`
	Metrics    []metrics.Result `json:"metrics,omitempty"`
	Latency    LatencyStats     `json:"latency"`
	Error      string           `json:"error,omitempty"`
}

type AggregatedEntry struct {
	TargetName string             `json:"target_name"`
	MeanScores map[string]float64 `json:"mean_scores"`
	PassCount  int                `json:"pass_count"`
	FailCount  int                `json:"fail_count"`
	SkipCount  int                `json:"skip_count"`
	CaseCount  int                `json:"case_count"`
	ErrorCount int                `json:"error_count"`
	Latency    LatencyStats       `json:"latency"`
}

type LatencyStats struct {
	Min         time.Duration         `json:"min"`
	Max         time.Duration         `json:"max"`
	Mean        time.Duration         `json:"mean"`
	Median      time.Duration         `json:"median"`
	Stddev      time.Duration         `json:"stddev"`
	Percentiles map[int]time.Duration `json:"percentiles"`
	SampleCount int                   `json:"sample_count"`
}

func fromRunnerLatencyStats(s runner.LatencyStats) LatencyStats {
	return LatencyStats{
		Min:         s.Min,
		Max:         s.Max,
		Mean:        s.Mean,
		Median:      s.Median,
		Stddev:      s.Stddev,
		Percentiles: s.Percentiles,
		SampleCount: s.SampleCount,
	}
}

func (s LatencyStats) P50() time.Duration { return s.Percentiles[50] }
func (s LatencyStats) P95() time.Duration { return s.Percentiles[95] }
func (s LatencyStats) P99() time.Duration { return s.Percentiles[99] }
