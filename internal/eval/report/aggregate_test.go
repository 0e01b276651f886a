package report

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/rag-bench/internal/eval/metrics"
	"github.com/DjordjeVuckovic/rag-bench/internal/eval/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *runner.EvalResult {
	lat := runner.ComputeLatencyStats([]time.Duration{100 * time.Millisecond})

	return &runner.EvalResult{
		Config: runner.Config{Runs: 1},
		Jobs: []*runner.JobResult{
			{
				JobName:     "qa",
				SuiteName:   "qa-quality",
				CaseOrder:   []string{"c1", "c2"},
				TargetNames: []string{"local"},
				Results: map[string]map[string]runner.CaseResult{
					"c1": {
						"local": {
							CaseID:     "c1",
							TargetName: "local",
							Answer:     "a1",
							Latency:    lat,
							Metrics: []metrics.Result{
								{Metric: "coherence", Score: 0.8, Threshold: 0.7, Passed: true},
								{Metric: "faithfulness", Score: 0.6, Threshold: 0.7, Passed: false},
							},
						},
					},
					"c2": {
						"local": {
							CaseID:     "c2",
							TargetName: "local",
							Answer:     "a2",
							Latency:    lat,
							Metrics: []metrics.Result{
								{Metric: "coherence", Score: 0.6, Threshold: 0.7, Passed: false},
								{Metric: "faithfulness", Skipped: true, Reason: "judge unavailable"},
							},
						},
					},
				},
			},
		},
	}
}

func TestGenerate(t *testing.T) {
	r := Generate(sampleResult())

	require.Len(t, r.Jobs, 1)
	jr := r.Jobs[0]

	assert.Equal(t, []string{"coherence", "faithfulness"}, jr.MetricNames)
	assert.Len(t, jr.PerCase, 2)
	assert.NotEqual(t, "", r.Meta.RunID.String())
	assert.NotZero(t, r.Meta.Timestamp)

	require.Len(t, jr.Aggregated, 1)
	agg := jr.Aggregated[0]
	assert.Equal(t, "local", agg.TargetName)
	assert.Equal(t, 2, agg.CaseCount)
	assert.Equal(t, 0, agg.ErrorCount)
	assert.Equal(t, 1, agg.PassCount)
	assert.Equal(t, 2, agg.FailCount)
	assert.Equal(t, 1, agg.SkipCount)
	assert.InDelta(t, 0.7, agg.MeanScores["coherence"], 1e-9)
	// skipped faithfulness excluded from the mean
	assert.InDelta(t, 0.6, agg.MeanScores["faithfulness"], 1e-9)
	assert.Equal(t, 2, agg.Latency.SampleCount)
}

func TestGenerate_CaseError(t *testing.T) {
	er := sampleResult()
	er.Jobs[0].Results["c2"]["local"] = runner.CaseResult{
		CaseID:     "c2",
		TargetName: "local",
		Error:      errors.New("chat status 502: bad gateway"),
	}

	r := Generate(er)
	agg := r.Jobs[0].Aggregated[0]
	assert.Equal(t, 1, agg.ErrorCount)

	var found bool
	for _, e := range r.Jobs[0].PerCase {
		if e.CaseID == "c2" {
			found = true
			assert.Contains(t, e.Error, "502")
		}
	}
	assert.True(t, found)
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(Generate(sampleResult()), &buf)
	out := buf.String()

	assert.Contains(t, out, "Answer Quality Evaluation")
	assert.Contains(t, out, "qa-quality")
	assert.Contains(t, out, "coherence")
	assert.Contains(t, out, "c1")
	assert.Contains(t, out, "FAIL")
}

func TestCompareToBaseline(t *testing.T) {
	r := Generate(sampleResult())
	jr := &r.Jobs[0]

	t.Run("deltas computed", func(t *testing.T) {
		deltas := CompareToBaseline(jr, map[string]map[string]float64{
			"local": {"coherence": 0.75, "faithfulness": 0.5},
		})
		require.Len(t, deltas, 2)
		assert.Equal(t, "coherence", deltas[0].Metric)
		assert.InDelta(t, -0.05, deltas[0].Delta, 1e-9)
		assert.InDelta(t, 0.1, deltas[1].Delta, 1e-9)
	})

	t.Run("unknown target skipped", func(t *testing.T) {
		deltas := CompareToBaseline(jr, map[string]map[string]float64{
			"staging": {"coherence": 0.75},
		})
		assert.Empty(t, deltas)
	})

	t.Run("table output", func(t *testing.T) {
		var buf bytes.Buffer
		WriteBaselineTable(CompareToBaseline(jr, map[string]map[string]float64{
			"local": {"coherence": 0.75},
		}), &buf)
		assert.Contains(t, buf.String(), "Baseline Comparison")
		assert.Contains(t, buf.String(), "-0.05")
	})

	t.Run("empty table output", func(t *testing.T) {
		var buf bytes.Buffer
		WriteBaselineTable(nil, &buf)
		assert.Contains(t, buf.String(), "No baseline overlap")
	})
}
