package report

import (
	"sort"
	"time"

	"github.com/DjordjeVuckovic/rag-bench/internal/eval/runner"
	"github.com/DjordjeVuckovic/rag-bench/pkg/utils"
	"github.com/google/uuid"
)

func Generate(er *runner.EvalResult) *Report {
	r := &Report{
		Meta: Meta{
			RunID:       uuid.New(),
			Timestamp:   time.Now().UTC(),
			Environment: NewEnvironmentInfo(),
		},
		Config: ReportConfig{
			Runs:       er.Config.Runs,
			Warmup:     er.Config.WarmupRuns,
			Thresholds: er.Config.Thresholds,
		},
	}

	for _, jr := range er.Jobs {
		r.Jobs = append(r.Jobs, generateJob(jr))
	}

	return r
}

func generateJob(jr *runner.JobResult) JobReport {
	job := JobReport{
		JobName:     jr.JobName,
		SuiteName:   jr.SuiteName,
		MetricNames: collectMetricNames(jr),
	}

	for _, caseID := range jr.CaseOrder {
		targetResults := jr.Results[caseID]
		for _, name := range jr.TargetNames {
			cr := targetResults[name]
			entry := Entry{
				CaseID:     cr.CaseID,
				TargetName: cr.TargetName,
				Answer:     cr.Answer,
				Metrics:    cr.Metrics,
				Latency:    fromRunnerLatencyStats(cr.Latency),
			}
			if cr.Error != nil {
				entry.Error = cr.Error.Error()
			}
			job.PerCase = append(job.PerCase, entry)
		}
	}

	job.Aggregated = aggregate(jr, job.MetricNames)
	return job
}

func collectMetricNames(jr *runner.JobResult) []string {
	seen := make(map[string]bool)
	var names []string
	for _, targetResults := range jr.Results {
		for _, cr := range targetResults {
			for _, m := range cr.Metrics {
				if !seen[m.Metric] {
					seen[m.Metric] = true
					names = append(names, m.Metric)
				}
			}
		}
	}
	sort.Strings(names)
	return names
}

func aggregate(jr *runner.JobResult, metricNames []string) []AggregatedEntry {
	entries := make([]AggregatedEntry, 0, len(jr.TargetNames))

	for _, targetName := range jr.TargetNames {
		agg := AggregatedEntry{
			TargetName: targetName,
			MeanScores: make(map[string]float64, len(metricNames)),
		}

		scoreSums := make(map[string]float64, len(metricNames))
		scoreCounts := make(map[string]int, len(metricNames))
		var latencies []runner.LatencyStats

		for _, caseID := range jr.CaseOrder {
			cr := jr.Results[caseID][targetName]
			agg.CaseCount++

			if cr.Error != nil {
				agg.ErrorCount++
				continue
			}
			latencies = append(latencies, cr.Latency)

			for _, m := range cr.Metrics {
				if m.Skipped {
					agg.SkipCount++
					continue
				}
				if m.Passed {
					agg.PassCount++
				} else {
					agg.FailCount++
				}
				scoreSums[m.Metric] += m.Score
				scoreCounts[m.Metric]++
			}
		}

		for _, name := range metricNames {
			if n := scoreCounts[name]; n > 0 {
				agg.MeanScores[name] = utils.RoundDecimal(scoreSums[name]/float64(n), 4)
			}
		}
		agg.Latency = fromRunnerLatencyStats(runner.AggregateLatencyStats(latencies))

		entries = append(entries, agg)
	}

	return entries
}
