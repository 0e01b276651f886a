package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

type BaselineDelta struct {
	TargetName string  `json:"target_name"`
	Metric     string  `json:"metric"`
	Current    float64 `json:"current"`
	Baseline   float64 `json:"baseline"`
	Delta      float64 `json:"delta"`
}

// CompareToBaseline diffs a job's aggregated mean scores against a
// baseline keyed by target then metric. Metrics missing from either
// side are left out.
func CompareToBaseline(jr *JobReport, baseline map[string]map[string]float64) []BaselineDelta {
	var deltas []BaselineDelta
	for _, agg := range jr.Aggregated {
		base, ok := baseline[agg.TargetName]
		if !ok {
			continue
		}
		for _, name := range jr.MetricNames {
			current, haveCurrent := agg.MeanScores[name]
			baseScore, haveBase := base[name]
			if !haveCurrent || !haveBase {
				continue
			}
			deltas = append(deltas, BaselineDelta{
				TargetName: agg.TargetName,
				Metric:     name,
				Current:    current,
				Baseline:   baseScore,
				Delta:      current - baseScore,
			})
		}
	}
	return deltas
}

func WriteBaselineTable(deltas []BaselineDelta, w io.Writer) {
	if len(deltas) == 0 {
		fmt.Fprintln(w, "\nNo baseline overlap to compare.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "\nBaseline Comparison\n\n")

	header := []string{"Target", "Metric", "Current", "Baseline", "Delta"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	writeSeparator(tw, len(header))

	for _, d := range deltas {
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\t%+.4f\n",
			d.TargetName, d.Metric, d.Current, d.Baseline, d.Delta)
	}

	tw.Flush()
}
