package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

func WriteTable(r *Report, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== Answer Quality Evaluation ===\n")

	for _, jr := range r.Jobs {
		fmt.Fprintf(tw, "\n--- Job: %s (suite %s) ---\n\n", jr.JobName, jr.SuiteName)
		writeAggregatedTable(tw, &jr)
		writeLatencyTable(tw, &jr)
		writePerCaseTable(tw, &jr)
	}

	tw.Flush()
}

func writeAggregatedTable(tw *tabwriter.Writer, jr *JobReport) {
	fmt.Fprintf(tw, "Aggregated Results (mean across %d cases)\n\n", countCases(jr))

	header := []string{"Target"}
	header = append(header, jr.MetricNames...)
	header = append(header, "Pass", "Fail", "Skip", "Errors")
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	writeSeparator(tw, len(header))

	for _, agg := range jr.Aggregated {
		row := []string{agg.TargetName}
		for _, name := range jr.MetricNames {
			if score, ok := agg.MeanScores[name]; ok {
				row = append(row, fmt.Sprintf("%.4f", score))
			} else {
				row = append(row, "N/A")
			}
		}
		row = append(row,
			fmt.Sprintf("%d", agg.PassCount),
			fmt.Sprintf("%d", agg.FailCount),
			fmt.Sprintf("%d", agg.SkipCount),
			fmt.Sprintf("%d/%d", agg.ErrorCount, agg.CaseCount),
		)
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

func writeLatencyTable(tw *tabwriter.Writer, jr *JobReport) {
	fmt.Fprintf(tw, "Target Latency (aggregated across cases)\n\n")

	header := []string{"Target", "Min", "p50", "p95", "p99", "Max", "Mean", "Stddev", "Samples"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	writeSeparator(tw, len(header))

	for _, agg := range jr.Aggregated {
		s := agg.Latency
		row := []string{
			agg.TargetName,
			fmtDuration(s.Min),
			fmtDuration(s.P50()),
			fmtDuration(s.P95()),
			fmtDuration(s.P99()),
			fmtDuration(s.Max),
			fmtDuration(s.Mean),
			fmtDuration(s.Stddev),
			fmt.Sprintf("%d", s.SampleCount),
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

func writePerCaseTable(tw *tabwriter.Writer, jr *JobReport) {
	fmt.Fprintf(tw, "Per-Case Results\n\n")

	header := []string{"Case", "Target"}
	header = append(header, jr.MetricNames...)
	header = append(header, "p50", "Status")
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	writeSeparator(tw, len(header))

	for _, e := range jr.PerCase {
		row := []string{e.CaseID, e.TargetName}

		scores := make(map[string]string, len(e.Metrics))
		status := "PASS"
		for _, m := range e.Metrics {
			switch {
			case m.Skipped:
				scores[m.Metric] = "skip"
			case m.Passed:
				scores[m.Metric] = fmt.Sprintf("%.4f", m.Score)
			default:
				scores[m.Metric] = fmt.Sprintf("%.4f!", m.Score)
				status = "FAIL"
			}
		}
		if e.Error != "" {
			status = "ERR"
		}

		for _, name := range jr.MetricNames {
			if s, ok := scores[name]; ok {
				row = append(row, s)
			} else {
				row = append(row, "-")
			}
		}
		row = append(row, fmtDuration(e.Latency.P50()), status)
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

func writeSeparator(tw *tabwriter.Writer, cols int) {
	sep := make([]string, cols)
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))
}

func countCases(jr *JobReport) int {
	if len(jr.Aggregated) == 0 {
		return 0
	}
	return jr.Aggregated[0].CaseCount
}

func fmtDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	if d < time.Millisecond {
		return fmt.Sprintf("%.1fµs", float64(d.Microseconds()))
	}
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
