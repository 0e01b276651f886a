package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/rag-bench/internal/eval/judge"
	"github.com/DjordjeVuckovic/rag-bench/internal/eval/metrics"
	"github.com/DjordjeVuckovic/rag-bench/internal/eval/spec"
	"github.com/DjordjeVuckovic/rag-bench/internal/eval/suite"
	"github.com/DjordjeVuckovic/rag-bench/internal/eval/target"
)

type Runner struct {
	config Config
	judge  judge.Judge
}

func New(cfg Config, j judge.Judge) *Runner {
	if len(cfg.MetricNames) == 0 {
		cfg.MetricNames = metrics.DefaultNames()
	}
	if cfg.Runs < 1 {
		cfg.Runs = 1
	}
	return &Runner{config: cfg, judge: j}
}

func (r *Runner) RunAll(
	ctx context.Context,
	es *spec.EvalSpec,
	targets map[string]target.Target,
) (*EvalResult, error) {
	er := &EvalResult{Config: r.config}

	for _, job := range es.Jobs {
		loaded, err := suite.LoadFromFile(job.Suite)
		if err != nil {
			return nil, fmt.Errorf("load suite for job %q: %w", job.Name, err)
		}

		jr, err := r.RunJob(ctx, job, loaded, targets)
		if err != nil {
			return nil, fmt.Errorf("run job %q: %w", job.Name, err)
		}
		er.Jobs = append(er.Jobs, jr)
	}

	return er, nil
}

func (r *Runner) RunJob(
	ctx context.Context,
	job spec.Job,
	s *suite.Suite,
	targets map[string]target.Target,
) (*JobResult, error) {
	jobTargets := make(map[string]target.Target)
	for _, name := range job.Targets {
		tgt, ok := targets[name]
		if !ok {
			return nil, fmt.Errorf("target %q not found", name)
		}
		jobTargets[name] = tgt
	}

	metricNames := job.Metrics
	if len(metricNames) == 0 {
		metricNames = r.config.MetricNames
	}

	jr := &JobResult{
		JobName:     job.Name,
		SuiteName:   s.Name,
		Results:     make(map[string]map[string]CaseResult),
		TargetNames: job.Targets,
	}

	for i := range s.Cases {
		c := &s.Cases[i]
		jr.CaseOrder = append(jr.CaseOrder, c.ID)
		jr.Results[c.ID] = make(map[string]CaseResult)

		for _, name := range job.Targets {
			cr := r.runCase(ctx, jr.JobName, c, jobTargets[name], metricNames)
			jr.Results[c.ID][name] = cr

			if cr.Error != nil {
				slog.Warn("case failed", "case", c.ID, "target", name, "error", cr.Error)
			}
		}
	}

	return jr, nil
}

func (r *Runner) runCase(
	ctx context.Context,
	jobName string,
	c *suite.Case,
	tgt target.Target,
	metricNames []string,
) CaseResult {
	cr := CaseResult{
		CaseID:     c.ID,
		CaseName:   c.Name,
		JobName:    jobName,
		TargetName: tgt.Name(),
	}

	answer, latency, err := r.ask(ctx, tgt, c)
	if err != nil {
		cr.Error = err
		return cr
	}
	cr.Answer = answer
	cr.Latency = latency

	tc := &metrics.TestCase{
		Input:            c.Question,
		ActualOutput:     answer,
		ExpectedOutput:   c.ExpectedOutput,
		RetrievalContext: c.Context,
	}

	for _, name := range metricNames {
		m, err := metrics.New(name, c.Threshold(name, r.config.threshold(name)))
		if err != nil {
			cr.Metrics = append(cr.Metrics, metrics.Result{
				Metric:  name,
				Skipped: true,
				Reason:  err.Error(),
			})
			continue
		}
		if kc, ok := m.(*metrics.KeywordCoverage); ok {
			kc.Keywords = c.Keywords
		}

		res, err := m.Evaluate(ctx, r.judge, tc)
		if err != nil {
			cr.Metrics = append(cr.Metrics, r.judgeErrorResult(m, err))
			continue
		}
		cr.Metrics = append(cr.Metrics, *res)
	}

	return cr
}

func (r *Runner) ask(ctx context.Context, tgt target.Target, c *suite.Case) (string, LatencyStats, error) {
	for i := 0; i < r.config.WarmupRuns; i++ {
		_, _ = tgt.Ask(ctx, c.Question, c.Context)
	}

	var latencies []time.Duration
	var lastAnswer *target.Answer
	var lastErr error

	for i := 0; i < r.config.Runs; i++ {
		answer, err := tgt.Ask(ctx, c.Question, c.Context)
		if err != nil {
			lastErr = err
			continue
		}
		lastAnswer = answer
		latencies = append(latencies, answer.Latency)
	}

	if lastAnswer == nil {
		return "", LatencyStats{}, lastErr
	}

	return lastAnswer.Text, ComputeLatencyStats(latencies), nil
}

// judgeErrorResult applies the on-error policy: by default an evaluation
// the judge could not complete is skipped, the strict policy fails it.
func (r *Runner) judgeErrorResult(m metrics.Metric, err error) metrics.Result {
	if r.config.OnJudgeError == spec.OnErrorFail {
		return metrics.Result{
			Metric:    m.Name(),
			Threshold: m.Threshold(),
			Passed:    false,
			Reason:    err.Error(),
		}
	}

	slog.Warn("skipping metric, judge unavailable", "metric", m.Name(), "error", err)
	return metrics.Result{
		Metric:    m.Name(),
		Threshold: m.Threshold(),
		Skipped:   true,
		Reason:    err.Error(),
	}
}
