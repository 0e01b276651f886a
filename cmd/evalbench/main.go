package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/rag-bench/internal/eval/judge"
	"github.com/DjordjeVuckovic/rag-bench/internal/eval/report"
	"github.com/DjordjeVuckovic/rag-bench/internal/eval/runner"
	"github.com/DjordjeVuckovic/rag-bench/internal/eval/spec"
	"github.com/DjordjeVuckovic/rag-bench/internal/eval/suite"
	"github.com/DjordjeVuckovic/rag-bench/internal/eval/target"
	"github.com/DjordjeVuckovic/rag-bench/internal/storage/pg"
	"github.com/DjordjeVuckovic/rag-bench/pkg/config/env"
)

func main() {
	cfg := parseFlags()
	ctx := context.Background()

	env.LoadDotEnv(os.Getenv("ENV"), ".env")

	switch cfg.Mode {
	case "eval":
		runEval(ctx, cfg)
	case "smoke":
		runSmoke(ctx, cfg)
	default:
		slog.Error("Unknown mode", "mode", cfg.Mode)
		os.Exit(1)
	}
}

func loadSpec(cfg cliConfig) *spec.EvalSpec {
	if cfg.SpecPath != "" {
		es, err := spec.LoadFromFile(cfg.SpecPath)
		if err != nil {
			slog.Error("Failed to load spec", "path", cfg.SpecPath, "error", err)
			os.Exit(1)
		}
		return es
	}
	return buildQuickSpec(cfg)
}

// buildQuickSpec wraps a single suite and a single chat target into a
// one-job spec, so the quick mode goes through the same runner path.
func buildQuickSpec(cfg cliConfig) *spec.EvalSpec {
	metricNames, err := cfg.parseMetrics()
	if err != nil {
		slog.Error("Invalid metrics", "error", err)
		os.Exit(1)
	}

	return &spec.EvalSpec{
		Jobs: []spec.Job{
			{
				Name:    "quick",
				Suite:   cfg.SuitePath,
				Targets: []string{"chat"},
				Metrics: metricNames,
			},
		},
		Targets: map[string]spec.Target{
			"chat": {Type: "chat", BaseURL: cfg.apiURL()},
		},
		Judge: spec.JudgeConfig{
			Provider:    "openai",
			OnError:     spec.OnErrorSkip,
			MaxAttempts: judge.DefaultMaxAttempts,
		},
	}
}

func runEval(ctx context.Context, cfg cliConfig) {
	es := loadSpec(cfg)

	if cfg.JudgeModel != "" {
		es.Judge.Model = cfg.JudgeModel
	}
	if cfg.OnJudgeError != "" {
		if cfg.OnJudgeError != spec.OnErrorSkip && cfg.OnJudgeError != spec.OnErrorFail {
			slog.Error("Invalid judge failure policy", "value", cfg.OnJudgeError)
			os.Exit(1)
		}
		es.Judge.OnError = cfg.OnJudgeError
	}

	runCfg := runner.FromSpec(es)
	if cfg.Warmup > 0 {
		runCfg.WarmupRuns = cfg.Warmup
	}
	if cfg.Runs > 1 {
		runCfg.Runs = cfg.Runs
	}

	targets, cleanup, err := target.CreateFromSpec(es.Targets)
	if err != nil {
		slog.Error("Failed to create targets", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	j, err := newJudge(es.Judge)
	if err != nil {
		slog.Error("Failed to create judge", "error", err)
		os.Exit(1)
	}

	r := runner.New(runCfg, j)
	result, err := r.RunAll(ctx, es, targets)
	if err != nil {
		slog.Error("Evaluation failed", "error", err)
		os.Exit(1)
	}

	outputReport(ctx, result, cfg)
}

func newJudge(jc spec.JudgeConfig) (judge.Judge, error) {
	if jc.Provider != "openai" {
		return nil, fmt.Errorf("unsupported judge provider %q", jc.Provider)
	}

	var opts []judge.OpenAIOption
	if jc.Model != "" {
		opts = append(opts, judge.WithModel(jc.Model))
	}
	if jc.MaxAttempts > 0 {
		opts = append(opts, judge.WithMaxAttempts(jc.MaxAttempts))
	}
	return judge.NewOpenAIJudge(opts...)
}

func outputReport(ctx context.Context, result *runner.EvalResult, cfg cliConfig) {
	rpt := report.Generate(result)
	report.WriteTable(rpt, os.Stdout)

	if cfg.PgConnStr != "" && (cfg.SaveRun || cfg.Baseline) {
		persistAndCompare(ctx, rpt, cfg)
	}

	if cfg.Output != "" {
		if err := report.WriteJSON(rpt, cfg.Output); err != nil {
			slog.Error("Failed to write JSON report", "error", err)
			os.Exit(1)
		}
		slog.Info("Report written", "path", cfg.Output)
	}
}

func persistAndCompare(ctx context.Context, rpt *report.Report, cfg cliConfig) {
	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: cfg.PgConnStr})
	if err != nil {
		slog.Error("Failed to connect to run history store", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := pg.NewHistoryStore(pool)
	if err := store.Migrate(ctx); err != nil {
		slog.Error("Failed to migrate run history store", "error", err)
		os.Exit(1)
	}

	for i := range rpt.Jobs {
		jr := &rpt.Jobs[i]

		if cfg.Baseline {
			targetNames := make([]string, 0, len(jr.Aggregated))
			for _, entry := range jr.Aggregated {
				targetNames = append(targetNames, entry.TargetName)
			}
			baseline, err := store.Baseline(ctx, jr.SuiteName, targetNames)
			if err != nil {
				slog.Error("Failed to load baseline", "suite", jr.SuiteName, "error", err)
				os.Exit(1)
			}
			report.WriteBaselineTable(report.CompareToBaseline(jr, baseline), os.Stdout)
		}

		if cfg.SaveRun {
			for _, entry := range jr.Aggregated {
				rec := &pg.RunRecord{
					SuiteName:  jr.SuiteName,
					TargetName: entry.TargetName,
					PassCount:  entry.PassCount,
					FailCount:  entry.FailCount,
					SkipCount:  entry.SkipCount,
					ErrorCount: entry.ErrorCount,
					MeanScores: entry.MeanScores,
				}
				if err := store.SaveRun(ctx, rec); err != nil {
					slog.Error("Failed to save run", "suite", jr.SuiteName, "target", entry.TargetName, "error", err)
					os.Exit(1)
				}
			}
			slog.Info("Run history saved", "suite", jr.SuiteName)
		}
	}
}

// runSmoke asks every case against every target and prints the answers.
// No judge is involved, so it needs no API key.
func runSmoke(ctx context.Context, cfg cliConfig) {
	es := loadSpec(cfg)

	targets, cleanup, err := target.CreateFromSpec(es.Targets)
	if err != nil {
		slog.Error("Failed to create targets", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	for _, job := range es.Jobs {
		s, err := suite.LoadFromFile(job.Suite)
		if err != nil {
			slog.Error("Failed to load suite", "path", job.Suite, "error", err)
			os.Exit(1)
		}

		fmt.Printf("=== Smoke: %s (%s) ===\n", job.Name, s.Name)
		for _, c := range s.Cases {
			for _, name := range job.Targets {
				tgt, ok := targets[name]
				if !ok {
					slog.Error("Target not found", "target", name, "job", job.Name)
					os.Exit(1)
				}

				answer, err := tgt.Ask(ctx, c.Question, c.Context)
				if err != nil {
					fmt.Printf("[%s/%s] ERROR: %v\n", c.ID, name, err)
					continue
				}
				fmt.Printf("[%s/%s] ok (%s)\n  Q: %s\n  A: %s\n",
					c.ID, name, answer.Latency, c.Question, answer.Text)
			}
		}
	}
}
