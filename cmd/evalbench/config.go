package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/DjordjeVuckovic/rag-bench/internal/eval/metrics"
)

const defaultAPIURL = "http://localhost:8000"

type cliConfig struct {
	SpecPath     string
	SuitePath    string
	APIURL       string
	Metrics      string
	JudgeModel   string
	OnJudgeError string
	Warmup       int
	Runs         int
	Output       string
	Mode         string
	PgConnStr    string
	SaveRun      bool
	Baseline     bool
}

func parseFlags() cliConfig {
	cfg := cliConfig{}

	flag.StringVar(&cfg.SpecPath, "spec", "", "Path to eval spec YAML (multi-job mode)")
	flag.StringVar(&cfg.SuitePath, "suite", "configs/eval/qa_quality_v1.yaml", "Path to eval suite YAML (quick single-job mode)")
	flag.StringVar(&cfg.APIURL, "api-url", "", "Chat target base URL (quick mode, defaults to API_URL env)")
	flag.StringVar(&cfg.Metrics, "metrics", "", "Metric names, comma-separated (quick mode, defaults to all)")
	flag.StringVar(&cfg.JudgeModel, "judge-model", "", "Judge model name (overrides spec and OPENAI_MODEL)")
	flag.StringVar(&cfg.OnJudgeError, "on-judge-error", "", "Judge failure policy: skip or fail")
	flag.IntVar(&cfg.Warmup, "warmup", 0, "Number of warmup requests per case before measurement")
	flag.IntVar(&cfg.Runs, "runs", 1, "Number of measured requests per case")
	flag.StringVar(&cfg.Output, "output", "", "Output path for JSON report")
	flag.StringVar(&cfg.Mode, "mode", "eval", "Run mode: eval or smoke")
	flag.StringVar(&cfg.PgConnStr, "pg", "", "PostgreSQL connection string for run history")
	flag.BoolVar(&cfg.SaveRun, "save-run", false, "Persist aggregated results to run history (requires --pg)")
	flag.BoolVar(&cfg.Baseline, "baseline", false, "Compare against the latest stored run (requires --pg)")

	flag.Parse()
	return cfg
}

func (c cliConfig) apiURL() string {
	if c.APIURL != "" {
		return c.APIURL
	}
	if v := os.Getenv("API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

func (c cliConfig) parseMetrics() ([]string, error) {
	if c.Metrics == "" {
		return nil, nil
	}
	var names []string
	for _, p := range strings.Split(c.Metrics, ",") {
		name := strings.TrimSpace(p)
		if name == "" {
			continue
		}
		if _, ok := metrics.DefaultThresholds[name]; !ok {
			return nil, fmt.Errorf("unknown metric %q", name)
		}
		names = append(names, name)
	}
	return names, nil
}
