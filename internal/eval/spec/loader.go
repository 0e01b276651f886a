package spec

import (
	"fmt"
	"os"

	"github.com/DjordjeVuckovic/rag-bench/internal/apperr"
	"gopkg.in/yaml.v3"
)

func LoadFromFile(path string) (*EvalSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*EvalSpec, error) {
	var s EvalSpec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, apperr.NewValidationWrap("parse spec YAML", err)
	}
	if err := validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

var validTargetTypes = map[string]bool{
	"chat": true,
}

var validMetricNames = map[string]bool{
	"answer_relevancy":     true,
	"faithfulness":         true,
	"contextual_relevancy": true,
	"contextual_precision": true,
	"contextual_recall":    true,
	"coherence":            true,
	"keyword_coverage":     true,
}

func validate(s *EvalSpec) error {
	if len(s.Jobs) == 0 {
		return apperr.NewValidation("spec has no jobs")
	}
	if len(s.Targets) == 0 {
		return apperr.NewValidation("spec has no targets")
	}
	for i, j := range s.Jobs {
		if j.Name == "" {
			return apperr.NewValidation(fmt.Sprintf("job at index %d has no name", i))
		}
		if j.Suite == "" {
			return apperr.NewValidation(fmt.Sprintf("job %q has no suite", j.Name))
		}
		if len(j.Targets) == 0 {
			return apperr.NewValidation(fmt.Sprintf("job %q has no targets", j.Name))
		}
		for _, targetRef := range j.Targets {
			if _, ok := s.Targets[targetRef]; !ok {
				return apperr.NewValidation(fmt.Sprintf("job %q references unknown target %q", j.Name, targetRef))
			}
		}
		for _, m := range j.Metrics {
			if !validMetricNames[m] {
				return apperr.NewValidation(fmt.Sprintf("job %q references unknown metric %q", j.Name, m))
			}
		}
	}
	for name, target := range s.Targets {
		if target.Type == "" {
			return apperr.NewValidation(fmt.Sprintf("target %q has no type", name))
		}
		if !validTargetTypes[target.Type] {
			return apperr.NewValidation(fmt.Sprintf("target %q has invalid type %q", name, target.Type))
		}
		if target.BaseURL == "" {
			return apperr.NewValidation(fmt.Sprintf("target %q has no base_url", name))
		}
	}
	switch s.Judge.OnError {
	case "", OnErrorSkip, OnErrorFail:
	default:
		return apperr.NewValidation(fmt.Sprintf("judge on_error must be %q or %q, got %q", OnErrorSkip, OnErrorFail, s.Judge.OnError))
	}
	for metric, threshold := range s.Metrics.Thresholds {
		if !validMetricNames[metric] {
			return apperr.NewValidation(fmt.Sprintf("thresholds reference unknown metric %q", metric))
		}
		if threshold < 0 || threshold > 1 {
			return apperr.NewValidation(fmt.Sprintf("threshold for %q must be in [0,1], got %v", metric, threshold))
		}
	}

	applyDefaults(s)
	return nil
}

func applyDefaults(s *EvalSpec) {
	if s.Judge.Provider == "" {
		s.Judge.Provider = "openai"
	}
	if s.Judge.OnError == "" {
		s.Judge.OnError = OnErrorSkip
	}
	if s.Judge.MaxAttempts <= 0 {
		s.Judge.MaxAttempts = 3
	}
	if s.Runs.Iterations <= 0 {
		s.Runs.Iterations = 1
	}
	for name := range s.Targets {
		target := s.Targets[name]
		if target.TimeoutSeconds <= 0 {
			target.TimeoutSeconds = 30
			s.Targets[name] = target
		}
	}
}
