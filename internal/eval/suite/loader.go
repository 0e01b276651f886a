package suite

import (
	"fmt"
	"os"

	"github.com/DjordjeVuckovic/rag-bench/internal/apperr"
	"gopkg.in/yaml.v3"
)

func LoadFromFile(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Suite, error) {
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, apperr.NewValidationWrap("parse suite YAML", err)
	}
	if err := validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func validate(s *Suite) error {
	if s.Name == "" {
		return apperr.NewValidation("suite has no name")
	}
	if len(s.Cases) == 0 {
		return apperr.NewValidation("suite has no cases")
	}

	seen := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		if c.ID == "" {
			return apperr.NewValidation(fmt.Sprintf("case at index %d has no id", i))
		}
		if seen[c.ID] {
			return apperr.NewValidation(fmt.Sprintf("duplicate case id %q", c.ID))
		}
		seen[c.ID] = true
		if c.Question == "" {
			return apperr.NewValidation(fmt.Sprintf("case %q has no question", c.ID))
		}
		if len(c.Context) == 0 {
			return apperr.NewValidation(fmt.Sprintf("case %q has no context", c.ID))
		}
		for metric, threshold := range c.Thresholds {
			if threshold < 0 || threshold > 1 {
				return apperr.NewValidation(fmt.Sprintf("case %q threshold for %q must be in [0,1], got %v", c.ID, metric, threshold))
			}
		}
	}

	return nil
}
