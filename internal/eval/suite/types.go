package suite

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type Suite struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`
	Cases       []Case `yaml:"cases"`
}

type Case struct {
	ID             string             `yaml:"id"`
	Name           string             `yaml:"name,omitempty"`
	Question       string             `yaml:"question"`
	Context        ContextBlock       `yaml:"context"`
	ExpectedOutput string             `yaml:"expected_output,omitempty"`
	Keywords       []string           `yaml:"expected_keywords,omitempty"`
	Thresholds     map[string]float64 `yaml:"thresholds,omitempty"`
}

// ContextBlock accepts either a single YAML scalar or a list of strings,
// so suites can write one context paragraph without list syntax.
type ContextBlock []string

func (cb *ContextBlock) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var single string
		if err := node.Decode(&single); err != nil {
			return err
		}
		*cb = ContextBlock{single}
		return nil
	case yaml.SequenceNode:
		var multi []string
		if err := node.Decode(&multi); err != nil {
			return err
		}
		*cb = ContextBlock(multi)
		return nil
	default:
		return fmt.Errorf("context must be a string or a list of strings")
	}
}

// Threshold returns the per-case override for a metric, falling back to
// the given default.
func (c *Case) Threshold(metric string, fallback float64) float64 {
	if v, ok := c.Thresholds[metric]; ok {
		return v
	}
	return fallback
}
