package judge

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Verdict is one yes/no/idk decision from the judge.
type Verdict struct {
	Verdict string `json:"verdict"`
	Reason  string `json:"reason,omitempty"`
}

const (
	VerdictYes = "yes"
	VerdictNo  = "no"
	VerdictIdk = "idk"
)

func (v Verdict) Is(kind string) bool {
	return strings.EqualFold(strings.TrimSpace(v.Verdict), kind)
}

type verdictsPayload struct {
	Verdicts []Verdict `json:"verdicts"`
}

type statementsPayload struct {
	Statements []string `json:"statements"`
}

// Score is a single rubric grade with an explanation.
type Score struct {
	Score  float64 `json:"score"`
	Reason string  `json:"reason,omitempty"`
}

// ParseVerdicts decodes a {"verdicts": [...]} payload, tolerating
// markdown code fences around the JSON.
func ParseVerdicts(raw string) ([]Verdict, error) {
	var p verdictsPayload
	if err := json.Unmarshal([]byte(stripFences(raw)), &p); err != nil {
		return nil, fmt.Errorf("parse verdicts: %w", err)
	}
	for i, v := range p.Verdicts {
		if !v.Is(VerdictYes) && !v.Is(VerdictNo) && !v.Is(VerdictIdk) {
			return nil, fmt.Errorf("parse verdicts: verdict %d has unknown value %q", i, v.Verdict)
		}
	}
	return p.Verdicts, nil
}

// ParseStatements decodes a {"statements": [...]} payload.
func ParseStatements(raw string) ([]string, error) {
	var p statementsPayload
	if err := json.Unmarshal([]byte(stripFences(raw)), &p); err != nil {
		return nil, fmt.Errorf("parse statements: %w", err)
	}
	return p.Statements, nil
}

// ParseScore decodes a {"score": ..., "reason": ...} payload and clamps
// the score into [0,1].
func ParseScore(raw string) (*Score, error) {
	var s Score
	if err := json.Unmarshal([]byte(stripFences(raw)), &s); err != nil {
		return nil, fmt.Errorf("parse score: %w", err)
	}
	if s.Score < 0 {
		s.Score = 0
	}
	if s.Score > 1 {
		s.Score = 1
	}
	return &s, nil
}

// stripFences removes a surrounding markdown code fence, which chat
// models add despite instructions not to.
func stripFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// drop the language tag line, e.g. ```json
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
