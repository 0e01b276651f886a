package judge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerdicts(t *testing.T) {
	t.Run("plain JSON", func(t *testing.T) {
		verdicts, err := ParseVerdicts(`{"verdicts": [{"verdict": "yes"}, {"verdict": "no", "reason": "off topic"}]}`)
		require.NoError(t, err)
		require.Len(t, verdicts, 2)
		assert.True(t, verdicts[0].Is(VerdictYes))
		assert.True(t, verdicts[1].Is(VerdictNo))
		assert.Equal(t, "off topic", verdicts[1].Reason)
	})

	t.Run("code fenced JSON", func(t *testing.T) {
		raw := "```json\n{\"verdicts\": [{\"verdict\": \"idk\"}]}\n```"
		verdicts, err := ParseVerdicts(raw)
		require.NoError(t, err)
		require.Len(t, verdicts, 1)
		assert.True(t, verdicts[0].Is(VerdictIdk))
	})

	t.Run("case insensitive verdict values", func(t *testing.T) {
		verdicts, err := ParseVerdicts(`{"verdicts": [{"verdict": "Yes"}, {"verdict": "NO"}]}`)
		require.NoError(t, err)
		assert.True(t, verdicts[0].Is(VerdictYes))
		assert.True(t, verdicts[1].Is(VerdictNo))
	})

	t.Run("unknown verdict value", func(t *testing.T) {
		_, err := ParseVerdicts(`{"verdicts": [{"verdict": "maybe"}]}`)
		assert.ErrorContains(t, err, "unknown value")
	})

	t.Run("not JSON", func(t *testing.T) {
		_, err := ParseVerdicts("the answer looks relevant to me")
		assert.Error(t, err)
	})

	t.Run("empty list", func(t *testing.T) {
		verdicts, err := ParseVerdicts(`{"verdicts": []}`)
		require.NoError(t, err)
		assert.Empty(t, verdicts)
	})
}

func TestParseStatements(t *testing.T) {
	t.Run("plain JSON", func(t *testing.T) {
		statements, err := ParseStatements(`{"statements": ["Python is a language.", "Guido created it."]}`)
		require.NoError(t, err)
		assert.Len(t, statements, 2)
	})

	t.Run("fenced without language tag", func(t *testing.T) {
		raw := "```\n{\"statements\": [\"one\"]}\n```"
		statements, err := ParseStatements(raw)
		require.NoError(t, err)
		assert.Equal(t, []string{"one"}, statements)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := ParseStatements(`{"statements": "not a list"}`)
		assert.Error(t, err)
	})
}

func TestParseScore(t *testing.T) {
	t.Run("valid score", func(t *testing.T) {
		s, err := ParseScore(`{"score": 0.85, "reason": "well structured"}`)
		require.NoError(t, err)
		assert.Equal(t, 0.85, s.Score)
		assert.Equal(t, "well structured", s.Reason)
	})

	t.Run("clamps above one", func(t *testing.T) {
		s, err := ParseScore(`{"score": 7}`)
		require.NoError(t, err)
		assert.Equal(t, 1.0, s.Score)
	})

	t.Run("clamps below zero", func(t *testing.T) {
		s, err := ParseScore(`{"score": -0.2}`)
		require.NoError(t, err)
		assert.Equal(t, 0.0, s.Score)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := ParseScore("score: high")
		assert.Error(t, err)
	})
}
