package chatapi

import (
	"strings"
	"unicode"
)

// Answer produces an extractive answer: the context sentence with the
// highest word overlap with the question. It stands in for a real model
// so the harness can run end to end without one.
func Answer(question, context string) string {
	sentences := splitSentences(context)
	if len(sentences) == 0 {
		return strings.TrimSpace(context)
	}

	questionWords := wordSet(question)

	best := sentences[0]
	bestScore := 0
	for _, sentence := range sentences {
		score := 0
		for word := range wordSet(sentence) {
			if questionWords[word] {
				score++
			}
		}
		if score > bestScore {
			best = sentence
			bestScore = score
		}
	}

	return best
}

func splitSentences(text string) []string {
	var sentences []string
	var b strings.Builder
	for _, r := range text {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(b.String()); s != "" {
				sentences = append(sentences, s)
			}
			b.Reset()
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "does": true,
	"for": true, "in": true, "is": true, "it": true, "of": true,
	"the": true, "to": true, "what": true, "which": true, "who": true,
}

func wordSet(text string) map[string]bool {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	set := make(map[string]bool, len(words))
	for _, w := range words {
		if !stopwords[w] {
			set[w] = true
		}
	}
	return set
}
