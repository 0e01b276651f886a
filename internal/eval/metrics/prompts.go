package metrics

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a strict evaluator of question-answering systems. ` +
	`Always answer with compact JSON exactly in the shape requested, with no ` +
	`surrounding prose and no markdown fences.`

func statementsPrompt(text string) string {
	return fmt.Sprintf(`Break the following text into a list of self-contained factual statements.
Respond as {"statements": ["..."]}.

Text:
%s`, text)
}

func relevancyVerdictsPrompt(question string, statements []string) string {
	return fmt.Sprintf(`For each numbered statement below, decide whether it is relevant to answering the question.
Answer "yes" if relevant, "no" if irrelevant, "idk" if ambiguous.
Respond as {"verdicts": [{"verdict": "...", "reason": "..."}]} with exactly one verdict per statement, in order.

Question: %s

Statements:
%s`, question, numbered(statements))
}

func faithfulnessVerdictsPrompt(contexts []string, claims []string) string {
	return fmt.Sprintf(`For each numbered claim below, decide whether it is supported by the retrieval context.
Answer "yes" if supported, "no" if it contradicts the context, "idk" if the context does not mention it.
Respond as {"verdicts": [{"verdict": "...", "reason": "..."}]} with exactly one verdict per claim, in order.

Retrieval context:
%s

Claims:
%s`, strings.Join(contexts, "\n\n"), numbered(claims))
}

func contextualRelevancyVerdictsPrompt(question string, statements []string) string {
	return fmt.Sprintf(`For each numbered context statement below, decide whether it is useful for answering the question.
Answer "yes" or "no" only.
Respond as {"verdicts": [{"verdict": "...", "reason": "..."}]} with exactly one verdict per statement, in order.

Question: %s

Context statements:
%s`, question, numbered(statements))
}

func contextualPrecisionVerdictsPrompt(question, reference string, contexts []string) string {
	return fmt.Sprintf(`For each numbered context passage below, decide whether it was useful for arriving at the reference answer to the question.
Answer "yes" or "no" only.
Respond as {"verdicts": [{"verdict": "...", "reason": "..."}]} with exactly one verdict per passage, in order.

Question: %s

Reference answer: %s

Context passages:
%s`, question, reference, numbered(contexts))
}

func contextualRecallVerdictsPrompt(contexts []string, sentences []string) string {
	return fmt.Sprintf(`For each numbered sentence of the reference answer below, decide whether it can be attributed to the retrieval context.
Answer "yes" if the context backs it, "no" otherwise.
Respond as {"verdicts": [{"verdict": "...", "reason": "..."}]} with exactly one verdict per sentence, in order.

Retrieval context:
%s

Reference sentences:
%s`, strings.Join(contexts, "\n\n"), numbered(sentences))
}

func coherencePrompt(question, answer string) string {
	return fmt.Sprintf(`Grade how coherent the following answer is: logical flow, consistent terminology, no contradictions or abrupt jumps.
Respond as {"score": <0.0-1.0>, "reason": "..."}.

Question: %s

Answer:
%s`, question, answer)
}

func numbered(items []string) string {
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}
	return b.String()
}
