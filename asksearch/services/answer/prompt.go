package answer

import (
	"fmt"
	"strings"
)

const promptTemplate = `Answer the question below and suggest related follow-up questions with their answers.

Respond with ONLY a single JSON object, no text before or after it, using exactly this structure:

{
  "direct_answer": "A comprehensive, informative answer written as plain prose",
  "people_also_ask": [
    {"question": "Related question 1", "answer": "Concise but informative answer 1"},
    {"question": "Related question 2", "answer": "Concise but informative answer 2"},
    {"question": "Related question 3", "answer": "Concise but informative answer 3"},
    {"question": "Related question 4", "answer": "Concise but informative answer 4"},
    {"question": "Related question 5", "answer": "Concise but informative answer 5"}
  ]
}

Rules:
- "people_also_ask" must contain exactly %d question/answer objects.
- "direct_answer" must be plain text. Do not put JSON syntax, Markdown, code fences, field names or remarks about the format inside it.
- Do not add meta-commentary such as "Here is the JSON" anywhere.

Question: %s`

// BuildPrompt returns the single user message sent upstream for query.
func BuildPrompt(query string) string {
	return fmt.Sprintf(promptTemplate, FillerSize, strings.TrimSpace(query))
}
