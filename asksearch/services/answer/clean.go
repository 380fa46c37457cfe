package answer

import (
	"encoding/json"
	"regexp"
	"strings"

	"asksearch/asksearch/utils/jsonutils"
)

// minPlainTextLen is the shortest residue PlainText keeps before giving up
// and returning the raw completion.
const minPlainTextLen = 10

var (
	reLeadingArtifacts = regexp.MustCompile(`(?i)^[\s{\[]*"?direct_answer"?\s*:\s*`)
	reLeadingBraces    = regexp.MustCompile(`^[\s{]+`)
	reLabelWords       = regexp.MustCompile(`(?i)\bjson\b|\bdirect[ _]answer\b|\bpeople[ _]also[ _]ask\b`)
	reSpaceRuns        = regexp.MustCompile(`[ \t]{2,}`)
	reFieldNames       = regexp.MustCompile(`"(direct_answer|people_also_ask|question|answer)"\s*:`)
	reStructural       = regexp.MustCompile(`[{}\[\]]`)
	reDirectField      = regexp.MustCompile(`"direct_answer"\s*:\s*"`)
)

// CleanDirectAnswer scrubs leftovers of the JSON envelope from a direct
// answer. It repeats until nothing changes, so applying it twice gives the
// same result as applying it once.
func CleanDirectAnswer(s string) string {
	for {
		next := cleanPass(s)
		if next == s {
			return s
		}
		s = next
	}
}

// every step only deletes characters, so a pass that changes s shortens it
func cleanPass(s string) string {
	s = jsonutils.StripFences(s)
	s = reLeadingArtifacts.ReplaceAllString(s, "")
	s = reLeadingBraces.ReplaceAllString(s, "")
	s = reLabelWords.ReplaceAllString(s, "")
	s = strings.TrimLeft(s, " \t\r\n:")
	s = reSpaceRuns.ReplaceAllString(s, " ")
	return strings.Trim(s, " \t\r\n\"")
}

// PlainText pulls readable prose out of a completion that failed to parse.
// When almost nothing survives it returns raw unchanged.
func PlainText(raw string) string {
	if direct, ok := directAnswerField(raw); ok && len(strings.TrimSpace(direct)) >= minPlainTextLen {
		return strings.TrimSpace(direct)
	}

	s := jsonutils.StripInvisible(raw)
	s = jsonutils.StripFences(s)
	s = reFieldNames.ReplaceAllString(s, "")
	s = reStructural.ReplaceAllString(s, "")
	s = reSpaceRuns.ReplaceAllString(s, " ")
	s = strings.Trim(s, " \t\r\n\",")

	if len(s) < minPlainTextLen {
		return raw
	}
	return s
}

// directAnswerField reads the "direct_answer" string value straight out of
// text that is not valid JSON as a whole, e.g. a completion cut off by the
// token limit. An unterminated value is returned up to the end of input.
func directAnswerField(raw string) (string, bool) {
	loc := reDirectField.FindStringIndex(raw)
	if loc == nil {
		return "", false
	}
	start := loc[1] - 1 // opening quote

	escaped := false
	for i := start + 1; i < len(raw); i++ {
		c := raw[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			var v string
			if err := json.Unmarshal([]byte(raw[start:i+1]), &v); err != nil {
				return raw[start+1 : i], true
			}
			return v, true
		}
	}
	return raw[start+1:], true
}
