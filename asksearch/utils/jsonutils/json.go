package jsonutils

import (
	"encoding/json"
	"regexp"
	"strings"
)

var reFence = regexp.MustCompile("(?i)```[a-z0-9_-]*")

// Repair tries to turn LLM output into a parseable JSON object.
//
// Steps, in order:
// 1. locate the first balanced {...} object (string aware)
// 2. strip Markdown code-fence markers
// 3. drop trailing commas before } or ]
//
// ok is false when the input contains no '{' at all. The result is not
// guaranteed to be valid JSON; callers still have to parse it.
func Repair(input string) (string, bool) {
	input = StripInvisible(input)

	obj, ok := FirstObject(input)
	if !ok {
		return "", false
	}
	obj = StripFences(obj)
	obj = RemoveTrailingCommas(obj)

	return strings.TrimSpace(obj), true
}

// StripInvisible removes BOMs and zero-width characters models like to emit.
func StripInvisible(input string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r == '\uFEFF' || r == '\u200B' || r == '\u200C' || r == '\u200D' {
			return -1
		}
		return r
	}, input))
}

// StripFences removes ``` markers, including an optional language tag.
func StripFences(input string) string {
	return reFence.ReplaceAllString(input, "")
}

// FirstObject returns the first {...} substring whose braces balance,
// ignoring braces that appear inside JSON string literals. When the object
// never closes it falls back to everything between the first '{' and the
// last '}'.
func FirstObject(input string) (string, bool) {
	start := strings.IndexByte(input, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(input); i++ {
		c := input[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return input[start : i+1], true
			}
		}
	}

	end := strings.LastIndexByte(input, '}')
	if end <= start {
		return input[start:], true
	}
	return input[start : end+1], true
}

// RemoveTrailingCommas drops a comma when the next non-space character
// closes an object or array. Commas inside string literals are kept.
func RemoveTrailingCommas(input string) string {
	var b strings.Builder
	b.Grow(len(input))

	inString := false
	escaped := false
	for i := 0; i < len(input); i++ {
		c := input[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			b.WriteByte(c)
			continue
		}
		if c == '"' {
			inString = true
			b.WriteByte(c)
			continue
		}
		if c == ',' {
			j := i + 1
			for j < len(input) && isSpace(input[j]) {
				j++
			}
			if j < len(input) && (input[j] == '}' || input[j] == ']') {
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}

// ToJSON serializes a Go value to a JSON string with indentation.
// Returns an empty string if serialization fails.
func ToJSON(v interface{}) string {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(bytes))
}
