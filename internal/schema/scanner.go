package schema

import (
	"encoding/json"
	"strings"
)

// ExtractJSON locates and decodes the first JSON object in a raw model
// response. Models frequently wrap payloads in markdown fences or surround
// them with prose, so extraction runs in three stages: direct parse,
// fence-stripped parse, then a brace-balanced candidate scan.
//
// On failure the returned error is an *InvalidModelOutputError carrying the
// raw response for the reformat affordance.
func ExtractJSON(raw string, out interface{}) error {
	trimmed := strings.TrimSpace(raw)

	if err := json.Unmarshal([]byte(trimmed), out); err == nil {
		return nil
	}

	stripped := stripMarkdownFences(trimmed)
	var lastErr error
	if err := json.Unmarshal([]byte(stripped), out); err == nil {
		return nil
	} else {
		lastErr = err
	}

	// Largest candidate first: the payload object usually encloses any
	// smaller objects the model emitted.
	candidates := findJSONCandidates(trimmed)
	for i := len(candidates) - 1; i >= 0; i-- {
		if err := json.Unmarshal([]byte(candidates[i]), out); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}

	return &InvalidModelOutputError{Raw: raw, Err: lastErr}
}

// stripMarkdownFences removes ```json ... ``` wrapping.
func stripMarkdownFences(s string) string {
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// findJSONCandidates scans the input string for top-level JSON object
// candidates. It handles nested braces and string escaping to correctly
// identify boundaries.
//
// Note: it is safe to iterate bytes for ASCII delimiters ({, }, ", \)
// because UTF-8 guarantees ASCII bytes never appear inside a multi-byte
// sequence.
func findJSONCandidates(s string) []string {
	var candidates []string
	var depth int
	start := -1
	var inString bool
	var escape bool

	for i := 0; i < len(s); i++ {
		b := s[i]

		if escape {
			escape = false
			continue
		}

		if inString {
			if b == '\\' {
				escape = true
			} else if b == '"' {
				inString = false
			}
			continue
		}

		if b == '"' {
			inString = true
			continue
		}

		if b == '{' {
			if depth == 0 {
				start = i
			}
			depth++
		} else if b == '}' {
			if depth > 0 {
				depth--
				if depth == 0 && start != -1 {
					candidates = append(candidates, s[start:i+1])
					start = -1
				}
			}
		}
	}

	return candidates
}
