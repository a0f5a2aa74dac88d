package common

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// objectSpan is greedy: it runs from the first '{' to the last '}' in the reply.
var objectSpan = regexp.MustCompile(`(?s)\{.*\}`)

// ExtractJSONObject returns the first top-level {...} span in a model reply,
// ignoring any surrounding prose or markdown fences.
func ExtractJSONObject(response string) (string, bool) {
	span := objectSpan.FindString(response)
	return span, span != ""
}

// ParseJSON extracts the object span from response and decodes it into T.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	jsonStr, ok := ExtractJSONObject(response)
	if !ok {
		return zero, fmt.Errorf("no JSON object found in response (missing '{')")
	}

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w\nData: %.500s", err, jsonStr)
	}

	return result, nil
}
