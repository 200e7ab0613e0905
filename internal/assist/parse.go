package assist

import (
	"encoding/json"
	"strings"
)

// ParseIcebreakers splits the raw model output into individual suggestions.
//
// Behavior:
//   - Splits on newlines, trims whitespace, drops blank lines.
//   - Caps the result at three suggestions.
//   - Returns nil when nothing usable remains.
func ParseIcebreakers(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == maxIcebreakers {
			break
		}
	}
	return out
}

// ParseCompatibility decodes the model's JSON answer, tolerating markdown
// code fences around it. The score is clamped to 0-100. Returns false when
// the payload is not usable JSON.
func ParseCompatibility(text string) (Compatibility, bool) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var result Compatibility
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return Compatibility{}, false
	}
	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > 100 {
		result.Score = 100
	}
	return result, true
}
