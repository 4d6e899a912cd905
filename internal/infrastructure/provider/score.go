package provider

import (
	"math"
	"regexp"
	"strings"
)

var scoreKeywords = []string{"PRINT", "LET", "FOR", "NEXT", "IF", "THEN", "GOTO", "END"}

var lineNumberRe = regexp.MustCompile(`\d+\s+`)

// scoreResponse assigns a structural confidence to raw provider text: base
// 0.5, bonuses for recognized keywords (cap +0.3), line numbers (+0.1) and
// quoted PRINT arguments (+0.1), a penalty (-0.2) for refusal wording,
// clamped to [0,1]. Empty text scores zero.
func scoreResponse(content string) float64 {
	if strings.TrimSpace(content) == "" {
		return 0
	}

	confidence := 0.5
	upper := strings.ToUpper(content)

	var keywordCount int
	for _, keyword := range scoreKeywords {
		if strings.Contains(upper, keyword) {
			keywordCount++
		}
	}
	bonus := float64(keywordCount) * 0.1
	if bonus > 0.3 {
		bonus = 0.3
	}
	confidence += bonus

	if lineNumberRe.MatchString(content) {
		confidence += 0.1
	}
	if strings.Contains(content, `"`) && strings.Contains(upper, "PRINT") {
		confidence += 0.1
	}

	lower := strings.ToLower(content)
	if strings.Contains(lower, "error") || strings.Contains(lower, "cannot") {
		confidence -= 0.2
	}

	// Every adjustment is a multiple of 0.1; round away the float drift so
	// a fully-bonused score compares equal to its nominal value.
	confidence = math.Round(confidence*100) / 100

	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}
