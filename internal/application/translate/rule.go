package translate

import (
	"strings"

	"github.com/auraos/aibridge/internal/domain"
)

// basicKeywords maps spoken keywords to their emitted BASIC form.
var basicKeywords = map[string]string{
	"print": "PRINT",
	"let":   "LET",
	"for":   "FOR",
	"next":  "NEXT",
	"if":    "IF",
	"then":  "THEN",
	"else":  "ELSE",
	"goto":  "GOTO",
	"end":   "END",
	"rem":   "REM",
}

// operatorWords are recognized during the pre-filter and confidence scoring.
var operatorWords = []string{
	"equals", "plus", "minus", "times", "divided by",
	"greater than", "less than", "not equal",
}

// emittedSyntax is the subset of keywords that count toward the well-formed
// output bonus.
var emittedSyntax = []string{"PRINT", "LET", "FOR", "NEXT", "IF", "THEN"}

// RuleStrategy composes a statement by sequential token consumption over a
// small fixed vocabulary. PRINT, LET and FOR get lookahead handling for
// quoted strings, assignment operators and the TO range delimiter.
type RuleStrategy struct{}

func NewRuleStrategy() *RuleStrategy { return &RuleStrategy{} }

func (s *RuleStrategy) Name() string { return "rule" }

// CanHandle reports whether the input contains any recognized keyword or
// operator word.
func (s *RuleStrategy) CanHandle(text string) bool {
	normalized := normalize(text)
	for keyword := range basicKeywords {
		if containsWord(normalized, keyword) {
			return true
		}
	}
	for _, op := range operatorWords {
		if strings.Contains(normalized, op) {
			return true
		}
	}
	return false
}

// Translate scans tokens left to right, emitting BASIC fragments for each
// recognized keyword.
func (s *RuleStrategy) Translate(text string, _ map[string]any) (Candidate, bool) {
	normalized := normalize(text)
	words := strings.Fields(normalized)

	var parts []string
	for i := 0; i < len(words); i++ {
		word := words[i]
		emitted, ok := basicKeywords[word]
		if !ok {
			continue
		}
		parts = append(parts, emitted)

		switch word {
		case "print":
			consumed, next := consumePrintArg(words, i)
			if next != "" {
				parts = append(parts, next)
			}
			i = consumed
		case "let":
			consumed, fragment := consumeAssignment(words, i)
			parts = append(parts, fragment...)
			i = consumed
		case "for":
			consumed, fragment := consumeRange(words, i)
			parts = append(parts, fragment...)
			i = consumed
		}
	}

	if len(parts) == 0 {
		return Candidate{}, false
	}

	statement := strings.Join(parts, " ")
	return Candidate{
		Statement:  domain.NewStatement(statement),
		Confidence: ruleConfidence(normalized, statement),
	}, true
}

// consumePrintArg pulls the PRINT argument: a quoted string spanning several
// tokens, or a single variable/expression uppercased.
func consumePrintArg(words []string, i int) (int, string) {
	if i+1 >= len(words) {
		return i, ""
	}
	next := words[i+1]
	if strings.HasPrefix(next, `"`) || strings.HasPrefix(next, "'") {
		parts := []string{next}
		j := i + 1
		for j+1 < len(words) && !strings.HasSuffix(words[j], `"`) && !strings.HasSuffix(words[j], "'") {
			j++
			parts = append(parts, words[j])
		}
		return j, strings.Join(parts, " ")
	}
	return i + 1, strings.ToUpper(next)
}

// consumeAssignment handles "let x = 5" and "let x equals 5".
func consumeAssignment(words []string, i int) (int, []string) {
	if i+3 >= len(words) {
		return i, nil
	}
	name := strings.ToUpper(words[i+1])
	op := words[i+2]
	if op != "=" && op != "equals" {
		return i, nil
	}
	return i + 3, []string{name, "=", words[i+3]}
}

// consumeRange handles "for i = 1 to 10".
func consumeRange(words []string, i int) (int, []string) {
	if i+3 >= len(words) {
		return i, nil
	}
	name := strings.ToUpper(words[i+1])
	if words[i+2] != "=" && words[i+2] != "equals" {
		return i, nil
	}
	fragment := []string{name, "=", words[i+3]}
	i += 3
	if i+2 < len(words) && words[i+1] == "to" {
		fragment = append(fragment, "TO", words[i+2])
		i += 2
	}
	return i, fragment
}

// ruleConfidence scores base 0.5 plus bonuses for recognized input keywords
// (cap +0.3) and well-formed emitted keywords (cap +0.2), clamped to [0,1].
func ruleConfidence(input, emitted string) float64 {
	confidence := 0.5

	var keywordCount int
	for keyword := range basicKeywords {
		if containsWord(input, keyword) {
			keywordCount++
		}
	}
	confidence += minF(float64(keywordCount)*0.1, 0.3)

	var syntaxCount int
	for _, token := range emittedSyntax {
		if strings.Contains(emitted, token) {
			syntaxCount++
		}
	}
	confidence += minF(float64(syntaxCount)*0.1, 0.2)

	return clamp01(confidence)
}

func containsWord(text, word string) bool {
	for _, field := range strings.Fields(text) {
		if field == word {
			return true
		}
	}
	return false
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
