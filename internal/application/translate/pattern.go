package translate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/auraos/aibridge/internal/domain"
)

// patternRule pairs a compiled expression with a statement builder and the
// static confidence assigned to a match.
type patternRule struct {
	name       string
	re         *regexp.Regexp
	confidence float64
	build      func(groups []string) string
}

// PatternStrategy matches an ordered table of regular expressions against
// the input and fills a statement template from the capture groups.
// First match wins.
type PatternStrategy struct {
	rules []patternRule
}

// NewPatternStrategy builds the canonical rule table. Conditionals are
// ordered ahead of plain print so "if x then print y" is not swallowed by
// the print rule.
func NewPatternStrategy() *PatternStrategy {
	var operators = map[string]string{
		"plus":       "+",
		"minus":      "-",
		"times":      "*",
		"divided by": "/",
	}
	return &PatternStrategy{rules: []patternRule{
		{
			name:       "for_loop",
			re:         regexp.MustCompile(`(?:loop|for)\s+(?:from\s+)?(\d+)\s+(?:to|until)\s+(\d+)`),
			confidence: 0.9,
			build: func(g []string) string {
				return fmt.Sprintf("FOR I = %s TO %s\nPRINT I\nNEXT I", g[1], g[2])
			},
		},
		{
			name:       "conditional",
			re:         regexp.MustCompile(`if\s+(\w+)\s+(?:equals?|==|=)\s+(\w+)\s+(?:then\s+)?(?:print|show)\s+['"]?([^'"]+)['"]?`),
			confidence: 0.8,
			build: func(g []string) string {
				return fmt.Sprintf("IF %s = %s THEN PRINT %q", strings.ToUpper(g[1]), g[2], strings.TrimSpace(g[3]))
			},
		},
		{
			name:       "calculation",
			re:         regexp.MustCompile(`(?:calculate|compute|add|subtract|multiply|divide)\s+(\d+)\s+(plus|minus|times|divided by)\s+(\d+)`),
			confidence: 0.85,
			build: func(g []string) string {
				op, ok := operators[g[2]]
				if !ok {
					op = "+"
				}
				return fmt.Sprintf("LET RESULT = %s %s %s\nPRINT \"result: \"; RESULT", g[1], op, g[3])
			},
		},
		{
			name:       "assignment",
			re:         regexp.MustCompile(`(?:set|let|assign)\s+(\w+)\s+(?:to|equals?|=)\s+(\S+)`),
			confidence: 0.85,
			build: func(g []string) string {
				return fmt.Sprintf("LET %s = %s", strings.ToUpper(g[1]), g[2])
			},
		},
		{
			name:       "print",
			re:         regexp.MustCompile(`(?:print|display|show|output|echo)\s+['"]?([^'"]+)['"]?`),
			confidence: 0.9,
			build: func(g []string) string {
				return fmt.Sprintf("PRINT %q", strings.TrimSpace(g[1]))
			},
		},
		{
			name:       "comment",
			re:         regexp.MustCompile(`(?:comment|note|rem)\s+(.+)`),
			confidence: 0.9,
			build: func(g []string) string {
				return "REM " + strings.TrimSpace(g[1])
			},
		},
		{
			name:       "end_program",
			re:         regexp.MustCompile(`\b(?:end|stop|terminate|exit)\b(?:\s+program)?`),
			confidence: 0.95,
			build: func([]string) string {
				return "END"
			},
		},
		{
			name:       "simple_assignment",
			re:         regexp.MustCompile(`(\w+)\s*=\s*(\S+)`),
			confidence: 0.8,
			build: func(g []string) string {
				return fmt.Sprintf("LET %s = %s", strings.ToUpper(g[1]), g[2])
			},
		},
	}}
}

func (s *PatternStrategy) Name() string { return "pattern" }

// CanHandle reports whether any rule matches the input.
func (s *PatternStrategy) CanHandle(text string) bool {
	normalized := normalize(text)
	for _, rule := range s.rules {
		if rule.re.MatchString(normalized) {
			return true
		}
	}
	return false
}

// Translate applies the first matching rule.
func (s *PatternStrategy) Translate(text string, _ map[string]any) (Candidate, bool) {
	normalized := normalize(text)
	for _, rule := range s.rules {
		groups := rule.re.FindStringSubmatch(normalized)
		if groups == nil {
			continue
		}
		return Candidate{
			Statement:  domain.NewStatement(rule.build(groups)),
			Confidence: rule.confidence,
		}, true
	}
	return Candidate{}, false
}

// normalize lowers and trims input so the rule table stays case-insensitive
// and whitespace-tolerant.
func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
