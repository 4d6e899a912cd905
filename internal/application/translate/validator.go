package translate

import (
	"fmt"
	"strings"

	"github.com/auraos/aibridge/internal/domain"
)

// validKeywords is the fixed set of recognized BASIC keywords.
var validKeywords = []string{
	"PRINT", "LET", "FOR", "NEXT", "IF", "THEN", "ELSE", "GOTO",
	"GOSUB", "RETURN", "END", "REM", "DATA", "READ", "RESTORE",
	"DIM", "INPUT", "CLS", "LIST", "RUN", "STOP", "CONT", "SAVE", "LOAD",
}

// Validator applies structural well-formedness checks to a statement.
// It is a pure function over the statement text; it never mutates or
// repairs a statement.
type Validator struct{}

// Validate runs every check and derives the syntax score as
// 1.0 − 0.2 × issueCount, floored at zero.
func (Validator) Validate(stmt domain.Statement) domain.ValidationResult {
	result := domain.ValidationResult{Valid: true, SyntaxScore: 1.0}

	text := stmt.Text()
	upper := strings.ToUpper(text)

	if strings.TrimSpace(text) == "" {
		result.Valid = false
		result.Issues = append(result.Issues, "empty statement")
		result.SyntaxScore = 0
		return result
	}

	if !containsAnyKeyword(upper) {
		result.Issues = append(result.Issues, "no recognized keywords found")
		result.Suggestions = append(result.Suggestions, "use PRINT, LET, FOR, IF or another recognized keyword")
	}

	if strings.Contains(upper, "PRINT") &&
		!strings.ContainsAny(text, `"'`) && !strings.Contains(text, ";") {
		result.Issues = append(result.Issues, "PRINT statement missing quotes or semicolon")
		result.Suggestions = append(result.Suggestions, `quote literal text: PRINT "hello"`)
	}

	if strings.Contains(upper, "LET") && !strings.Contains(text, "=") {
		result.Issues = append(result.Issues, "LET statement missing assignment operator")
		result.Suggestions = append(result.Suggestions, "LET statements assign with =")
	}

	if issue := balanceIssue(upper, "FOR", "NEXT"); issue != "" {
		result.Issues = append(result.Issues, issue)
		result.Suggestions = append(result.Suggestions, "each FOR needs a matching NEXT")
	}
	if issue := balanceIssue(upper, "IF", "THEN"); issue != "" {
		result.Issues = append(result.Issues, issue)
		result.Suggestions = append(result.Suggestions, "each IF needs a matching THEN")
	}

	result.SyntaxScore = clamp01(1.0 - 0.2*float64(len(result.Issues)))
	result.Valid = len(result.Issues) == 0
	return result
}

func containsAnyKeyword(upper string) bool {
	for _, keyword := range validKeywords {
		if strings.Contains(upper, keyword) {
			return true
		}
	}
	return false
}

// balanceIssue flags mismatched counts of a block-opening and block-closing
// keyword pair.
func balanceIssue(upper, open, close string) string {
	openCount := countWord(upper, open)
	closeCount := countWord(upper, close)
	if openCount == closeCount {
		return ""
	}
	return fmt.Sprintf("unbalanced %s/%s (%d %s, %d %s)",
		open, close, openCount, open, closeCount, close)
}

// countWord counts whole-word occurrences so IF is not found inside DIF etc.
func countWord(upper, word string) int {
	var count int
	fields := strings.FieldsFunc(upper, func(r rune) bool {
		return !('A' <= r && r <= 'Z') && !('0' <= r && r <= '9')
	})
	for _, field := range fields {
		if field == word {
			count++
		}
	}
	return count
}
