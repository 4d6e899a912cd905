package translate

import (
	"math"
	"testing"

	"github.com/auraos/aibridge/internal/domain"
)

func TestValidatorEmptyStatement(t *testing.T) {
	var v Validator

	result := v.Validate(domain.NewStatement("   "))

	if result.Valid {
		t.Error("empty statement should be invalid")
	}
	if result.SyntaxScore != 0 {
		t.Errorf("syntax score = %v, want 0", result.SyntaxScore)
	}
}

func TestValidatorWellFormed(t *testing.T) {
	var v Validator

	cases := []string{
		`PRINT "hello world"`,
		"LET X = 42",
		"FOR I = 1 TO 10\nPRINT I;\nNEXT I",
		"IF X = 5 THEN PRINT \"ok\"",
		"REM just a note",
		"END",
	}
	for _, stmt := range cases {
		result := v.Validate(domain.NewStatement(stmt))
		if !result.Valid {
			t.Errorf("Validate(%q) invalid, issues: %v", stmt, result.Issues)
		}
		if result.SyntaxScore != 1.0 {
			t.Errorf("Validate(%q) score = %v, want 1.0", stmt, result.SyntaxScore)
		}
	}
}

func TestValidatorIssues(t *testing.T) {
	var v Validator

	cases := []struct {
		stmt       string
		wantIssues int
	}{
		{"PRINT hello world", 1},       // unquoted literal
		{"LET X 42", 1},                // missing =
		{"FOR I = 1 TO 10", 1},         // no NEXT
		{"IF X = 5 PRINT \"ok\"", 1},   // no THEN
		{"frobnicate the widget", 1},   // no keywords
		{"PRINT hello\nLET X 42", 2},   // compounding
	}
	for _, tc := range cases {
		result := v.Validate(domain.NewStatement(tc.stmt))
		if result.Valid {
			t.Errorf("Validate(%q) valid, want invalid", tc.stmt)
		}
		if len(result.Issues) != tc.wantIssues {
			t.Errorf("Validate(%q) issues = %v, want %d", tc.stmt, result.Issues, tc.wantIssues)
		}
		wantScore := 1.0 - 0.2*float64(tc.wantIssues)
		if math.Abs(result.SyntaxScore-wantScore) > 1e-9 {
			t.Errorf("Validate(%q) score = %v, want %v", tc.stmt, result.SyntaxScore, wantScore)
		}
	}
}

func TestValidatorScoreFloor(t *testing.T) {
	var v Validator

	stmt := "PRINT a\nLET b\nFOR c\nIF d\nFOR e\nIF f\nGOTO\nINPUT\nDIM"
	result := v.Validate(domain.NewStatement(stmt))
	if result.SyntaxScore < 0 {
		t.Errorf("score = %v, want floored at 0", result.SyntaxScore)
	}
}
