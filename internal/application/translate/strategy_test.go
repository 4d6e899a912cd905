package translate

import (
	"testing"
)

func TestPatternStrategyTable(t *testing.T) {
	strategy := NewPatternStrategy()

	cases := []struct {
		input string
		want  string
		conf  float64
	}{
		{"print hello world", `PRINT "hello world"`, 0.9},
		{"Display the answer", `PRINT "the answer"`, 0.9},
		{"set counter to 10", "LET COUNTER = 10", 0.85},
		{"loop from 1 to 5", "FOR I = 1 TO 5\nPRINT I\nNEXT I", 0.9},
		{"if x equals 5 then print yes", `IF X = 5 THEN PRINT "yes"`, 0.8},
		{"calculate 3 plus 4", "LET RESULT = 3 + 4\nPRINT \"result: \"; RESULT", 0.85},
		{"comment this is a test", "REM this is a test", 0.9},
		{"end program", "END", 0.95},
		{"x = 7", "LET X = 7", 0.8},
	}
	for _, tc := range cases {
		if !strategy.CanHandle(tc.input) {
			t.Errorf("CanHandle(%q) = false, want true", tc.input)
			continue
		}
		candidate, ok := strategy.Translate(tc.input, nil)
		if !ok {
			t.Errorf("Translate(%q) declined", tc.input)
			continue
		}
		if got := candidate.Statement.Text(); got != tc.want {
			t.Errorf("Translate(%q) = %q, want %q", tc.input, got, tc.want)
		}
		if candidate.Confidence != tc.conf {
			t.Errorf("Translate(%q) confidence = %v, want %v", tc.input, candidate.Confidence, tc.conf)
		}
	}
}

func TestPatternStrategyDeclinesNonsense(t *testing.T) {
	strategy := NewPatternStrategy()
	if strategy.CanHandle("asdkjqwe zzkrv") {
		t.Error("CanHandle should reject input with no recognizable pattern")
	}
}

func TestRuleStrategyComposition(t *testing.T) {
	strategy := NewRuleStrategy()

	cases := []struct {
		input string
		want  string
	}{
		{`print "hello there"`, `PRINT "hello there"`},
		{"let total = 99", "LET TOTAL = 99"},
		{"let total equals 99", "LET TOTAL = 99"},
		{"for i = 1 to 10", "FOR I = 1 TO 10"},
	}
	for _, tc := range cases {
		candidate, ok := strategy.Translate(tc.input, nil)
		if !ok {
			t.Errorf("Translate(%q) declined", tc.input)
			continue
		}
		if got := candidate.Statement.Text(); got != tc.want {
			t.Errorf("Translate(%q) = %q, want %q", tc.input, got, tc.want)
		}
		if candidate.Confidence < 0.5 || candidate.Confidence > 1 {
			t.Errorf("Translate(%q) confidence = %v, want within [0.5,1]", tc.input, candidate.Confidence)
		}
	}
}

func TestRuleConfidenceFormula(t *testing.T) {
	// One keyword (+0.1) and one emitted syntax token (+0.1) over the 0.5 base.
	got := ruleConfidence("print x", "PRINT X")
	if got != 0.7 {
		t.Errorf("ruleConfidence = %v, want 0.7", got)
	}
}

func TestContextStrategyRepeat(t *testing.T) {
	strategy := NewContextStrategy()

	strategy.Translate("print hello", nil)
	candidate, ok := strategy.Translate("do that again", nil)
	if !ok {
		t.Fatal("contextual strategy must always produce a candidate")
	}
	if !candidate.ContextUsed {
		t.Error("expected ContextUsed on deictic resolution")
	}
	if candidate.Confidence < 0.7 {
		t.Errorf("confidence = %v, want >= 0.7 with context available", candidate.Confidence)
	}
}

func TestContextStrategySequence(t *testing.T) {
	strategy := NewContextStrategy()

	contextData := map[string]any{"sequence": []string{`PRINT "first"`, `PRINT "second"`}}
	candidate, _ := strategy.Translate("now the next one", contextData)
	if got, want := candidate.Statement.Text(), `PRINT "first"`; got != want {
		t.Errorf("statement = %q, want %q", got, want)
	}
	if candidate.Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", candidate.Confidence)
	}
}

func TestContextStrategyFallbackComment(t *testing.T) {
	strategy := NewContextStrategy()

	candidate, _ := strategy.Translate("qwerkjh zzv", nil)
	if candidate.Confidence >= 0.4 {
		t.Errorf("fallback confidence = %v, want < 0.4", candidate.Confidence)
	}
	if got, want := candidate.Statement.Text(), "REM qwerkjh zzv"; got != want {
		t.Errorf("statement = %q, want %q", got, want)
	}
}
