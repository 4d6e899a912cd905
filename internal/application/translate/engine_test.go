package translate

import (
	"strings"
	"testing"

	"github.com/auraos/aibridge/internal/domain"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(domain.EngineSettings{}, &nopLogger{})
}

func TestEngineTranslatePrint(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.Translate("Print hello world", nil)

	if !result.Success {
		t.Fatalf("expected success, got err %q", result.Err)
	}
	if got, want := result.Statement.Text(), `PRINT "hello world"`; got != want {
		t.Errorf("statement = %q, want %q", got, want)
	}
	if result.Confidence < 0.9 {
		t.Errorf("confidence = %v, want >= 0.9", result.Confidence)
	}
	if !result.Validation.Valid {
		t.Errorf("expected valid statement, issues: %v", result.Validation.Issues)
	}
	if result.Strategy != "pattern" {
		t.Errorf("strategy = %q, want pattern", result.Strategy)
	}
}

func TestEngineTranslateAssignment(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.Translate("Set x to 42", nil)

	if got, want := result.Statement.Text(), "LET X = 42"; got != want {
		t.Errorf("statement = %q, want %q", got, want)
	}
	if result.Confidence < 0.8 {
		t.Errorf("confidence = %v, want >= 0.8", result.Confidence)
	}
}

func TestEngineNonsenseFallsBackToContextual(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.Translate("asdkjqwe zzkrv qqp", nil)

	if !result.Success {
		t.Fatalf("contextual fallback should always produce a candidate")
	}
	if result.Strategy != "contextual" {
		t.Errorf("strategy = %q, want contextual", result.Strategy)
	}
	if result.Confidence >= 0.4 {
		t.Errorf("confidence = %v, want < 0.4", result.Confidence)
	}
	if !strings.HasPrefix(result.Statement.Text(), "REM") {
		t.Errorf("fallback statement = %q, want REM placeholder", result.Statement.Text())
	}
}

func TestEngineNoStrategySuggests(t *testing.T) {
	engine := newTestEngine(t)
	engine.strategies = []Strategy{decliningStrategy{}}

	result := engine.Translate("print the total", nil)

	if result.Success {
		t.Fatal("expected failure when every strategy declines")
	}
	if result.Err == "" {
		t.Error("expected a failure reason")
	}
	if len(result.Suggestions) == 0 {
		t.Error("expected usage hints derived from the input keywords")
	}
}

func TestEngineConfidenceBounds(t *testing.T) {
	engine := newTestEngine(t)

	inputs := []string{
		"Print hello world",
		"Set x to 42",
		"if x equals 5 then print ok",
		"loop from 1 to 10",
		"calculate 3 plus 4",
		"end program",
		"asdkjqwe",
		"do it again",
		"print that",
	}
	for _, input := range inputs {
		result := engine.Translate(input, nil)
		if result.Confidence < 0 || result.Confidence > 1 {
			t.Errorf("Translate(%q) confidence = %v, want within [0,1]", input, result.Confidence)
		}
	}
}

func TestEngineHistoryBound(t *testing.T) {
	engine := NewEngine(domain.EngineSettings{HistorySize: 5}, &nopLogger{})

	for i := 0; i < 12; i++ {
		engine.Translate("print hello", nil)
	}

	if got := engine.Statistics().HistorySize; got != 5 {
		t.Errorf("history size = %d, want 5", got)
	}
	recent := engine.Recent(0)
	if len(recent) != 5 {
		t.Errorf("Recent returned %d results, want 5", len(recent))
	}
}

func TestEngineStatistics(t *testing.T) {
	engine := newTestEngine(t)

	engine.Translate("print hello", nil)
	engine.Translate("print world", nil)
	engine.Translate("set x to 1", nil)

	stats := engine.Statistics()
	if stats.Total != 3 {
		t.Errorf("total = %d, want 3", stats.Total)
	}
	if stats.Succeeded != 3 {
		t.Errorf("succeeded = %d, want 3", stats.Succeeded)
	}
	if stats.MostUsedStrategy != "pattern" {
		t.Errorf("most used strategy = %q, want pattern", stats.MostUsedStrategy)
	}
	if stats.AverageConfidence < 0.8 {
		t.Errorf("average confidence = %v, want >= 0.8", stats.AverageConfidence)
	}
}

func TestEngineClearHistory(t *testing.T) {
	engine := newTestEngine(t)

	engine.Translate("print hello", nil)
	engine.ClearHistory()

	if got := len(engine.Recent(0)); got != 0 {
		t.Errorf("history after clear = %d entries, want 0", got)
	}
	if got := engine.Statistics().Total; got != 1 {
		t.Errorf("total after clear = %d, want counters retained", got)
	}
}

type decliningStrategy struct{}

func (decliningStrategy) Name() string          { return "declining" }
func (decliningStrategy) CanHandle(string) bool { return false }
func (decliningStrategy) Translate(string, map[string]any) (Candidate, bool) {
	return Candidate{}, false
}

type nopLogger struct{}

func (*nopLogger) Debug(string, map[string]interface{})        {}
func (*nopLogger) Info(string, map[string]interface{})         {}
func (*nopLogger) Warn(string, map[string]interface{})         {}
func (*nopLogger) Error(string, error, map[string]interface{}) {}
