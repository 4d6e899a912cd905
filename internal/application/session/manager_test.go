package session

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/auraos/aibridge/internal/domain"
)

func newTestManager(cfg domain.SessionSettings) *Manager {
	return NewManager(cfg, &nopLogger{})
}

func TestCreateSession(t *testing.T) {
	m := newTestManager(domain.SessionSettings{})

	created, err := m.CreateSession("")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if created.ID == "" {
		t.Error("expected generated session id")
	}
	if created.State != domain.SessionInitial {
		t.Errorf("state = %s, want initial", created.State)
	}

	if _, err := m.CreateSession(created.ID); !domain.IsCode(err, domain.CodeValidationFailed) {
		t.Errorf("duplicate create err = %v, want validation_failed", err)
	}
}

func TestAddTurnMergesContext(t *testing.T) {
	m := newTestManager(domain.SessionSettings{})
	created, _ := m.CreateSession("s1")

	turns := []domain.Turn{
		{Input: "print hello", Success: true, ContextDelta: map[string]any{"mode": "program", "step": 1}},
		{Input: "set x to 5", Success: true, ContextDelta: map[string]any{"step": 2}},
	}
	for _, turn := range turns {
		if err := m.AddTurn(created.ID, turn); err != nil {
			t.Fatalf("AddTurn: %v", err)
		}
	}

	got, err := m.GetSession(created.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.State != domain.SessionActive {
		t.Errorf("state = %s, want active after first turn", got.State)
	}
	if len(got.Turns) != 2 {
		t.Fatalf("turns = %d, want 2", len(got.Turns))
	}
	wantContext := map[string]any{"mode": "program", "step": 2}
	if diff := cmp.Diff(wantContext, got.Context); diff != "" {
		t.Errorf("context mismatch, later keys must win (-want +got):\n%s", diff)
	}
}

func TestAddTurnUnknownSession(t *testing.T) {
	m := newTestManager(domain.SessionSettings{})
	if err := m.AddTurn("ghost", domain.Turn{Input: "hi"}); !domain.IsCode(err, domain.CodeNotFound) {
		t.Errorf("err = %v, want not_found", err)
	}
}

func TestTurnErrorMovesSessionToErrorState(t *testing.T) {
	m := newTestManager(domain.SessionSettings{})
	m.CreateSession("s1")

	m.AddTurn("s1", domain.Turn{Input: "print x", ErrorMessage: "provider timeout"})
	got, _ := m.GetSession("s1")
	if got.State != domain.SessionError {
		t.Errorf("state = %s, want error", got.State)
	}

	// A following clean turn recovers the session.
	m.AddTurn("s1", domain.Turn{Input: "print x", Success: true})
	got, _ = m.GetSession("s1")
	if got.State != domain.SessionActive {
		t.Errorf("state = %s, want active after recovery", got.State)
	}
}

func TestGetContextBounded(t *testing.T) {
	m := newTestManager(domain.SessionSettings{ContextTurns: 2})
	m.CreateSession("s1")

	for i := 0; i < 5; i++ {
		m.AddTurn("s1", domain.Turn{Input: "print x", Success: true})
	}

	view, err := m.GetContext("s1", 0)
	if err != nil {
		t.Fatalf("GetContext: %v", err)
	}
	if view.TurnCount != 5 {
		t.Errorf("turn count = %d, want 5", view.TurnCount)
	}
	if len(view.RecentTurns) != 2 {
		t.Errorf("recent turns = %d, want configured bound of 2", len(view.RecentTurns))
	}
}

func TestCloseSessionArchives(t *testing.T) {
	m := newTestManager(domain.SessionSettings{})
	m.CreateSession("s1")
	m.AddTurn("s1", domain.Turn{Input: "print x", Success: true})

	if err := m.CloseSession("s1"); err != nil {
		t.Fatalf("CloseSession: %v", err)
	}
	if err := m.AddTurn("s1", domain.Turn{Input: "late"}); !domain.IsCode(err, domain.CodeNotFound) {
		t.Errorf("turn after close err = %v, want not_found", err)
	}

	got, err := m.GetSession("s1")
	if err != nil {
		t.Fatalf("archived session lookup: %v", err)
	}
	if !got.Closed || got.State != domain.SessionCompleted {
		t.Errorf("archived session = %+v, want closed and completed", got)
	}
	if len(m.ActiveSessions()) != 0 {
		t.Error("closed session still listed as active")
	}
}

func TestArchiveBound(t *testing.T) {
	m := newTestManager(domain.SessionSettings{HistorySize: 3})

	for i := 0; i < 6; i++ {
		created, _ := m.CreateSession("")
		m.CloseSession(created.ID)
	}

	if got := len(m.archive); got != 3 {
		t.Errorf("archive = %d sessions, want 3", got)
	}
}

func TestAnalyzePatterns(t *testing.T) {
	m := newTestManager(domain.SessionSettings{})
	m.CreateSession("s1")

	m.AddTurn("s1", domain.Turn{Input: "write a program that counts", Success: true, Confidence: 0.9, ProcessingMS: 100})
	m.AddTurn("s1", domain.Turn{Input: "there is an error in line 20", Success: false, Confidence: 0.5, ProcessingMS: 200})
	m.AddTurn("s1", domain.Turn{Input: "explain how the loop works", Success: true, Confidence: 0.8, ProcessingMS: 300})

	analysis, err := m.Analyze("s1")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	want := []string{"code_generation", "debugging", "explanation"}
	if diff := cmp.Diff(want, analysis.Patterns); diff != "" {
		t.Errorf("patterns mismatch (-want +got):\n%s", diff)
	}
	if len(analysis.Suggestions) != 6 {
		t.Errorf("suggestions = %d, want two per detected pattern", len(analysis.Suggestions))
	}

	metrics := analysis.Metrics
	if metrics.TotalTurns != 3 {
		t.Errorf("total turns = %d, want 3", metrics.TotalTurns)
	}
	wantScore := (2.0/3.0)*0.4 + ((0.9+0.5+0.8)/3.0)*0.3 + (1-200.0/5000.0)*0.3
	if math.Abs(analysis.QualityScore-wantScore) > 1e-9 {
		t.Errorf("quality score = %v, want %v", analysis.QualityScore, wantScore)
	}
}

func TestAnalyzeEmptySession(t *testing.T) {
	m := newTestManager(domain.SessionSettings{})
	m.CreateSession("s1")

	analysis, err := m.Analyze("s1")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.QualityScore != 0 || len(analysis.Patterns) != 0 {
		t.Errorf("empty session analysis = %+v, want zero value", analysis)
	}
}

type nopLogger struct{}

func (*nopLogger) Debug(string, map[string]interface{})        {}
func (*nopLogger) Info(string, map[string]interface{})         {}
func (*nopLogger) Warn(string, map[string]interface{})         {}
func (*nopLogger) Error(string, error, map[string]interface{}) {}
