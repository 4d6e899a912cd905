package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/auraos/aibridge/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleInteraction(id string, createdAt time.Time) domain.Interaction {
	return domain.Interaction{
		ID:        id,
		Type:      domain.TypeCommandExecution,
		Status:    domain.StatusCompleted,
		Prompt:    "print hello",
		SessionID: "sess-1",
		Result: domain.Result{
			Prompt:     "print hello",
			Provider:   "openai",
			Statement:  domain.NewStatement(`PRINT "hello"`),
			Strategy:   "pattern",
			Valid:      true,
			Confidence: 0.9,
			Output:     "hello",
			Success:    true,
		},
		Timings:   domain.PhaseTimings{TotalMS: 120.5},
		CreatedAt: createdAt,
	}
}

func TestSQLiteStoreSaveAndRecent(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		interaction := sampleInteraction(id, base.Add(time.Duration(i)*time.Minute))
		if err := store.Save(interaction); err != nil {
			t.Fatalf("Save(%s): %v", id, err)
		}
	}

	got, err := store.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "c" || got[1].ID != "b" {
		t.Errorf("order = [%s, %s], want newest first [c, b]", got[0].ID, got[1].ID)
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	want := sampleInteraction("a", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Recent(1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}

	i := got[0]
	if i.Status != domain.StatusCompleted {
		t.Errorf("status = %s", i.Status)
	}
	if i.Result.Statement.Text() != `PRINT "hello"` {
		t.Errorf("statement = %q", i.Result.Statement.Text())
	}
	if !i.Result.Valid || !i.Result.Success {
		t.Errorf("flags lost in round trip: %+v", i.Result)
	}
	if i.Result.Confidence != 0.9 {
		t.Errorf("confidence = %v", i.Result.Confidence)
	}
	if !i.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("created at = %v, want %v", i.CreatedAt, want.CreatedAt)
	}
}

func TestSQLiteStoreClear(t *testing.T) {
	store := newTestStore(t)
	store.Save(sampleInteraction("a", time.Now()))

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	got, err := store.Recent(0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len after clear = %d, want 0", len(got))
	}
}
