package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/auraos/aibridge/internal/domain"
)

func TestMemoryCachePutGet(t *testing.T) {
	c := NewMemoryCache(domain.CacheSettings{})

	want := domain.Result{
		Prompt:     "print hello",
		Provider:   "openai",
		Statement:  domain.NewStatement(`PRINT "hello"`),
		Confidence: 0.9,
		Success:    true,
	}
	c.Put("k1", want)

	got, ok := c.Get("k1")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("cached result mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache(domain.CacheSettings{})
	if _, ok := c.Get("absent"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestMemoryCacheTTLExpiry(t *testing.T) {
	c := NewMemoryCache(domain.CacheSettings{TTLSeconds: 60})
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	c.Put("k1", domain.Result{Output: "fresh"})

	c.now = func() time.Time { return base.Add(59 * time.Second) }
	if _, ok := c.Get("k1"); !ok {
		t.Error("entry expired before TTL elapsed")
	}

	c.now = func() time.Time { return base.Add(61 * time.Second) }
	if _, ok := c.Get("k1"); ok {
		t.Error("entry survived past TTL")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not removed, len = %d", c.Len())
	}
}

func TestMemoryCacheEvictsOldestBatch(t *testing.T) {
	c := NewMemoryCache(domain.CacheSettings{MaxEntries: 10, EvictionBatch: 3})
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	c.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	for i := 0; i < 10; i++ {
		c.Put(fmt.Sprintf("k%d", i), domain.Result{Output: fmt.Sprintf("v%d", i)})
	}
	c.Put("overflow", domain.Result{Output: "new"})

	if got := c.Len(); got != 8 {
		t.Errorf("len after eviction = %d, want 8", got)
	}
	for i := 0; i < 3; i++ {
		if _, ok := c.Get(fmt.Sprintf("k%d", i)); ok {
			t.Errorf("oldest entry k%d survived eviction", i)
		}
	}
	if _, ok := c.Get("k9"); !ok {
		t.Error("newest pre-eviction entry was evicted")
	}
	if _, ok := c.Get("overflow"); !ok {
		t.Error("inserted entry missing after eviction")
	}
}

func TestMemoryCacheClear(t *testing.T) {
	c := NewMemoryCache(domain.CacheSettings{})
	c.Put("k1", domain.Result{})
	c.Put("k2", domain.Result{})
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("len after clear = %d, want 0", c.Len())
	}
}
