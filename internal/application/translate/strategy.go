// Package translate converts free-form provider text into candidate BASIC
// statements. Strategies run in fixed priority order; the engine keeps the
// best-scoring candidate and attaches a structural validation verdict.
package translate

import "github.com/auraos/aibridge/internal/domain"

// Candidate is a scored statement proposed by one strategy.
type Candidate struct {
	Statement   domain.Statement
	Confidence  float64
	ContextUsed bool
}

// Strategy converts input text into a candidate statement or declines.
// CanHandle is a cheap pre-filter; Translate may still decline.
type Strategy interface {
	Name() string
	CanHandle(text string) bool
	Translate(text string, contextData map[string]any) (Candidate, bool)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
