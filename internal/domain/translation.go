package domain

import "time"

// ValidationResult describes the structural checks applied to a statement.
// Validation never rejects a translation outright; an invalid statement is
// returned tagged Valid=false with the issue list attached.
type ValidationResult struct {
	Valid       bool
	Issues      []string
	Suggestions []string
	SyntaxScore float64
}

// TranslationResult is the immutable outcome of one engine call.
type TranslationResult struct {
	ID          string
	Strategy    string
	Statement   Statement
	Confidence  float64
	Validation  ValidationResult
	OriginHash  string
	Success     bool
	Err         string
	Suggestions []string
	ContextUsed bool
	DurationMS  float64
	Timestamp   time.Time
}

// TranslationStats aggregates engine counters across all calls.
type TranslationStats struct {
	Total             int
	Succeeded         int
	Failed            int
	SuccessRate       float64
	AverageConfidence float64
	AverageDurationMS float64
	StrategyUsage     map[string]int
	MostUsedStrategy  string
	HistorySize       int
}
