package translate

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/auraos/aibridge/internal/domain"
	"github.com/auraos/aibridge/internal/ports"
)

const (
	defaultHistorySize        = 1000
	defaultEarlyExitThreshold = 0.8
	confidenceSampleSize      = 100
)

// Engine runs a fixed strategy chain over incoming text and validates the
// winning candidate. Strategies are consulted in priority order and the
// chain short-circuits once a candidate clears the early-exit threshold.
type Engine struct {
	strategies []Strategy
	validator  Validator
	logger     ports.Logger

	earlyExit   float64
	historySize int

	mu      sync.Mutex
	history []domain.TranslationResult
	stats   engineStats

	now func() time.Time
}

type engineStats struct {
	total         int
	succeeded     int
	failed        int
	strategyUsage map[string]int
	totalDuration time.Duration
}

// NewEngine builds an engine with the standard strategy chain: exact
// patterns first, rule-based synthesis second, contextual resolution last.
func NewEngine(cfg domain.EngineSettings, logger ports.Logger) *Engine {
	historySize := cfg.HistorySize
	if historySize <= 0 {
		historySize = defaultHistorySize
	}
	earlyExit := cfg.EarlyExitConfidence
	if earlyExit <= 0 {
		earlyExit = defaultEarlyExitThreshold
	}
	return &Engine{
		strategies: []Strategy{
			NewPatternStrategy(),
			NewRuleStrategy(),
			NewContextStrategy(),
		},
		logger:      logger,
		earlyExit:   earlyExit,
		historySize: historySize,
		stats:       engineStats{strategyUsage: make(map[string]int)},
		now:         time.Now,
	}
}

// Translate resolves text to a statement using the first applicable
// strategy whose confidence clears the early-exit threshold, falling back
// to the best candidate seen. A result with no applicable strategy is
// returned unsuccessful rather than as an error.
func (e *Engine) Translate(text string, contextData map[string]any) domain.TranslationResult {
	start := e.now()

	result := domain.TranslationResult{
		ID:         uuid.NewString(),
		OriginHash: originHash(text),
		Timestamp:  start,
	}

	var best Candidate
	var bestStrategy string
	for _, strategy := range e.strategies {
		if !strategy.CanHandle(text) {
			continue
		}
		candidate, ok := strategy.Translate(text, contextData)
		if !ok {
			continue
		}
		if candidate.Confidence > best.Confidence {
			best = candidate
			bestStrategy = strategy.Name()
		}
		if candidate.Confidence >= e.earlyExit {
			break
		}
	}

	elapsed := e.now().Sub(start)
	result.DurationMS = float64(elapsed) / float64(time.Millisecond)

	if bestStrategy == "" {
		result.Success = false
		result.Err = "no strategy could translate the input"
		result.Suggestions = Suggest(text)
		e.record(result, elapsed)
		return result
	}

	result.Strategy = bestStrategy
	result.Statement = best.Statement
	result.Confidence = clamp01(best.Confidence)
	result.ContextUsed = best.ContextUsed
	result.Validation = e.validator.Validate(best.Statement)
	result.Success = true
	if !result.Validation.Valid {
		result.Suggestions = append(result.Validation.Suggestions, Suggest(best.Statement.Text())...)
	}

	e.logger.Debug("translated input", map[string]any{
		"strategy":   bestStrategy,
		"confidence": result.Confidence,
		"valid":      result.Validation.Valid,
	})

	e.record(result, elapsed)
	return result
}

func (e *Engine) record(result domain.TranslationResult, elapsed time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stats.total++
	e.stats.totalDuration += elapsed
	if result.Success {
		e.stats.succeeded++
		e.stats.strategyUsage[result.Strategy]++
	} else {
		e.stats.failed++
	}

	e.history = append(e.history, result)
	if len(e.history) > e.historySize {
		e.history = e.history[len(e.history)-e.historySize:]
	}
}

// Statistics reports aggregate engine counters. Average confidence is
// computed over the most recent successful translations only.
func (e *Engine) Statistics() domain.TranslationStats {
	e.mu.Lock()
	defer e.mu.Unlock()

	stats := domain.TranslationStats{
		Total:         e.stats.total,
		Succeeded:     e.stats.succeeded,
		Failed:        e.stats.failed,
		StrategyUsage: make(map[string]int, len(e.stats.strategyUsage)),
		HistorySize:   len(e.history),
	}
	for name, count := range e.stats.strategyUsage {
		stats.StrategyUsage[name] = count
		if stats.MostUsedStrategy == "" || count > stats.StrategyUsage[stats.MostUsedStrategy] {
			stats.MostUsedStrategy = name
		}
	}
	if e.stats.total > 0 {
		stats.SuccessRate = float64(e.stats.succeeded) / float64(e.stats.total)
		stats.AverageDurationMS = float64(e.stats.totalDuration) / float64(time.Millisecond) / float64(e.stats.total)
	}

	var sum float64
	var sampled int
	for i := len(e.history) - 1; i >= 0 && sampled < confidenceSampleSize; i-- {
		if !e.history[i].Success {
			continue
		}
		sum += e.history[i].Confidence
		sampled++
	}
	if sampled > 0 {
		stats.AverageConfidence = sum / float64(sampled)
	}
	return stats
}

// Recent returns up to limit results, newest first.
func (e *Engine) Recent(limit int) []domain.TranslationResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if limit <= 0 || limit > len(e.history) {
		limit = len(e.history)
	}
	out := make([]domain.TranslationResult, 0, limit)
	for i := len(e.history) - 1; i >= len(e.history)-limit; i-- {
		out = append(out, e.history[i])
	}
	return out
}

// ClearHistory drops recorded results but keeps aggregate counters.
func (e *Engine) ClearHistory() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = nil
}

func originHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
