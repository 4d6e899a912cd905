package translate

import (
	"strings"
	"sync"

	"github.com/auraos/aibridge/internal/domain"
)

// contextBufferSize bounds the rolling buffer of recent inputs held by the
// contextual strategy.
const contextBufferSize = 10

// ContextStrategy is the always-applicable fallback. It resolves deictic
// references ("it", "that", "again", "repeat") against recently submitted
// texts and otherwise emits a comment placeholder with low confidence, so
// the engine always has at least one candidate.
type ContextStrategy struct {
	mu     sync.Mutex
	recent []string
}

func NewContextStrategy() *ContextStrategy { return &ContextStrategy{} }

func (s *ContextStrategy) Name() string { return "contextual" }

// CanHandle always succeeds; this strategy must never be skipped.
func (s *ContextStrategy) CanHandle(string) bool { return true }

func (s *ContextStrategy) Translate(text string, contextData map[string]any) (Candidate, bool) {
	normalized := normalize(text)
	previous := s.remember(text)

	switch {
	case containsAny(normalized, "it", "that"):
		return s.resolveReference(previous), true
	case containsAny(normalized, "again", "repeat"):
		return s.resolveRepeat(previous), true
	case containsAny(normalized, "now", "next"):
		return resolveSequence(contextData), true
	default:
		return Candidate{
			Statement:  domain.NewStatement("REM " + strings.TrimSpace(text)),
			Confidence: 0.35,
		}, true
	}
}

// remember appends the input to the rolling buffer and returns the entry
// preceding it, if any.
func (s *ContextStrategy) remember(text string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var previous string
	if len(s.recent) > 0 {
		previous = s.recent[len(s.recent)-1]
	}
	s.recent = append(s.recent, text)
	if len(s.recent) > contextBufferSize {
		s.recent = append([]string(nil), s.recent[len(s.recent)-contextBufferSize:]...)
	}
	return previous
}

func (s *ContextStrategy) resolveReference(previous string) Candidate {
	if previous == "" {
		return Candidate{
			Statement:   domain.NewStatement("REM no context available"),
			Confidence:  0.2,
			ContextUsed: true,
		}
	}
	if strings.Contains(strings.ToLower(previous), "print") {
		return Candidate{
			Statement:   domain.NewStatement("PRINT IT"),
			Confidence:  0.7,
			ContextUsed: true,
		}
	}
	return Candidate{
		Statement:   domain.NewStatement("REM context reference not clear"),
		Confidence:  0.3,
		ContextUsed: true,
	}
}

func (s *ContextStrategy) resolveRepeat(previous string) Candidate {
	if previous == "" {
		return Candidate{
			Statement:   domain.NewStatement("REM nothing to repeat"),
			Confidence:  0.2,
			ContextUsed: true,
		}
	}
	return Candidate{
		Statement:   domain.NewStatement(previous),
		Confidence:  0.8,
		ContextUsed: true,
	}
}

// resolveSequence consumes the head of a caller-supplied "sequence" list.
func resolveSequence(contextData map[string]any) Candidate {
	if contextData != nil {
		if seq, ok := contextData["sequence"].([]string); ok && len(seq) > 0 {
			return Candidate{
				Statement:   domain.NewStatement(seq[0]),
				Confidence:  0.9,
				ContextUsed: true,
			}
		}
	}
	return Candidate{
		Statement:   domain.NewStatement("REM no sequence available"),
		Confidence:  0.25,
		ContextUsed: true,
	}
}

func containsAny(text string, words ...string) bool {
	for _, word := range words {
		if containsWord(text, word) {
			return true
		}
	}
	return false
}
