package session

import (
	"sort"
	"strings"

	"github.com/auraos/aibridge/internal/domain"
)

// analysisWindow is how many trailing turns pattern detection looks at.
const analysisWindow = 3

// efficiencyNormMS is the processing time at which the efficiency component
// of the quality score bottoms out.
const efficiencyNormMS = 5000

var conversationPatterns = map[string][]string{
	"debugging":       {"error", "debug", "fix", "problem", "issue"},
	"code_generation": {"create", "write", "generate", "code", "program"},
	"explanation":     {"explain", "how", "why", "what", "understand"},
}

var patternSuggestions = map[string][]string{
	"debugging": {
		"Consider providing more specific error details",
		"Ask for step-by-step debugging approach",
	},
	"code_generation": {
		"Request code explanation and documentation",
		"Ask about testing and validation",
	},
	"explanation": {
		"Request practical examples",
		"Ask for alternative approaches",
	},
}

// Analyze scans the session's recent turns for known interaction patterns
// and scores overall conversation quality from success rate, confidence and
// processing efficiency.
func (m *Manager) Analyze(sessionID string) (domain.ConversationAnalysis, error) {
	session, err := m.GetSession(sessionID)
	if err != nil {
		return domain.ConversationAnalysis{}, err
	}
	if len(session.Turns) == 0 {
		return domain.ConversationAnalysis{}, nil
	}

	recent := session.Turns
	if len(recent) > analysisWindow {
		recent = recent[len(recent)-analysisWindow:]
	}

	detected := map[string]bool{}
	for _, turn := range recent {
		input := strings.ToLower(turn.Input)
		for name, keywords := range conversationPatterns {
			for _, keyword := range keywords {
				if strings.Contains(input, keyword) {
					detected[name] = true
					break
				}
			}
		}
	}

	analysis := domain.ConversationAnalysis{
		Metrics: assessQuality(session.Turns),
	}
	for name := range detected {
		analysis.Patterns = append(analysis.Patterns, name)
	}
	sort.Strings(analysis.Patterns)
	for _, name := range analysis.Patterns {
		analysis.Suggestions = append(analysis.Suggestions, patternSuggestions[name]...)
	}
	analysis.QualityScore = qualityScore(analysis.Metrics)
	return analysis, nil
}

func assessQuality(turns []domain.Turn) domain.ConversationMetrics {
	metrics := domain.ConversationMetrics{TotalTurns: len(turns)}
	if len(turns) == 0 {
		return metrics
	}

	var succeeded int
	var confidenceSum, processingSum float64
	for _, turn := range turns {
		if turn.Success {
			succeeded++
		}
		confidenceSum += turn.Confidence
		processingSum += turn.ProcessingMS
	}
	metrics.SuccessRate = float64(succeeded) / float64(len(turns))
	metrics.AverageConfidence = confidenceSum / float64(len(turns))
	metrics.AverageProcessingMS = processingSum / float64(len(turns))
	return metrics
}

// qualityScore weighs success 40%, confidence 30% and efficiency 30%, where
// efficiency decays linearly to zero at efficiencyNormMS average processing.
func qualityScore(metrics domain.ConversationMetrics) float64 {
	efficiency := 1 - metrics.AverageProcessingMS/efficiencyNormMS
	if efficiency < 0 {
		efficiency = 0
	}
	return metrics.SuccessRate*0.4 + metrics.AverageConfidence*0.3 + efficiency*0.3
}
