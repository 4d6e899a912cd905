package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/auraos/aibridge/internal/domain"
)

// renderInteraction prints a completed pipeline run in a friendly,
// ASCII-only format.
func renderInteraction(w io.Writer, interaction domain.Interaction, numbered bool) {
	result := interaction.Result

	switch interaction.Status {
	case domain.StatusCompleted:
		if interaction.Cached {
			fmt.Fprintln(w, "Note: result served from cache")
		}
		statement := result.Statement
		if numbered {
			statement = statement.Numbered(10, 10)
		}
		fmt.Fprintln(w, "Statement:")
		for _, line := range statement.Lines {
			fmt.Fprintf(w, "  %s\n", line)
		}
		fmt.Fprintf(w, "\nProvider: %s  Strategy: %s  Confidence: %.2f\n",
			result.Provider, result.Strategy, result.Confidence)
		if !result.Valid {
			fmt.Fprintln(w, "Validation issues:")
			for _, issue := range result.Issues {
				fmt.Fprintf(w, " - %s\n", issue)
			}
		}
		if result.Output != "" {
			fmt.Fprintln(w, "\nOutput:")
			fmt.Fprintln(w, result.Output)
		}
		if !result.Success {
			fmt.Fprintf(w, "\nExecution failed: %s\n", result.ErrorMessage)
		}
	case domain.StatusFailed:
		fmt.Fprintf(w, "Request failed (%s): %s\n", result.ErrorCode, result.ErrorMessage)
	case domain.StatusCancelled:
		fmt.Fprintln(w, "Request was cancelled.")
	default:
		fmt.Fprintf(w, "Request is still %s.\n", interaction.Status)
	}
	fmt.Fprintf(w, "\nTook %.0f ms\n", interaction.Timings.TotalMS)
}

func renderTranslation(w io.Writer, result domain.TranslationResult, numbered bool) {
	if !result.Success {
		fmt.Fprintf(w, "No translation: %s\n", result.Err)
		return
	}
	statement := result.Statement
	if numbered {
		statement = statement.Numbered(10, 10)
	}
	for _, line := range statement.Lines {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "\nStrategy: %s  Confidence: %.2f  Syntax: %.2f\n",
		result.Strategy, result.Confidence, result.Validation.SyntaxScore)
	if !result.Validation.Valid {
		for _, issue := range result.Validation.Issues {
			fmt.Fprintf(w, " - %s\n", issue)
		}
	}
	for _, suggestion := range result.Suggestions {
		fmt.Fprintf(w, " > %s\n", suggestion)
	}
}

func renderHistory(w io.Writer, interactions []domain.Interaction) {
	if len(interactions) == 0 {
		fmt.Fprintln(w, "No interactions recorded yet.")
		return
	}
	for _, i := range interactions {
		statement := strings.ReplaceAll(i.Result.Statement.Text(), "\n", " / ")
		fmt.Fprintf(w, "%-12s  %-9s  %-40q  %s\n",
			humanize.Time(i.CreatedAt), i.Status, truncate(statement, 38), i.Prompt)
	}
}

func renderStats(w io.Writer, pipeline domain.OrchestratorStats, engine domain.TranslationStats, gateway domain.GatewayStats) {
	fmt.Fprintln(w, "Pipeline:")
	fmt.Fprintf(w, "  total %s, completed %s, failed %s, cancelled %s\n",
		humanize.Comma(int64(pipeline.Total)),
		humanize.Comma(int64(pipeline.Completed)),
		humanize.Comma(int64(pipeline.Failed)),
		humanize.Comma(int64(pipeline.Cancelled)))
	fmt.Fprintf(w, "  cache hits %d, active %d, avg %.0f ms\n",
		pipeline.CacheHits, pipeline.Active, pipeline.AverageTotalMS)

	fmt.Fprintln(w, "Engine:")
	fmt.Fprintf(w, "  total %d, success rate %.0f%%, avg confidence %.2f\n",
		engine.Total, engine.SuccessRate*100, engine.AverageConfidence)
	if engine.MostUsedStrategy != "" {
		fmt.Fprintf(w, "  most used strategy: %s\n", engine.MostUsedStrategy)
	}

	fmt.Fprintln(w, "Providers:")
	if len(gateway.Providers) == 0 {
		fmt.Fprintln(w, "  no calls yet")
		return
	}
	for name, stats := range gateway.Providers {
		fmt.Fprintf(w, "  %-10s requests %d, succeeded %d, failed %d, avg %.0f ms\n",
			name, stats.Requests, stats.Succeeded, stats.Failed, stats.AverageLatencyMS)
	}
}

func renderSessions(w io.Writer, sessions []domain.ConversationSession) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No active sessions.")
		return
	}
	for _, s := range sessions {
		fmt.Fprintf(w, "%-36s  %-18s  %d turns, last activity %s\n",
			s.ID, s.State, len(s.Turns), humanize.Time(s.LastActivity))
	}
}

func renderSession(w io.Writer, s domain.ConversationSession) {
	fmt.Fprintf(w, "Session %s (%s), started %s\n", s.ID, s.State, humanize.Time(s.StartedAt))
	if len(s.Turns) == 0 {
		fmt.Fprintln(w, "No turns yet.")
		return
	}
	for i, turn := range s.Turns {
		outcome := "ok"
		if !turn.Success {
			outcome = "failed"
		}
		fmt.Fprintf(w, "%3d. [%s] %q -> %q (confidence %.2f, %.0f ms)\n",
			i+1, outcome, truncate(turn.Input, 38),
			truncate(strings.ReplaceAll(turn.Statement.Text(), "\n", " / "), 38),
			turn.Confidence, turn.ProcessingMS)
		if turn.ErrorMessage != "" {
			fmt.Fprintf(w, "     %s\n", turn.ErrorMessage)
		}
	}
}

func renderAnalysis(w io.Writer, analysis domain.ConversationAnalysis) {
	if analysis.Metrics.TotalTurns == 0 {
		fmt.Fprintln(w, "Session has no turns to analyze.")
		return
	}
	if len(analysis.Patterns) > 0 {
		fmt.Fprintf(w, "Patterns: %s\n", strings.Join(analysis.Patterns, ", "))
	}
	fmt.Fprintf(w, "Quality: %.2f (success %.0f%%, confidence %.2f, avg %.0f ms over %d turns)\n",
		analysis.QualityScore,
		analysis.Metrics.SuccessRate*100,
		analysis.Metrics.AverageConfidence,
		analysis.Metrics.AverageProcessingMS,
		analysis.Metrics.TotalTurns)
	for _, suggestion := range analysis.Suggestions {
		fmt.Fprintf(w, " > %s\n", suggestion)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
