package domain

import "time"

// SessionState tracks where a conversation currently sits.
type SessionState string

const (
	SessionInitial         SessionState = "initial"
	SessionActive          SessionState = "active"
	SessionWaitingForInput SessionState = "waiting_for_input"
	SessionProcessing      SessionState = "processing"
	SessionCompleted       SessionState = "completed"
	SessionError           SessionState = "error"
	SessionPaused          SessionState = "paused"
)

// Turn records one request/response/execution tuple inside a session.
type Turn struct {
	ID           string
	Input        string
	Response     string
	Statement    Statement
	Output       string
	Success      bool
	Confidence   float64
	ProcessingMS float64
	ContextDelta map[string]any
	ErrorMessage string
	Timestamp    time.Time
}

// ConversationSession owns an ordered sequence of turns plus the aggregate
// context map built from each turn's delta (later keys overwrite earlier).
type ConversationSession struct {
	ID           string
	State        SessionState
	StartedAt    time.Time
	LastActivity time.Time
	Turns        []Turn
	Context      map[string]any
	Closed       bool
}

// ContextView is the bounded slice of a session handed to providers.
type ContextView struct {
	SessionID   string
	State       SessionState
	TurnCount   int
	RecentTurns []Turn
	Context     map[string]any
}

// ConversationMetrics summarizes turn-level outcomes for quality scoring.
type ConversationMetrics struct {
	TotalTurns          int
	SuccessRate         float64
	AverageConfidence   float64
	AverageProcessingMS float64
}

// ConversationAnalysis is the outcome of scanning recent turns for known
// interaction patterns.
type ConversationAnalysis struct {
	Patterns     []string
	Suggestions  []string
	QualityScore float64
	Metrics      ConversationMetrics
}
