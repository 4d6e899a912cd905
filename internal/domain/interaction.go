package domain

import (
	"context"
	"time"
)

// InteractionStatus tracks the lifecycle of a submitted request.
type InteractionStatus string

const (
	StatusPending    InteractionStatus = "pending"
	StatusInProgress InteractionStatus = "in_progress"
	StatusCompleted  InteractionStatus = "completed"
	StatusFailed     InteractionStatus = "failed"
	StatusCancelled  InteractionStatus = "cancelled"
)

// Terminal reports whether the status admits no further transitions.
func (s InteractionStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// InteractionType classifies what the caller wants out of the pipeline.
type InteractionType string

const (
	TypeCommandExecution   InteractionType = "command_execution"
	TypeCodeGeneration     InteractionType = "code_generation"
	TypeDebugging          InteractionType = "debugging"
	TypeExplanation        InteractionType = "explanation"
	TypeInteractiveSession InteractionType = "interactive_session"
	TypeBatchProcessing    InteractionType = "batch_processing"
)

// PhaseTimings records per-phase durations for one interaction.
type PhaseTimings struct {
	ProviderMS    float64
	TranslationMS float64
	ExecutionMS   float64
	TotalMS       float64
}

// SubmitRequest captures one caller submission to the orchestrator.
type SubmitRequest struct {
	Context      context.Context
	Text         string
	ProviderHint string
	ContextData  map[string]any
	SessionID    string
	Type         InteractionType
}

// Result is the assembled outcome of one pipeline run. It deliberately
// excludes per-interaction identity so that a cached replay is byte-identical
// to the original apart from the Cached flag on the Interaction.
type Result struct {
	Prompt       string    `json:"prompt"`
	Provider     string    `json:"provider"`
	ProviderText string    `json:"provider_text"`
	Statement    Statement `json:"statement"`
	Strategy     string    `json:"strategy"`
	Valid        bool      `json:"valid"`
	Issues       []string  `json:"issues,omitempty"`
	Confidence   float64   `json:"confidence"`
	Output       string    `json:"output"`
	Success      bool      `json:"success"`
	ErrorCode    ErrorCode `json:"error_code,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	Usage        Usage     `json:"usage"`
}

// Interaction is one end-to-end request lifecycle. Mutated only by the
// orchestrator through the defined status transitions.
type Interaction struct {
	ID           string
	Type         InteractionType
	Status       InteractionStatus
	Prompt       string
	ProviderHint string
	ContextData  map[string]any
	SessionID    string
	Result       Result
	Cached       bool
	Timings      PhaseTimings
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OrchestratorStats aggregates pipeline counters.
type OrchestratorStats struct {
	Total          int
	Completed      int
	Failed         int
	Cancelled      int
	CacheHits      int
	Active         int
	HistorySize    int
	AverageTotalMS float64
}

// CacheEntry is a stored pipeline result addressed by request hash.
type CacheEntry struct {
	Key       string    `json:"key"`
	Result    Result    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}
