// Package ports defines the interfaces between the application core and
// external adapters (infrastructure). The application depends on these
// abstractions, never on concrete implementations, so each adapter can be
// swapped in tests and alternate deployments.
package ports

import (
	"context"

	"github.com/auraos/aibridge/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.aibridge/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// Provider sends a prompt to one upstream language-model service and returns
// the normalized response. Each implementation wraps a specific vendor API.
type Provider interface {
	Name() string
	Send(ctx context.Context, prompt string, contextData map[string]any) (domain.ProviderResponse, error)
}

// Gateway fronts the configured providers with rate gating, retry and
// statistics. The orchestrator only ever talks to providers through it.
type Gateway interface {
	Send(ctx context.Context, providerHint, prompt string, contextData map[string]any) (domain.ProviderResponse, error)
	SendWithRetry(ctx context.Context, providerHint, prompt string, contextData map[string]any) (domain.ProviderResponse, error)
	Statistics() domain.GatewayStats
}

// Translator converts provider text into a scored candidate statement.
// Usable standalone, without the orchestrator.
type Translator interface {
	Translate(text string, contextData map[string]any) domain.TranslationResult
}

// Executor forwards a statement to the execution back-end. The core never
// interprets statements itself; it only produces and forwards them.
type Executor interface {
	Execute(ctx context.Context, stmt domain.Statement) (output string, success bool, err error)
}

// CacheStore holds assembled pipeline results keyed by request hash.
// A miss on a previously-seen request is tolerable and must degrade to the
// full pipeline, never error.
type CacheStore interface {
	Get(key string) (domain.Result, bool)
	Put(key string, result domain.Result)
	Len() int
	Clear()
}

// HistoryRepository durably records terminal interactions for later
// inspection. The core holds no durability contract; this is an observer.
type HistoryRepository interface {
	Save(domain.Interaction) error
	Recent(limit int) ([]domain.Interaction, error)
	Clear() error
}

// SessionRecorder appends completed turns to a conversation session.
type SessionRecorder interface {
	AddTurn(sessionID string, turn domain.Turn) error
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
