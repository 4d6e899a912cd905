package domain

// Config mirrors ~/.aibridge/config.yaml.
type Config struct {
	ConfigFormatVersion string           `yaml:"config_format_version"`
	DefaultProvider     string           `yaml:"default_provider"`
	FallbackProvider    string           `yaml:"fallback_provider"`
	Providers           []ProviderConfig `yaml:"providers"`
	Cache               CacheSettings    `yaml:"cache"`
	Engine              EngineSettings   `yaml:"engine"`
	Pipeline            PipelineSettings `yaml:"pipeline"`
	Sessions            SessionSettings  `yaml:"sessions"`
	History             HistorySettings  `yaml:"history"`
}

// CacheSettings configures the in-memory response cache.
type CacheSettings struct {
	Enabled       bool `yaml:"enabled"`
	TTLSeconds    int  `yaml:"ttl_seconds"`
	MaxEntries    int  `yaml:"max_entries"`
	EvictionBatch int  `yaml:"eviction_batch"`
}

// EngineSettings tunes the translation engine.
type EngineSettings struct {
	HistorySize         int     `yaml:"history_size"`
	EarlyExitConfidence float64 `yaml:"early_exit_confidence"`
}

// PipelineSettings controls the request orchestrator.
type PipelineSettings struct {
	Workers     int `yaml:"workers"`
	QueueSize   int `yaml:"queue_size"`
	HistorySize int `yaml:"history_size"`
}

// SessionSettings bounds the session manager.
type SessionSettings struct {
	HistorySize  int `yaml:"history_size"`
	ContextTurns int `yaml:"context_turns"`
}

// HistorySettings configures the optional durable interaction log.
type HistorySettings struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}
