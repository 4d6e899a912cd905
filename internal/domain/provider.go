package domain

// Usage reports token accounting returned by a provider.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ProviderResponse is the normalized shape every provider adapter converts
// its vendor payload into at the boundary.
type ProviderResponse struct {
	Provider     string
	Model        string
	Content      string
	FinishReason string
	Usage        Usage
	// Confidence is a structural score over the returned text, assigned by
	// the gateway after parsing.
	Confidence float64
}

// ProviderConfig describes one upstream language-model provider as declared
// in the config file.
type ProviderConfig struct {
	Name          string  `yaml:"name"`
	ModelID       string  `yaml:"model_id"`
	Endpoint      string  `yaml:"endpoint,omitempty"`
	APIKeyEnvVar  string  `yaml:"api_key_env_var,omitempty"`
	MaxTokens     int     `yaml:"max_tokens"`
	Temperature   float32 `yaml:"temperature"`
	TimeoutSecs   int     `yaml:"timeout"`
	RetryAttempts int     `yaml:"retry_attempts"`
	// MinIntervalMS is the minimum spacing between requests; a second call
	// inside the window is rejected as rate_limited.
	MinIntervalMS int `yaml:"min_interval_ms"`
	// RequestQuota caps total requests per process; zero means unlimited.
	RequestQuota int `yaml:"request_quota"`
}

// ProviderStats carries per-provider gateway counters.
type ProviderStats struct {
	Requests         int
	Succeeded        int
	Failed           int
	AverageLatencyMS float64
}

// GatewayStats aggregates counters across all providers.
type GatewayStats struct {
	Total     int
	Succeeded int
	Failed    int
	Providers map[string]ProviderStats
}
