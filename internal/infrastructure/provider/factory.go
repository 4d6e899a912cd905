package provider

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/auraos/aibridge/internal/domain"
	"github.com/auraos/aibridge/internal/ports"
)

type providerKind string

const (
	kindOpenAI    providerKind = "openai"
	kindGemini    providerKind = "gemini"
	kindHeuristic providerKind = "heuristic"
)

// Factory builds provider adapters from configuration.
type Factory struct {
	httpClient *http.Client
}

func NewFactory() *Factory {
	return &Factory{
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// ForConfig picks the adapter implied by the provider's name or endpoint.
// A provider whose credentials are absent degrades to the offline fallback
// rather than failing at startup.
func (f *Factory) ForConfig(cfg domain.ProviderConfig) ports.Provider {
	switch inferKind(cfg) {
	case kindOpenAI:
		return newOpenAIProvider(cfg)
	case kindGemini:
		return newGeminiProvider(cfg, f.httpClient)
	default:
		return newHeuristicProvider(cfg)
	}
}

// BuildAll instantiates every configured provider, keyed by name.
func (f *Factory) BuildAll(configs []domain.ProviderConfig) map[string]ports.Provider {
	providers := make(map[string]ports.Provider, len(configs))
	for _, cfg := range configs {
		providers[cfg.Name] = f.ForConfig(cfg)
	}
	return providers
}

func inferKind(cfg domain.ProviderConfig) providerKind {
	nameLower := strings.ToLower(cfg.Name)

	var kind providerKind
	switch {
	case strings.Contains(cfg.Endpoint, "openai.com"), strings.Contains(nameLower, "openai"):
		kind = kindOpenAI
	case strings.Contains(cfg.Endpoint, "googleapis.com"), strings.Contains(nameLower, "gemini"):
		kind = kindGemini
	default:
		return kindHeuristic
	}
	if resolveAPIKey(cfg.APIKeyEnvVar, defaultKeyVar(kind)) == "" && os.Getenv("AIBRIDGE_ALLOW_KEYLESS") == "" {
		return kindHeuristic
	}
	return kind
}

func defaultKeyVar(kind providerKind) string {
	switch kind {
	case kindOpenAI:
		return "OPENAI_API_KEY"
	case kindGemini:
		return "GEMINI_API_KEY"
	default:
		return ""
	}
}
