package provider

import (
	"context"

	"github.com/auraos/aibridge/internal/domain"
	"github.com/auraos/aibridge/internal/ports"
)

// heuristicProvider is the offline fallback used when no credentials are
// configured. It echoes the prompt back so the translation strategies can
// still run over the raw text.
type heuristicProvider struct {
	cfg domain.ProviderConfig
}

func newHeuristicProvider(cfg domain.ProviderConfig) ports.Provider {
	return &heuristicProvider{cfg: cfg}
}

func (p *heuristicProvider) Name() string {
	return p.cfg.Name
}

func (p *heuristicProvider) Send(_ context.Context, prompt string, _ map[string]any) (domain.ProviderResponse, error) {
	return domain.ProviderResponse{
		Provider:     p.cfg.Name,
		Model:        "heuristic",
		Content:      prompt,
		FinishReason: "offline_fallback",
	}, nil
}

var _ ports.Provider = (*heuristicProvider)(nil)
