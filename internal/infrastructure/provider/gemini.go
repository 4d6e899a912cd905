package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/auraos/aibridge/internal/domain"
	"github.com/auraos/aibridge/internal/ports"
)

const defaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"

type geminiProvider struct {
	cfg        domain.ProviderConfig
	apiKey     string
	httpClient *http.Client
}

func newGeminiProvider(cfg domain.ProviderConfig, client *http.Client) ports.Provider {
	return &geminiProvider{
		cfg:        cfg,
		apiKey:     resolveAPIKey(cfg.APIKeyEnvVar, "GEMINI_API_KEY"),
		httpClient: client,
	}
}

func (p *geminiProvider) Name() string {
	return p.cfg.Name
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	GenerationConfig  struct {
		Temperature     float32 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

func (p *geminiProvider) Send(ctx context.Context, prompt string, contextData map[string]any) (domain.ProviderResponse, error) {
	fullPrompt := prompt
	if extra, ok := contextMessage(contextData); ok {
		fullPrompt = extra + "\n\nRequest: " + prompt
	}

	payload := geminiRequest{
		Contents:          []geminiContent{{Parts: []geminiPart{{Text: fullPrompt}}}},
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}},
	}
	payload.GenerationConfig.Temperature = p.cfg.Temperature
	payload.GenerationConfig.MaxOutputTokens = valueOrDefaultInt(p.cfg.MaxTokens, 512)

	body, err := json.Marshal(payload)
	if err != nil {
		return domain.ProviderResponse{}, err
	}

	model := valueOrDefault(p.cfg.ModelID, "gemini-1.5-flash")
	endpoint := valueOrDefault(p.cfg.Endpoint, defaultGeminiEndpoint)
	url := fmt.Sprintf("%s/%s:generateContent?key=%s", endpoint, model, p.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.ProviderResponse{}, err
	}
	httpReq.Header.Set("content-type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return domain.ProviderResponse{}, domain.WrapError(domain.CodeProviderError, err, "gemini request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return domain.ProviderResponse{}, domain.NewError(domain.CodeProviderError, "gemini: %s", resp.Status)
	}

	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.ProviderResponse{}, domain.WrapError(domain.CodeProviderError, err, "gemini response decode failed")
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return domain.ProviderResponse{}, domain.NewError(domain.CodeEmptyResponse, "no candidates in gemini response")
	}

	candidate := decoded.Candidates[0]
	return domain.ProviderResponse{
		Provider:     p.cfg.Name,
		Model:        model,
		Content:      candidate.Content.Parts[0].Text,
		FinishReason: candidate.FinishReason,
		Usage: domain.Usage{
			PromptTokens:     decoded.UsageMetadata.PromptTokenCount,
			CompletionTokens: decoded.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      decoded.UsageMetadata.TotalTokenCount,
		},
	}, nil
}

var _ ports.Provider = (*geminiProvider)(nil)
