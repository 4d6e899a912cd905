package provider

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/auraos/aibridge/internal/domain"
	"github.com/auraos/aibridge/internal/ports"
)

const defaultRetryAttempts = 3

// Gateway fronts the configured providers. Every call passes the rate gate
// and quota check first, then runs under the provider's timeout; responses
// come back scored and failures come back classified.
type Gateway struct {
	providers map[string]ports.Provider
	configs   map[string]domain.ProviderConfig
	defaults  []string
	logger    ports.Logger

	mu        sync.Mutex
	limiters  map[string]*rate.Limiter
	quotaUsed map[string]int
	stats     gatewayStats

	backoffUnit time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

type gatewayStats struct {
	total       int
	succeeded   int
	failed      int
	perProvider map[string]*providerCounters
}

type providerCounters struct {
	requests     int
	succeeded    int
	failed       int
	totalLatency time.Duration
}

// NewGateway wires providers with their configs. Provider preference when no
// hint is given runs default, then fallback, then any remaining provider.
func NewGateway(cfg domain.Config, providers map[string]ports.Provider, logger ports.Logger) *Gateway {
	g := &Gateway{
		providers:   providers,
		configs:     make(map[string]domain.ProviderConfig, len(cfg.Providers)),
		logger:      logger,
		limiters:    make(map[string]*rate.Limiter, len(cfg.Providers)),
		quotaUsed:   make(map[string]int, len(cfg.Providers)),
		stats:       gatewayStats{perProvider: make(map[string]*providerCounters)},
		backoffUnit: time.Second,
		sleep:       sleepContext,
	}
	for _, pc := range cfg.Providers {
		g.configs[pc.Name] = pc
		if pc.MinIntervalMS > 0 {
			interval := time.Duration(pc.MinIntervalMS) * time.Millisecond
			g.limiters[pc.Name] = rate.NewLimiter(rate.Every(interval), 1)
		}
	}

	seen := map[string]bool{}
	for _, name := range []string{cfg.DefaultProvider, cfg.FallbackProvider} {
		if name != "" && !seen[name] {
			if _, ok := providers[name]; ok {
				g.defaults = append(g.defaults, name)
				seen[name] = true
			}
		}
	}
	for _, pc := range cfg.Providers {
		if !seen[pc.Name] {
			if _, ok := providers[pc.Name]; ok {
				g.defaults = append(g.defaults, pc.Name)
				seen[pc.Name] = true
			}
		}
	}
	return g
}

// Send routes one prompt to the selected provider. The rate gate fails
// closed: a call inside the provider's minimum interval is rejected as
// rate_limited without touching the provider.
func (g *Gateway) Send(ctx context.Context, providerHint, prompt string, contextData map[string]any) (domain.ProviderResponse, error) {
	name, prov, err := g.selectProvider(providerHint)
	if err != nil {
		return domain.ProviderResponse{}, err
	}

	if err := g.admit(name); err != nil {
		g.recordFailure(name, 0)
		return domain.ProviderResponse{}, err
	}

	cfg := g.configs[name]
	callCtx, cancel := context.WithTimeout(ctx, timeoutFor(cfg))
	defer cancel()

	start := time.Now()
	resp, err := prov.Send(callCtx, prompt, contextData)
	elapsed := time.Since(start)

	if err != nil {
		classified := classify(err)
		g.recordFailure(name, elapsed)
		g.logger.Warn("provider call failed", map[string]any{
			"provider": name,
			"code":     string(domain.CodeOf(classified)),
		})
		return domain.ProviderResponse{}, classified
	}
	if resp.Content == "" {
		g.recordFailure(name, elapsed)
		return domain.ProviderResponse{}, domain.NewError(domain.CodeEmptyResponse, "provider %s returned empty content", name)
	}

	resp.Confidence = scoreResponse(resp.Content)
	g.recordSuccess(name, elapsed)
	return resp, nil
}

// SendWithRetry repeats Send up to the provider's configured attempt budget,
// waiting 2^attempt backoff units between attempts. Non-retryable failures
// and context cancellation stop the loop immediately.
func (g *Gateway) SendWithRetry(ctx context.Context, providerHint, prompt string, contextData map[string]any) (domain.ProviderResponse, error) {
	name, _, err := g.selectProvider(providerHint)
	if err != nil {
		return domain.ProviderResponse{}, err
	}
	attempts := g.configs[name].RetryAttempts
	if attempts <= 0 {
		attempts = defaultRetryAttempts
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			wait := time.Duration(math.Pow(2, float64(attempt-1))) * g.backoffUnit
			if err := g.sleep(ctx, wait); err != nil {
				return domain.ProviderResponse{}, domain.WrapError(domain.CodeCancelled, err, "retry wait interrupted")
			}
		}
		resp, err := g.Send(ctx, providerHint, prompt, contextData)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !domain.Retryable(domain.CodeOf(err)) {
			break
		}
	}
	return domain.ProviderResponse{}, lastErr
}

// Statistics returns a snapshot of gateway counters.
func (g *Gateway) Statistics() domain.GatewayStats {
	g.mu.Lock()
	defer g.mu.Unlock()

	stats := domain.GatewayStats{
		Total:     g.stats.total,
		Succeeded: g.stats.succeeded,
		Failed:    g.stats.failed,
		Providers: make(map[string]domain.ProviderStats, len(g.stats.perProvider)),
	}
	for name, c := range g.stats.perProvider {
		ps := domain.ProviderStats{
			Requests:  c.requests,
			Succeeded: c.succeeded,
			Failed:    c.failed,
		}
		if c.requests > 0 {
			ps.AverageLatencyMS = float64(c.totalLatency) / float64(time.Millisecond) / float64(c.requests)
		}
		stats.Providers[name] = ps
	}
	return stats
}

func (g *Gateway) selectProvider(hint string) (string, ports.Provider, error) {
	if hint != "" {
		prov, ok := g.providers[hint]
		if !ok {
			return "", nil, domain.NewError(domain.CodeNotFound, "unknown provider %q", hint)
		}
		return hint, prov, nil
	}
	if len(g.defaults) > 0 {
		name := g.defaults[0]
		return name, g.providers[name], nil
	}
	return "", nil, domain.NewError(domain.CodeNotFound, "no providers configured")
}

// admit enforces the per-provider rate gate and request quota.
func (g *Gateway) admit(name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	cfg := g.configs[name]
	if cfg.RequestQuota > 0 && g.quotaUsed[name] >= cfg.RequestQuota {
		return domain.NewError(domain.CodeRateLimited, "provider %s exhausted its request quota", name)
	}
	if limiter, ok := g.limiters[name]; ok && !limiter.Allow() {
		return domain.NewError(domain.CodeRateLimited, "provider %s called inside its minimum interval", name)
	}
	g.quotaUsed[name]++
	return nil
}

func (g *Gateway) recordSuccess(name string, elapsed time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stats.total++
	g.stats.succeeded++
	c := g.counters(name)
	c.requests++
	c.succeeded++
	c.totalLatency += elapsed
}

func (g *Gateway) recordFailure(name string, elapsed time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stats.total++
	g.stats.failed++
	c := g.counters(name)
	c.requests++
	c.failed++
	c.totalLatency += elapsed
}

// counters returns the per-provider counter block. Caller holds the lock.
func (g *Gateway) counters(name string) *providerCounters {
	c, ok := g.stats.perProvider[name]
	if !ok {
		c = &providerCounters{}
		g.stats.perProvider[name] = c
	}
	return c
}

// classify maps transport errors onto the stable error taxonomy.
func classify(err error) error {
	var be *domain.BridgeError
	if errors.As(err, &be) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.WrapError(domain.CodeProviderTimeout, err, "provider call timed out")
	}
	if errors.Is(err, context.Canceled) {
		return domain.WrapError(domain.CodeCancelled, err, "provider call cancelled")
	}
	return domain.WrapError(domain.CodeProviderError, err, "provider call failed")
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var _ ports.Gateway = (*Gateway)(nil)
